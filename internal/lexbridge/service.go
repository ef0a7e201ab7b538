// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

// Package lexbridge is the application service shared by the web UI, the CLI
// and the MCP server. It validates input, builds the provider for each call
// and makes exactly one completion request per action.
package lexbridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexbridge/lexbridge/internal/labels"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/metrics"
	"github.com/lexbridge/lexbridge/internal/presets"
	"github.com/lexbridge/lexbridge/internal/prompt"
	"github.com/lexbridge/lexbridge/internal/redact"
)

// Input errors. No provider call is made when one of these is returned.
var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrMissingScenario = errors.New("please describe a legal scenario first")
	ErrMissingLanguage = errors.New("missing target language")
)

// Factory builds a provider from its configuration.
type Factory func(llm.Config) (llm.Provider, error)

// Service runs analyses and label translations.
type Service struct {
	// Factory defaults to llm.New.
	Factory Factory

	// Presets defaults to the built-in catalog.
	Presets *presets.Catalog
}

// NewService returns a Service using the real provider dispatcher.
func NewService(catalog *presets.Catalog) *Service {
	return &Service{Factory: llm.New, Presets: catalog}
}

// AnalyzeRequest is one comparison.
type AnalyzeRequest struct {
	Provider llm.Config
	Input    prompt.Input

	// OnDelta streams the answer when set.
	OnDelta llm.DeltaFunc
}

// Analysis is the model's answer.
type Analysis struct {
	Markdown string
	Model    string
	Usage    llm.Usage
	Duration time.Duration
}

// TranslateRequest asks for the label set in another language.
type TranslateRequest struct {
	Provider llm.Config

	// Current is the label set to translate; nil means the English defaults.
	Current  labels.Set
	Language string
}

// Analyze validates req and makes a single completion call.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*Analysis, error) {
	cfg := withDefaults(req.Provider)
	if missingKey(cfg) {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Input.Scenario) == "" {
		return nil, ErrMissingScenario
	}

	p := prompt.Compose(req.Input)
	provider, err := s.build(cfg)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	start := time.Now()
	resp, err := provider.Complete(ctx, llm.Request{
		SystemPrompt: p.System,
		Prompt:       p.User,
		Model:        cfg.Model,
		OnDelta:      req.OnDelta,
	})
	elapsed := time.Since(start)
	s.record(cfg, "analyze", elapsed, resp, err)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	return &Analysis{
		Markdown: resp.Content,
		Model:    resp.Model,
		Usage:    resp.Usage,
		Duration: elapsed,
	}, nil
}

// TranslateLabels returns req.Current translated into req.Language. The
// returned set always passes labels.Set.Validate; on error the caller keeps
// its current labels.
func (s *Service) TranslateLabels(ctx context.Context, req TranslateRequest) (labels.Set, error) {
	cfg := withDefaults(req.Provider)
	if missingKey(cfg) {
		return nil, ErrMissingAPIKey
	}
	language := strings.TrimSpace(req.Language)
	if language == "" {
		return nil, ErrMissingLanguage
	}
	current := req.Current
	if current == nil {
		current = labels.Default()
	}

	provider, err := s.build(cfg)
	if err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}

	tr := &labels.Translator{Provider: &observed{Provider: provider, svc: s, cfg: cfg, op: "translate"}}
	out, err := tr.Translate(ctx, current, language, cfg.Model)
	if err != nil {
		var perr *labels.ParseError
		var kerr *labels.KeySetError
		if errors.As(err, &perr) || errors.As(err, &kerr) {
			metrics.TranslationRollbacksTotal.Inc()
		}
		return nil, err
	}
	return out, nil
}

// ListModels enumerates the models visible to the configured key. Providers
// without a listing endpoint return their curated catalog.
func (s *Service) ListModels(ctx context.Context, cfg llm.Config) ([]llm.ModelInfo, error) {
	cfg = withDefaults(cfg)
	if missingKey(cfg) {
		return nil, ErrMissingAPIKey
	}
	provider, err := s.build(cfg)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	lister, ok := provider.(llm.ModelLister)
	if !ok {
		var out []llm.ModelInfo
		for _, m := range cfg.Kind.Models() {
			out = append(out, llm.ModelInfo{ID: m})
		}
		return out, nil
	}

	start := time.Now()
	models, err := lister.ListModels(ctx)
	metrics.ObserveCompletion(string(cfg.Kind), "list_models", time.Since(start), err, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}

// Preset looks up a quick-start scenario.
func (s *Service) Preset(id string) (presets.Preset, bool) {
	return s.catalog().Get(id)
}

// AllPresets returns the quick-start scenarios in order.
func (s *Service) AllPresets() []presets.Preset {
	return s.catalog().All()
}

// FillFromPreset fills the blank fields of in from p. Fields the caller set
// are kept.
func FillFromPreset(in prompt.Input, p presets.Preset) prompt.Input {
	if strings.TrimSpace(in.Source) == "" {
		in.Source = p.Source
	}
	if strings.TrimSpace(in.Target) == "" {
		in.Target = p.Target
	}
	if strings.TrimSpace(in.Scenario) == "" {
		in.Scenario = p.Scenario
	}
	return in
}

func (s *Service) catalog() *presets.Catalog {
	if s.Presets == nil {
		return presets.Default()
	}
	return s.Presets
}

func (s *Service) build(cfg llm.Config) (llm.Provider, error) {
	f := s.Factory
	if f == nil {
		f = llm.New
	}
	return f(cfg)
}

func (s *Service) record(cfg llm.Config, op string, d time.Duration, resp *llm.Response, err error) {
	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	metrics.ObserveCompletion(string(cfg.Kind), op, d, err, in, out)

	if err != nil {
		slog.Warn("completion failed",
			"operation", op,
			"provider", cfg.Kind,
			"model", cfg.Model,
			"duration", d.Round(time.Millisecond),
			"error", redact.With(err.Error(), cfg.APIKey),
		)
		return
	}
	slog.Info("completion finished",
		"operation", op,
		"provider", cfg.Kind,
		"model", cfg.Model,
		"duration", d.Round(time.Millisecond),
		"input_tokens", in,
		"output_tokens", out,
	)
}

// observed wraps a provider so that calls made on the service's behalf by
// other components are recorded like direct ones.
type observed struct {
	llm.Provider
	svc *Service
	cfg llm.Config
	op  string
}

func (o *observed) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	start := time.Now()
	resp, err := o.Provider.Complete(ctx, req)
	o.svc.record(o.cfg, o.op, time.Since(start), resp, err)
	return resp, err
}

func withDefaults(cfg llm.Config) llm.Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = cfg.Kind.DefaultModel()
	}
	return cfg
}

func missingKey(cfg llm.Config) bool {
	return cfg.Kind.RequiresKey() && cfg.APIKey == ""
}
