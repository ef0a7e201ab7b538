// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google Gen AI SDK against the
// Gemini Developer API.
type GeminiProvider struct {
	client *genai.Client
	opts   options
}

var (
	_ Provider    = (*GeminiProvider)(nil)
	_ ModelLister = (*GeminiProvider)(nil)
)

// NewGeminiProvider creates a Gemini provider. It returns an error if no API
// key is available (neither via option nor GEMINI_API_KEY/GOOGLE_API_KEY).
func NewGeminiProvider(opts ...Option) (*GeminiProvider, error) {
	o := buildOptions(KindGemini.DefaultModel(), opts)
	if o.apiKey == "" {
		o.apiKey = KeyFromEnv(KindGemini)
	}
	if o.apiKey == "" {
		return nil, errors.New("llm: GEMINI_API_KEY not set and no API key provided")
	}

	cc := &genai.ClientConfig{
		APIKey:     o.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	// The context is only consulted for credential discovery, which the API
	// key path skips.
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: client setup failed: %w", err)
	}

	return &GeminiProvider{client: client, opts: o}, nil
}

// Complete sends the system instruction and user message to generateContent,
// or streamGenerateContent when req.OnDelta is set.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := withTimeout(ctx, p.opts.timeout)
	defer cancel()

	model := p.opts.model
	if req.Model != "" {
		model = req.Model
	}

	cfg := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens) //nolint:gosec // bounded by caller
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		cfg.Temperature = &t
	}
	contents := genai.Text(req.Prompt)

	if req.Streaming() {
		return p.stream(ctx, model, contents, cfg, req.OnDelta)
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: completion failed: %w", err)
	}

	out := &Response{Content: resp.Text(), Model: model}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{InputTokens: int(u.PromptTokenCount), OutputTokens: int(u.CandidatesTokenCount)}
	}
	return out, nil
}

func (p *GeminiProvider) stream(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig, onDelta DeltaFunc) (*Response, error) {
	var b strings.Builder
	out := &Response{Model: model}

	for chunk, err := range p.client.Models.GenerateContentStream(ctx, model, contents, cfg) {
		if err != nil {
			return nil, fmt.Errorf("gemini: completion failed: %w", err)
		}
		if text := chunk.Text(); text != "" {
			b.WriteString(text)
			onDelta(text)
		}
		if chunk.ModelVersion != "" {
			out.Model = chunk.ModelVersion
		}
		if u := chunk.UsageMetadata; u != nil {
			out.Usage = Usage{InputTokens: int(u.PromptTokenCount), OutputTokens: int(u.CandidatesTokenCount)}
		}
	}

	out.Content = b.String()
	return out, nil
}

// ListModels returns the models that support generateContent.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	for m, err := range p.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("gemini: list models failed: %w", err)
		}
		if !slices.Contains(m.SupportedActions, "generateContent") {
			continue
		}
		out = append(out, ModelInfo{
			ID:          strings.TrimPrefix(m.Name, "models/"),
			DisplayName: m.DisplayName,
		})
	}
	return out, nil
}

// Model returns the default model configured for this provider.
func (p *GeminiProvider) Model() string {
	return p.opts.model
}
