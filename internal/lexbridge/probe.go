package lexbridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lexbridge/lexbridge/internal/llm"
	"golang.org/x/sync/errgroup"
)

// ProbePrompt is the minimal request used to check a key/model pair.
const ProbePrompt = "Hello, simply say 'OK'."

// probeConcurrency bounds parallel probe calls.
const probeConcurrency = 4

// ProbeResult is the outcome for one model.
type ProbeResult struct {
	Model    string
	Reply    string
	Duration time.Duration
	Err      error
}

// OK reports whether the model answered.
func (r ProbeResult) OK() bool { return r.Err == nil }

// Probe sends ProbePrompt to each model. Failures are recorded per model and
// never abort the other probes. An empty models list probes the kind's
// catalog. Results are in input order.
func (s *Service) Probe(ctx context.Context, cfg llm.Config, models []string) ([]ProbeResult, error) {
	cfg = withDefaults(cfg)
	if missingKey(cfg) {
		return nil, ErrMissingAPIKey
	}
	if len(models) == 0 {
		models = cfg.Kind.Models()
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("probe: no models to probe for %s", cfg.Kind)
	}

	provider, err := s.build(cfg)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}

	results := make([]ProbeResult, len(models))
	var g errgroup.Group
	g.SetLimit(probeConcurrency)
	for i, model := range models {
		g.Go(func() error {
			results[i] = s.probeOne(ctx, provider, cfg, model)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // probes never return errors to the group

	return results, nil
}

func (s *Service) probeOne(ctx context.Context, provider llm.Provider, cfg llm.Config, model string) ProbeResult {
	start := time.Now()
	resp, err := provider.Complete(ctx, llm.Request{Prompt: ProbePrompt, Model: model})
	elapsed := time.Since(start)

	mc := cfg
	mc.Model = model
	s.record(mc, "probe", elapsed, resp, err)

	r := ProbeResult{Model: model, Duration: elapsed, Err: err}
	if resp != nil {
		r.Reply = strings.TrimSpace(resp.Content)
	}
	return r
}
