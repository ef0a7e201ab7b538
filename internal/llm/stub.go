// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StubProvider is a deterministic, no-network provider for local demos and
// end-to-end tests. Analysis prompts get a fixed three-section Markdown reply;
// prompts that embed a JSON object get that object back, fenced, with every
// value tagged so callers can see the round trip happened.
type StubProvider struct {
	model string
}

var (
	_ Provider    = (*StubProvider)(nil)
	_ ModelLister = (*StubProvider)(nil)
)

// NewStubProvider returns a stub provider. Only WithModel is honoured.
func NewStubProvider(opts ...Option) *StubProvider {
	o := buildOptions(KindStub.DefaultModel(), opts)
	return &StubProvider{model: o.model}
}

// Complete builds a deterministic reply from the prompt.
func (p *StubProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	content := stubReply(req.Prompt)
	if req.Streaming() {
		for _, line := range strings.SplitAfter(content, "\n") {
			if line != "" {
				req.OnDelta(line)
			}
		}
	}

	return &Response{
		Content: content,
		Model:   model,
		Usage: Usage{
			InputTokens:  len(strings.Fields(req.SystemPrompt + " " + req.Prompt)),
			OutputTokens: len(strings.Fields(content)),
		},
	}, nil
}

// ListModels returns the stub catalog.
func (p *StubProvider) ListModels(context.Context) ([]ModelInfo, error) {
	return []ModelInfo{{ID: KindStub.DefaultModel(), DisplayName: KindStub.DisplayName()}}, nil
}

func stubReply(prompt string) string {
	if strings.Contains(prompt, "say 'OK'") {
		return "OK"
	}
	if obj, ok := embeddedJSON(prompt); ok {
		return stubTranslation(obj)
	}

	sum := sha256.Sum256([]byte(prompt))
	short := hex.EncodeToString(sum[:4])

	var b strings.Builder
	b.WriteString("## 🚨 The Core Divergence\n")
	fmt.Fprintf(&b, "Offline stub analysis %s: the two systems diverge on this point.\n\n", short)
	b.WriteString("## 🧠 Deep Dive: The Logic Shift\n")
	b.WriteString("No provider was called; configure a real provider for legal reasoning.\n\n")
	b.WriteString("## 💡 Practical Implication\n")
	b.WriteString("Use this output only to check the interface end to end.\n")
	return b.String()
}

// embeddedJSON extracts the outermost {...} object of string values.
func embeddedJSON(prompt string) (map[string]string, bool) {
	start := strings.Index(prompt, "{")
	end := strings.LastIndex(prompt, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	var obj map[string]string
	if err := json.Unmarshal([]byte(prompt[start:end+1]), &obj); err != nil || len(obj) == 0 {
		return nil, false
	}
	return obj, true
}

func stubTranslation(obj map[string]string) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(obj))
	for _, k := range keys {
		out[k] = "[stub] " + obj[k]
	}
	data, _ := json.MarshalIndent(out, "", "  ") //nolint:errcheck // map[string]string always marshals
	return "```json\n" + string(data) + "\n```"
}
