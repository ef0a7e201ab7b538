// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"fmt"
	"os"
	"strings"
)

// Kind identifies one of the supported provider variants.
type Kind string

// Supported provider kinds.
const (
	KindGemini     Kind = "gemini"
	KindOpenAI     Kind = "openai"
	KindGroq       Kind = "groq"
	KindAnthropic  Kind = "anthropic"
	KindCompatible Kind = "compatible"
	KindStub       Kind = "stub"
)

// GroqBaseURL is the fixed OpenAI-compatible endpoint used for Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1/"

type kindInfo struct {
	kind        Kind
	displayName string
	envKeys     []string
	models      []string
}

// registry is ordered as the UI selector shows it.
var registry = []kindInfo{
	{
		kind:        KindGemini,
		displayName: "Google Gemini",
		envKeys:     []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		models: []string{
			"gemini-2.0-flash-lite-preview-02-05",
			"gemini-1.5-pro",
			"gemini-2.0-flash",
			"gemini-1.5-flash",
		},
	},
	{
		kind:        KindOpenAI,
		displayName: "OpenAI",
		envKeys:     []string{"OPENAI_API_KEY"},
		models:      []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini"},
	},
	{
		kind:        KindGroq,
		displayName: "Groq",
		envKeys:     []string{"GROQ_API_KEY"},
		models:      []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
	},
	{
		kind:        KindAnthropic,
		displayName: "Anthropic",
		envKeys:     []string{"ANTHROPIC_API_KEY"},
		models:      []string{"claude-sonnet-4-5-20250929", "claude-3-5-haiku-20241022"},
	},
	{
		kind:        KindCompatible,
		displayName: "OpenAI-compatible",
		envKeys:     []string{"LEXBRIDGE_API_KEY"},
	},
	{
		kind:        KindStub,
		displayName: "Offline stub",
		models:      []string{"stub-1"},
	},
}

// Kinds returns every supported kind in selector order.
func Kinds() []Kind {
	out := make([]Kind, len(registry))
	for i, ki := range registry {
		out[i] = ki.kind
	}
	return out
}

// ParseKind accepts a kind id ("gemini") or display name ("Google Gemini"),
// case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, ki := range registry {
		if strings.EqualFold(s, string(ki.kind)) || strings.EqualFold(s, ki.displayName) {
			return ki.kind, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (supported: %s)", s, strings.Join(kindNames(), ", "))
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	_, ok := k.info()
	return ok
}

// DisplayName returns the human-readable provider name.
func (k Kind) DisplayName() string {
	if ki, ok := k.info(); ok {
		return ki.displayName
	}
	return string(k)
}

// Models returns the curated model list for the selector. Any other model id
// is still accepted by New.
func (k Kind) Models() []string {
	ki, ok := k.info()
	if !ok {
		return nil
	}
	out := make([]string, len(ki.models))
	copy(out, ki.models)
	return out
}

// DefaultModel is the first catalog entry, or "" when the kind has none.
func (k Kind) DefaultModel() string {
	if ki, ok := k.info(); ok && len(ki.models) > 0 {
		return ki.models[0]
	}
	return ""
}

// EnvKeys lists the environment variables consulted for the API key, in
// priority order.
func (k Kind) EnvKeys() []string {
	ki, _ := k.info()
	return ki.envKeys
}

// RequiresKey reports whether the kind needs an API key to be dispatched.
func (k Kind) RequiresKey() bool {
	return k != KindStub
}

// KeyFromEnv returns the first non-empty API key for k from the environment.
func KeyFromEnv(k Kind) string {
	for _, name := range k.EnvKeys() {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func (k Kind) info() (kindInfo, bool) {
	for _, ki := range registry {
		if ki.kind == k {
			return ki, true
		}
	}
	return kindInfo{}, false
}

func kindNames() []string {
	names := make([]string, len(registry))
	for i, ki := range registry {
		names[i] = string(ki.kind)
	}
	return names
}
