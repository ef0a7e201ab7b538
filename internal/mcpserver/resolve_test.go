package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexbridge/lexbridge/internal/llm"
)

func keys(m map[llm.Kind]string) func(llm.Kind) string {
	return func(k llm.Kind) string { return m[k] }
}

func TestResolveProvider(t *testing.T) {
	defaults := llm.Config{
		Kind:    llm.KindCompatible,
		Model:   "llama3",
		BaseURL: "http://localhost:11434/v1/",
		APIKey:  "must-not-leak",
	}
	lookup := keys(map[llm.Kind]string{
		llm.KindCompatible: "local-key",
		llm.KindOpenAI:     "sk-openai",
	})

	tests := []struct {
		name     string
		provider string
		model    string
		want     llm.Config
	}{
		{
			name: "defaults",
			want: llm.Config{Kind: llm.KindCompatible, Model: "llama3", BaseURL: "http://localhost:11434/v1/", APIKey: "local-key"},
		},
		{
			name:  "model override",
			model: " qwen2 ",
			want:  llm.Config{Kind: llm.KindCompatible, Model: "qwen2", BaseURL: "http://localhost:11434/v1/", APIKey: "local-key"},
		},
		{
			name:     "other provider drops defaults",
			provider: "OpenAI",
			want:     llm.Config{Kind: llm.KindOpenAI, Model: "gpt-4o-mini", APIKey: "sk-openai"},
		},
		{
			name:     "same provider keeps defaults",
			provider: "compatible",
			want:     llm.Config{Kind: llm.KindCompatible, Model: "llama3", BaseURL: "http://localhost:11434/v1/", APIKey: "local-key"},
		},
		{
			name:     "provider without key",
			provider: "groq",
			model:    "llama-3.1-8b-instant",
			want:     llm.Config{Kind: llm.KindGroq, Model: "llama-3.1-8b-instant"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProvider(tt.provider, tt.model, defaults, lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveProvider_ZeroDefaults(t *testing.T) {
	got, err := ResolveProvider("", "", llm.Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, llm.KindGemini, got.Kind)
	assert.Equal(t, llm.KindGemini.DefaultModel(), got.Model)
	assert.Empty(t, got.APIKey)
}

func TestResolveProvider_Unknown(t *testing.T) {
	_, err := ResolveProvider("mistral", "", llm.Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve provider")
	assert.Contains(t, err.Error(), "unknown provider")
}

func FuzzResolveProvider(f *testing.F) {
	f.Add("", "")
	f.Add("gemini", "gemini-1.5-pro")
	f.Add("Google Gemini", " ")
	f.Add("open ai", "x")

	f.Fuzz(func(t *testing.T, provider, model string) {
		cfg, err := ResolveProvider(provider, model, llm.Config{}, keys(nil))
		if err != nil {
			return
		}
		if !cfg.Kind.Valid() {
			t.Errorf("resolved invalid kind %q", cfg.Kind)
		}
		if cfg.APIKey != "" {
			t.Errorf("key must come from lookup only, got %q", cfg.APIKey)
		}
	})
}
