package llm_test

import (
	"testing"

	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want llm.Kind
	}{
		{"gemini", llm.KindGemini},
		{"Google Gemini", llm.KindGemini},
		{"  OPENAI ", llm.KindOpenAI},
		{"groq", llm.KindGroq},
		{"Anthropic", llm.KindAnthropic},
		{"OpenAI-compatible", llm.KindCompatible},
		{"stub", llm.KindStub},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := llm.ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := llm.ParseKind("watson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider "watson"`)
	assert.Contains(t, err.Error(), "gemini, openai, groq")
}

func TestKinds_Order(t *testing.T) {
	assert.Equal(t, []llm.Kind{
		llm.KindGemini, llm.KindOpenAI, llm.KindGroq,
		llm.KindAnthropic, llm.KindCompatible, llm.KindStub,
	}, llm.Kinds())
}

func TestKind_Catalog(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash-lite-preview-02-05", llm.KindGemini.DefaultModel())
	assert.Contains(t, llm.KindGemini.Models(), "gemini-1.5-pro")
	assert.Equal(t, "llama-3.3-70b-versatile", llm.KindGroq.DefaultModel())
	assert.Empty(t, llm.KindCompatible.DefaultModel())
	assert.Nil(t, llm.Kind("nope").Models())
}

func TestKind_ModelsReturnsCopy(t *testing.T) {
	m := llm.KindOpenAI.Models()
	m[0] = "mutated"
	assert.Equal(t, "gpt-4o-mini", llm.KindOpenAI.Models()[0])
}

func TestKind_DisplayName(t *testing.T) {
	assert.Equal(t, "Google Gemini", llm.KindGemini.DisplayName())
	assert.Equal(t, "mystery", llm.Kind("mystery").DisplayName())
	assert.True(t, llm.KindGroq.Valid())
	assert.False(t, llm.Kind("mystery").Valid())
}

func TestKind_RequiresKey(t *testing.T) {
	for _, k := range llm.Kinds() {
		assert.Equal(t, k != llm.KindStub, k.RequiresKey(), k)
	}
}

func TestKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	assert.Equal(t, "google-key", llm.KeyFromEnv(llm.KindGemini))

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	assert.Equal(t, "gemini-key", llm.KeyFromEnv(llm.KindGemini))

	assert.Empty(t, llm.KeyFromEnv(llm.KindStub))
}
