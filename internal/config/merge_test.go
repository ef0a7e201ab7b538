package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestResolve_Defaults(t *testing.T) {
	s, err := Resolve(&Config{}, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, llm.KindGemini, s.Provider)
	assert.Equal(t, "gemini-2.0-flash-lite-preview-02-05", s.Model)
	assert.Equal(t, ":8501", s.Addr)
	assert.Equal(t, 30, s.RateLimitPerMinute)
	assert.Equal(t, 12*time.Hour, s.SessionTTL)
	assert.Equal(t, "English", s.InterfaceLanguage)
	assert.Equal(t, "text", s.LogFormat)
	assert.Zero(t, s.RequestTimeout)
	assert.False(t, s.Stream)
}

func TestPrecedence_CLIOverRepoOverGlobal(t *testing.T) {
	global := &Config{
		Provider:       "openai",
		Model:          "gpt-4o",
		RequestTimeout: "10s",
		Stream:         boolPtr(true),
		Server:         ServerConfig{Addr: ":7000", RateLimitPerMinute: 5, SessionTTL: "2h"},
	}
	repo := &Config{
		Model:  "gpt-4o-mini",
		Stream: boolPtr(false),
		Server: ServerConfig{Addr: ":7100"},
	}

	merged := MergeFiles(global, repo)
	s, err := Resolve(merged, Overrides{Addr: ":7200"})
	require.NoError(t, err)

	assert.Equal(t, llm.KindOpenAI, s.Provider, "global")
	assert.Equal(t, "gpt-4o-mini", s.Model, "repo over global")
	assert.False(t, s.Stream, "repo false overrides global true")
	assert.Equal(t, ":7200", s.Addr, "cli over repo")
	assert.Equal(t, 5, s.RateLimitPerMinute, "global")
	assert.Equal(t, 2*time.Hour, s.SessionTTL)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
}

func TestMergeFiles_ProviderChangeDropsModel(t *testing.T) {
	global := &Config{Provider: "openai", Model: "gpt-4o", BaseURL: "https://proxy"}
	merged := MergeFiles(global, &Config{Provider: "groq"})
	assert.Equal(t, "groq", merged.Provider)
	assert.Empty(t, merged.Model)
	assert.Empty(t, merged.BaseURL)
	assert.Equal(t, "gpt-4o", global.Model, "inputs untouched")
}

func TestResolve_CLIProviderDropsFileModel(t *testing.T) {
	s, err := Resolve(&Config{Provider: "openai", Model: "gpt-4o"}, Overrides{Provider: "anthropic"})
	require.NoError(t, err)
	assert.Equal(t, llm.KindAnthropic, s.Provider)
	assert.Equal(t, "claude-sonnet-4-5-20250929", s.Model)

	s, err = Resolve(&Config{Provider: "openai", Model: "gpt-4o"}, Overrides{Provider: "openai", Stream: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", s.Model)
	assert.True(t, s.Stream)
}

func TestSameProviderSpelledDifferentlyKeepsModel(t *testing.T) {
	s, err := Resolve(&Config{Provider: "groq", Model: "llama-3.1-8b-instant", BaseURL: "https://groq.proxy/v1/"}, Overrides{Provider: "Groq"})
	require.NoError(t, err)
	assert.Equal(t, llm.KindGroq, s.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", s.Model)
	assert.Equal(t, "https://groq.proxy/v1/", s.BaseURL)

	merged := MergeFiles(&Config{Provider: "Google Gemini", Model: "gemini-1.5-pro"}, &Config{Provider: "GEMINI"})
	assert.Equal(t, "gemini-1.5-pro", merged.Model)
}

func TestSameProvider(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"groq", "Groq", true},
		{"gemini", "Google Gemini", true},
		{" openai ", "OpenAI", true},
		{"openai", "groq", false},
		{"groq", "", false},
		{"", "", true},
		{"watson", "Watson", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sameProvider(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestResolve_DisplayNameProvider(t *testing.T) {
	s, err := Resolve(&Config{Provider: "Google Gemini", Model: "gemini-1.5-flash"}, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, llm.KindGemini, s.Provider)
	assert.Equal(t, "gemini-1.5-flash", s.Model)
}

func TestResolve_Invalid(t *testing.T) {
	_, err := Resolve(&Config{}, Overrides{Provider: "watson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider")
}

func TestSettings_LLMConfig(t *testing.T) {
	s, err := Resolve(&Config{Provider: "compatible", BaseURL: "http://localhost:11434/v1/", Model: "llama3", RequestTimeout: "1m"}, Overrides{})
	require.NoError(t, err)
	c := s.LLMConfig("key")
	assert.Equal(t, llm.Config{
		Kind:    llm.KindCompatible,
		APIKey:  "key",
		BaseURL: "http://localhost:11434/v1/",
		Model:   "llama3",
		Timeout: time.Minute,
	}, c)
}

func TestLoadAll(t *testing.T) {
	writeGlobal(t, "provider: openai\ninterface_language: French\n")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("interface_language: Arabic\n"), 0o600))

	cfg, err := LoadAll(dir)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "Arabic", cfg.InterfaceLanguage)
}
