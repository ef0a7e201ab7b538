package redact

import (
	"os"
	"testing"
)

func TestString_RedactsKnownEnvVars(t *testing.T) {
	const secret = "AIzaTESTSECRETVALUE1234567890" //nolint:gosec // fake test credential
	t.Setenv("GEMINI_API_KEY", secret)
	resetCache()
	t.Cleanup(resetCache)

	input := "googleapi: Error 400: API key AIzaTESTSECRETVALUE1234567890 not valid"
	got := String(input)

	if expected := "googleapi: Error 400: API key [REDACTED] not valid"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestString_NoSecretSetIsNoop(t *testing.T) {
	for _, v := range sensitiveEnvVars {
		t.Setenv(v, "")
		os.Unsetenv(v) //nolint:errcheck // test cleanup
	}
	resetCache()
	t.Cleanup(resetCache)

	input := "some normal error message"
	if got := String(input); got != input {
		t.Errorf("expected no change, got %q", got)
	}
}

func TestString_ShortValuesIgnored(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "abc")
	resetCache()
	t.Cleanup(resetCache)

	input := "abc is in the string abc"
	if got := String(input); got != input {
		t.Errorf("expected no redaction for short values, got %q", got)
	}
}

func TestString_MultipleSecrets(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-token-aaaa")
	t.Setenv("ANTHROPIC_API_KEY", "test-token-bbbb")
	resetCache()
	t.Cleanup(resetCache)

	got := String("tokens: test-token-aaaa and test-token-bbbb")
	if expected := "tokens: [REDACTED] and [REDACTED]"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestWith_RedactsRequestSecrets(t *testing.T) {
	resetCache()
	t.Cleanup(resetCache)

	got := With("openai: 401 Incorrect API key provided: sk-form-key-9999", "sk-form-key-9999", "")
	if expected := "openai: 401 Incorrect API key provided: [REDACTED]"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AIzaSyAaMQcLQS009cpvXkM1fX3h", "AIzaS...fX3h"},
		{"short", Placeholder},
		{"", Placeholder},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
