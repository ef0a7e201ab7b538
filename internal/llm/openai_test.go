package llm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, handler func(w http.ResponseWriter, body map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		handler(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newOpenAI(t *testing.T, kind llm.Kind, srv *httptest.Server) *llm.OpenAIProvider {
	t.Helper()
	p, err := llm.NewOpenAIProvider(kind,
		llm.WithAPIKey("test-key"),
		llm.WithBaseURL(srv.URL+"/v1/"),
		llm.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_Complete(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, body map[string]any) {
		assert.Equal(t, "gpt-4o-mini", body["model"])
		msgs, ok := body["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "be precise", msgs[0].(map[string]any)["content"])
		assert.Equal(t, "user", msgs[1].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"Only the delta."},"finish_reason":"stop","logprobs":null}],"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`))
	})
	p := newOpenAI(t, llm.KindOpenAI, srv)

	resp, err := p.Complete(context.Background(), llm.Request{
		Prompt:       "compare",
		SystemPrompt: "be precise",
	})
	require.NoError(t, err)
	assert.Equal(t, "Only the delta.", resp.Content)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 3, resp.Usage.OutputTokens)
}

func TestOpenAIProvider_NoSystemMessageWhenEmpty(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, body map[string]any) {
		msgs, _ := body["messages"].([]any)
		assert.Len(t, msgs, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop","logprobs":null}]}`))
	})
	p := newOpenAI(t, llm.KindOpenAI, srv)

	resp, err := p.Complete(context.Background(), llm.Request{Prompt: "x", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", resp.Model)
}

func TestOpenAIProvider_RequestOptions(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, body map[string]any) {
		assert.InDelta(t, 0.2, body["temperature"], 1e-9)
		assert.InDelta(t, 512, body["max_tokens"], 1e-9)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop","logprobs":null}]}`))
	})
	p := newOpenAI(t, llm.KindOpenAI, srv)

	temp := 0.2
	_, err := p.Complete(context.Background(), llm.Request{Prompt: "x", MaxTokens: 512, Temperature: &temp})
	require.NoError(t, err)
}

func TestOpenAIProvider_Streaming(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, body map[string]any) {
		assert.Equal(t, true, body["stream"])
		w.Header().Set("Content-Type", "text/event-stream")
		for _, piece := range []string{"## Core", " Divergence"} {
			chunk := fmt.Sprintf(`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"llama-3.3-70b-versatile","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`, piece)
			_, _ = w.Write([]byte("data: " + chunk + "\n\n"))
		}
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	})
	p := newOpenAI(t, llm.KindGroq, srv)

	var deltas []string
	resp, err := p.Complete(context.Background(), llm.Request{
		Prompt:  "compare",
		OnDelta: func(d string) { deltas = append(deltas, d) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"## Core", " Divergence"}, deltas)
	assert.Equal(t, "## Core Divergence", resp.Content)
	assert.Equal(t, "llama-3.3-70b-versatile", resp.Model)
}

func TestOpenAIProvider_ErrorCarriesKind(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, _ map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})
	p := newOpenAI(t, llm.KindGroq, srv)

	_, err := p.Complete(context.Background(), llm.Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groq: completion failed")
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, _ map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`))
	})
	p := newOpenAI(t, llm.KindOpenAI, srv)

	_, err := p.Complete(context.Background(), llm.Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIProvider_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o","object":"model","created":1,"owned_by":"openai"},{"id":"gpt-4o-mini","object":"model","created":1,"owned_by":"openai"}]}`))
	}))
	defer srv.Close()
	p := newOpenAI(t, llm.KindOpenAI, srv)

	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "gpt-4o", models[0].ID)
}

func TestNewOpenAIProvider_KeyFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")
	p, err := llm.NewOpenAIProvider(llm.KindGroq)
	require.NoError(t, err)
	assert.Equal(t, llm.KindGroq, p.Kind())
}

func TestNewOpenAIProvider_NoKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	_, err := llm.NewOpenAIProvider(llm.KindGroq)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestNewOpenAIProvider_CompatibleNeedsModel(t *testing.T) {
	_, err := llm.NewOpenAIProvider(llm.KindCompatible, llm.WithAPIKey("k"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model required")
}
