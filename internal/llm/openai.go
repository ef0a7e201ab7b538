// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider for every endpoint that speaks the
// OpenAI Chat Completions protocol: OpenAI itself, Groq, and self-hosted
// compatible servers.
type OpenAIProvider struct {
	client openai.Client
	kind   Kind
	opts   options
}

var (
	_ Provider    = (*OpenAIProvider)(nil)
	_ ModelLister = (*OpenAIProvider)(nil)
)

// NewOpenAIProvider creates a chat-completions provider labelled with kind.
// The API key falls back to the kind's environment variables.
func NewOpenAIProvider(kind Kind, opts ...Option) (*OpenAIProvider, error) {
	o := buildOptions(kind.DefaultModel(), opts)
	if o.apiKey == "" {
		o.apiKey = KeyFromEnv(kind)
	}
	if o.apiKey == "" {
		return nil, fmt.Errorf("llm: %s not set and no API key provided", strings.Join(kind.EnvKeys(), "/"))
	}
	if o.model == "" {
		return nil, errors.New("llm: model required for OpenAI-compatible provider")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(o.apiKey),
		option.WithMaxRetries(o.maxRetries),
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.httpClient))
	}
	if o.timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(o.timeout))
	}

	return &OpenAIProvider{
		client: openai.NewClient(clientOpts...),
		kind:   kind,
		opts:   o,
	}, nil
}

// Complete issues a chat completion with separate system and user messages.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.opts.model
	if req.Model != "" {
		model = req.Model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	if req.Streaming() {
		return p.stream(ctx, model, params, req.OnDelta)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: completion failed: %w", p.kind, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices in response", p.kind)
	}

	return &Response{
		Content: completion.Choices[0].Message.Content,
		Model:   completion.Model,
		Usage: Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
	}, nil
}

func (p *OpenAIProvider) stream(ctx context.Context, model string, params openai.ChatCompletionNewParams, onDelta DeltaFunc) (*Response, error) {
	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close() //nolint:errcheck // best-effort close

	var b strings.Builder
	out := &Response{Model: model}
	for stream.Next() {
		chunk := stream.Current()
		if chunk.Model != "" {
			out.Model = chunk.Model
		}
		if chunk.Usage.TotalTokens > 0 {
			out.Usage = Usage{
				InputTokens:  int(chunk.Usage.PromptTokens),
				OutputTokens: int(chunk.Usage.CompletionTokens),
			}
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			b.WriteString(delta)
			onDelta(delta)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%s: completion failed: %w", p.kind, err)
	}

	out.Content = b.String()
	return out, nil
}

// ListModels returns every model id visible to the API key.
func (p *OpenAIProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	iter := p.client.Models.ListAutoPaging(ctx)
	for iter.Next() {
		m := iter.Current()
		out = append(out, ModelInfo{ID: m.ID})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%s: list models failed: %w", p.kind, err)
	}
	return out, nil
}

// Kind returns the provider variant this client was built for.
func (p *OpenAIProvider) Kind() Kind {
	return p.kind
}

// Model returns the default model configured for this provider.
func (p *OpenAIProvider) Model() string {
	return p.opts.model
}
