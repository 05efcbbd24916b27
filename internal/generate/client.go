// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate wraps the completion endpoint. Unlike source adapters,
// failures here propagate: without a completion there is nothing to write.
package generate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

const defaultMaxTokens = 4096

// GenerationError is the only error kind the client returns. It covers
// transport failures, non-2xx responses, and empty completions.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client calls one chat-completion endpoint.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	log       *zap.Logger
}

// NewClient builds a completion client. The API key is a hard precondition,
// checked here so callers fail before any research work begins.
func NewClient(cfg types.GenerateConfig, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &GenerationError{Reason: "completion API key not configured"}
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Client{
		api:       openai.NewClientWithConfig(oc),
		model:     cfg.Model,
		maxTokens: maxTokens,
		log:       log,
	}, nil
}

// Complete sends the prompt and returns the raw completion text. An empty
// model argument falls back to the configured default model.
func (c *Client) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = c.model
	}

	c.log.Info("requesting completion",
		zap.String("model", model),
		zap.Int("prompt_chars", len(prompt)))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &GenerationError{Reason: "completion request failed", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Reason: "completion returned no choices"}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &GenerationError{Reason: "completion returned empty content"}
	}

	c.log.Info("completion received",
		zap.String("model", model),
		zap.Int("completion_chars", len(content)))
	return content, nil
}
