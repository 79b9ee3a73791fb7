// Package llm wraps an OpenAI-compatible chat-completion endpoint behind a
// minimal request/response surface shared by every workflow step.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Request describes a single chat completion call. Temperature is passed
// through per call; JSONOnly switches the endpoint into strict JSON-object
// output mode for structured decisions.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	JSONOnly    bool
}

// ChatCompleter is the interface workflow steps depend on. Tests substitute
// scripted fakes.
type ChatCompleter interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client talks to an OpenAI-compatible endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// Config holds connection settings for the endpoint.
type Config struct {
	APIKey  string
	BaseURL string // e.g. "https://api.openai.com/v1"
	Model   string // e.g. "gpt-4o-mini"
}

// NewClient creates a Client for the given endpoint and model.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}, nil
}

// Complete sends one chat completion request and returns the raw message
// content of the first choice.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	// go-openai marshals Temperature with omitempty, so a literal 0 would
	// vanish from the wire request and the API default (1.0) would apply.
	// The smallest nonzero float survives serialization and behaves as 0.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: temperature,
	}
	if req.JSONOnly {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		slog.Warn("chat completion failed",
			"model", c.model,
			"elapsed", time.Since(start),
			"error", err,
		)
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices in response")
	}

	slog.Debug("chat completion",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed", time.Since(start),
	)

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
