// Package llm talks to an OpenAI-compatible completion endpoint and relays
// the reply as a finite stream of text fragments.
package llm

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/comigor/solace/internal/config"
)

// ModelConfig is the per-request sampling configuration. It is read-only
// from the client's point of view.
type ModelConfig struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Client streams chat completions from the configured endpoint.
type Client struct {
	api *openai.Client
}

// NewClient creates a client for the configured OpenAI-compatible endpoint.
func NewClient(cfg config.LLMConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{api: openai.NewClientWithConfig(apiCfg)}
}

// Stream sends the assembled payload upstream and returns the fragment
// stream. The stream is finite and not restartable; the client never retries
// on its own.
func (c *Client) Stream(ctx context.Context, messages []openai.ChatCompletionMessage, mc ModelConfig) (FragmentStream, error) {
	req := openai.ChatCompletionRequest{
		Model:       mc.Model,
		Messages:    messages,
		Temperature: mc.Temperature,
		TopP:        mc.TopP,
		MaxTokens:   mc.MaxTokens,
		Stream:      true,
	}
	s, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	return &fragmentStream{s: s}, nil
}

// fragmentStream adapts the SDK stream to content-only fragments.
type fragmentStream struct {
	s *openai.ChatCompletionStream
}

// Recv returns the next non-empty content delta, io.EOF when the upstream
// signals completion, or a classified error.
func (f *fragmentStream) Recv() (string, error) {
	for {
		resp, err := f.s.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", classify(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}

func (f *fragmentStream) Close() error {
	return f.s.Close()
}
