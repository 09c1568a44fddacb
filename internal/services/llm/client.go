// Package llm builds the generative text model used for price estimates and negotiation
// phrasing. Providers are eino chat models; callers only see Complete.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Params are per-call generation parameters.
type Params struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// Settings selects and configures a provider.
type Settings struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// Client completes single-turn prompts.
type Client struct {
	chat model.BaseChatModel
}

// NewClient wraps an existing chat model.
func NewClient(chat model.BaseChatModel) *Client {
	return &Client{chat: chat}
}

// New builds a client for the configured provider. It returns (nil, nil) when no
// provider or key is configured, meaning generative features are disabled.
func New(ctx context.Context, s Settings) (*Client, error) {
	if s.Provider == "" || s.APIKey == "" {
		return nil, nil
	}

	var (
		chat model.BaseChatModel
		err  error
	)
	switch strings.ToLower(s.Provider) {
	case ProviderOpenAI:
		cfg := &openai.ChatModelConfig{
			APIKey: s.APIKey,
			Model:  s.Model,
		}
		if cfg.Model == "" {
			cfg.Model = "gpt-4o-mini"
		}
		if s.BaseURL != "" {
			cfg.BaseURL = s.BaseURL
		}
		chat, err = openai.NewChatModel(ctx, cfg)
	case ProviderDeepSeek:
		cfg := &deepseek.ChatModelConfig{
			APIKey:  s.APIKey,
			Model:   s.Model,
			BaseURL: s.BaseURL,
		}
		if cfg.Model == "" {
			cfg.Model = "deepseek-chat"
		}
		chat, err = deepseek.NewChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", s.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", s.Provider, err)
	}
	return NewClient(chat), nil
}

// Enabled reports whether a model is attached.
func (c *Client) Enabled() bool {
	return c != nil && c.chat != nil
}

// Complete sends prompt as a single user message and returns the trimmed reply.
func (c *Client) Complete(ctx context.Context, prompt string, p Params) (string, error) {
	if !c.Enabled() {
		return "", errors.New("llm: client not configured")
	}

	var opts []model.Option
	if p.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(p.MaxTokens))
	}
	if p.Temperature > 0 {
		opts = append(opts, model.WithTemperature(p.Temperature))
	}
	if p.TopP > 0 {
		opts = append(opts, model.WithTopP(p.TopP))
	}

	msg, err := c.chat.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, opts...)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	if msg == nil {
		return "", ErrEmptyResponse
	}
	out := strings.TrimSpace(msg.Content)
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
