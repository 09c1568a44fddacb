// Package translate talks to a LibreTranslate compatible translation endpoint.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// AutoDetect asks the endpoint to detect the source language.
const AutoDetect = "auto"

// Translator converts text between language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Normalize reduces a locale such as "hi-IN" to its language code.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Client is an HTTP Translator.
type Client struct {
	apiKey string
	client *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	return &Client{apiKey: apiKey, client: client}
}

func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	source, target = Normalize(source), Normalize(target)
	if text == "" || source == target {
		return text, nil
	}
	if source == "" {
		source = AutoDetect
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(translateRequest{
			Q:      text,
			Source: source,
			Target: target,
			Format: "text",
			APIKey: c.apiKey,
		}).
		Post("/translate")
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}

	var body translateResponse
	if resp.StatusCode() != 200 {
		if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
			return "", fmt.Errorf("translate API error %d: %s", resp.StatusCode(), body.Error)
		}
		return "", fmt.Errorf("translate API error %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("failed to parse translate response: %w", err)
	}
	if body.TranslatedText == "" {
		return "", errors.New("translate: empty translation")
	}
	return body.TranslatedText, nil
}

// Passthrough returns text unchanged. It stands in when no endpoint is configured.
type Passthrough struct{}

func (Passthrough) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

// New returns an HTTP client when baseURL is set and Passthrough otherwise.
func New(baseURL, apiKey string, timeout time.Duration) Translator {
	if baseURL == "" {
		return Passthrough{}
	}
	return NewClient(baseURL, apiKey, timeout)
}

// Localize translates English text into lang, returning text unchanged for English or
// when translation fails.
func Localize(ctx context.Context, tr Translator, text, lang string) string {
	lang = Normalize(lang)
	if tr == nil || lang == "" || lang == "en" {
		return text
	}
	out, err := tr.Translate(ctx, text, "en", lang)
	if err != nil {
		log.Printf("translation to %s failed: %v", lang, err)
		return text
	}
	return out
}
