// Package ocr extracts text lines from images through an OCR.space compatible API.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.ocr.space"

// ErrNotConfigured is returned when no OCR key is set.
var ErrNotConfigured = errors.New("ocr: api key not configured")

type line struct {
	LineText string  `json:"LineText"`
	MinTop   float64 `json:"MinTop"`
}

type parsedResult struct {
	ParsedText  string `json:"ParsedText"`
	TextOverlay struct {
		Lines []line `json:"Lines"`
	} `json:"TextOverlay"`
}

type parseResponse struct {
	ParsedResults         []parsedResult  `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// Client uploads images for line detection.
type Client struct {
	apiKey string
	client *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)

	return &Client{apiKey: apiKey, client: client}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// DetectLines returns the text lines found in image, ordered top to bottom.
func (c *Client) DetectLines(ctx context.Context, image []byte, filename string) ([]string, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	if filename == "" {
		filename = "image.jpg"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetFileReader("file", filename, bytes.NewReader(image)).
		SetFormData(map[string]string{
			"isOverlayRequired": "true",
			"scale":             "true",
			"OCREngine":         "2",
		}).
		Post("/parse/image")
	if err != nil {
		return nil, fmt.Errorf("ocr request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("ocr API error %d", resp.StatusCode())
	}

	var body parseResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse ocr response: %w", err)
	}
	if body.IsErroredOnProcessing {
		return nil, fmt.Errorf("ocr processing error: %s", strings.TrimSpace(string(body.ErrorMessage)))
	}
	return collectLines(body.ParsedResults), nil
}

func collectLines(results []parsedResult) []string {
	var lines []line
	for _, r := range results {
		if len(r.TextOverlay.Lines) > 0 {
			lines = append(lines, r.TextOverlay.Lines...)
			continue
		}
		for _, text := range strings.Split(r.ParsedText, "\n") {
			lines = append(lines, line{LineText: text, MinTop: float64(len(lines))})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].MinTop < lines[j].MinTop })

	var out []string
	for _, l := range lines {
		if text := strings.TrimSpace(l.LineText); text != "" {
			out = append(out, text)
		}
	}
	return out
}
