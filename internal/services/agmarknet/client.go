// Package agmarknet queries the data.gov.in Agmarknet daily mandi price resource.
package agmarknet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL    = "https://api.data.gov.in"
	DefaultResourceID = "9ef84268-d588-465a-a308-a864a43d0070"
	defaultLimit      = 10
)

// ErrNoAPIKey is returned when the client has no data.gov.in key configured.
var ErrNoAPIKey = errors.New("agmarknet: api key not configured")

// Price is a rupee value that the API sends either as a JSON number or a string.
// Unparseable values decode to zero.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(v)
	return nil
}

// Record is a single market arrival row. Prices are rupees per quintal.
type Record struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    Price  `json:"min_price"`
	MaxPrice    Price  `json:"max_price"`
	ModalPrice  Price  `json:"modal_price"`
}

type recordsResponse struct {
	Total   int      `json:"total"`
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}

// Client wraps the resource endpoint.
type Client struct {
	apiKey     string
	resourceID string
	client     *resty.Client
}

// NewClient creates a client. An empty baseURL or resourceID selects the public defaults.
func NewClient(apiKey, baseURL, resourceID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if resourceID == "" {
		resourceID = DefaultResourceID
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{
		apiKey:     apiKey,
		resourceID: resourceID,
		client:     client,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Records fetches up to ten recent rows for a commodity in a state.
func (c *Client) Records(ctx context.Context, commodity, state string) ([]Record, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api-key":            c.apiKey,
			"format":             "json",
			"filters[commodity]": commodity,
			"filters[state]":     state,
			"limit":              strconv.Itoa(defaultLimit),
		}).
		Get("/resource/" + c.resourceID)
	if err != nil {
		return nil, fmt.Errorf("agmarknet request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("agmarknet API error %d", resp.StatusCode())
	}

	var body recordsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse agmarknet response: %w", err)
	}
	return body.Records, nil
}
