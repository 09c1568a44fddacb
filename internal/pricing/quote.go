// Package pricing resolves market price quotes for a commodity at a location and
// derives a suggested sale price from them.
package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// Trend is the direction a market is moving.
type Trend string

const (
	TrendStable  Trend = "stable"
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
)

// SourceKind identifies which resolution tier produced a quote.
type SourceKind string

const (
	SourceOfficial   SourceKind = "official-statistics"
	SourceGenerative SourceKind = "generative-estimate"
	SourceHeuristic  SourceKind = "heuristic-fallback"
)

// Provider labels shown to users next to a quote.
const (
	LabelOfficial   = "Agmarknet (Government of India)"
	LabelGenerative = "AI-Powered Estimate"
	LabelHeuristic  = "Estimated (Fallback data)"
)

// Source is the provenance of a quote.
type Source struct {
	Kind  SourceKind `json:"kind"`
	Label string     `json:"label"`
}

// Quote is a per-kg rupee price snapshot for one commodity at one location.
type Quote struct {
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	AvgPrice float64 `json:"avgPrice"`
	Trend    Trend   `json:"trend"`
	Source   Source  `json:"source"`
}

// Usable reports whether every price in the quote is positive.
func (q Quote) Usable() bool {
	return q.MinPrice > 0 && q.MaxPrice > 0 && q.AvgPrice > 0
}


// Query is the input to a price resolution.
type Query struct {
	Commodity string
	Location  string
	Quantity  int
}

// DefaultQuantity is assumed when a caller sends a missing or non-numeric quantity.
const DefaultQuantity = 10

var leadingIntRe = regexp.MustCompile(`^[+-]?\d+`)

// leadingInt parses the integer prefix of s, ignoring surrounding whitespace,
// so "42 rupees" and "35.7" yield 42 and 35.
func leadingInt(s string) (int, bool) {
	m := leadingIntRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseQuantity converts a raw quantity field to units, defaulting to
// DefaultQuantity for anything that does not parse to a positive integer.
func ParseQuantity(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n <= 0 {
		return DefaultQuantity
	}
	return n
}
