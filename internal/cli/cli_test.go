package cli

import (
	"strings"
	"testing"

	"mandi-mitra/internal/negotiation"
	"mandi-mitra/internal/pricing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"40", 40, false},
		{" 42.5 ", 42.5, false},
		{"₹35", 35, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"forty", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parsePrice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderQuote(t *testing.T) {
	q := pricing.Quote{
		MinPrice: 35,
		MaxPrice: 50,
		AvgPrice: 42,
		Trend:    pricing.TrendStable,
		Source:   pricing.Source{Kind: pricing.SourceHeuristic, Label: pricing.LabelHeuristic},
	}
	out := renderQuote("tomato", "mysore", 60, q, pricing.Suggest(q, 60))

	for _, want := range []string{"tomato @ mysore", "₹35/kg", "₹50/kg", "₹40/kg", "stable"} {
		if !strings.Contains(out, want) {
			t.Errorf("quote output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAssessment(t *testing.T) {
	in := negotiation.Input{Role: negotiation.RoleVendor, AskingPrice: 40, Offer: 30}
	res, err := negotiation.Assess(in)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	out := renderAssessment(in, res)

	for _, want := range []string{"vendor", "₹40/kg", "₹30/kg", "₹36/kg", "Say:"} {
		if !strings.Contains(out, want) {
			t.Errorf("assessment output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"quote": false, "negotiate": false, "catalog": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing %s command", name)
		}
	}

	quote, _, err := root.Find([]string{"quote"})
	if err != nil {
		t.Fatalf("Find(quote): %v", err)
	}
	if err := quote.Args(quote, []string{"tomato"}); err == nil {
		t.Fatalf("quote should require commodity and location")
	}
}
