package negotiation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mandi-mitra/internal/services/llm"
)

type fakeModel struct {
	reply  string
	err    error
	prompt string
	params llm.Params
}

func (f *fakeModel) Complete(ctx context.Context, prompt string, p llm.Params) (string, error) {
	f.prompt, f.params = prompt, p
	return f.reply, f.err
}

func TestRephraserPhrase(t *testing.T) {
	in := Input{Role: RoleVendor, Commodity: "tomato", AskingPrice: 50, Offer: 38}
	res, err := Assess(in)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		model *fakeModel
		want  string
	}{
		{"accepted", &fakeModel{reply: "  \"Fresh stock today, can you pay ₹45 per kg?\"  "}, "Fresh stock today, can you pay ₹45 per kg?"},
		{"too short", &fakeModel{reply: "₹45 ok"}, res.Phrase},
		{"too long", &fakeModel{reply: strings.Repeat("a", 200)}, res.Phrase},
		{"model error", &fakeModel{err: errors.New("quota")}, res.Phrase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRephraser(tt.model).Phrase(context.Background(), in, res)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			if tt.model.params != phraseParams {
				t.Fatalf("params %+v", tt.model.params)
			}
		})
	}
}

func TestRephraserNil(t *testing.T) {
	var r *Rephraser
	res := Result{Phrase: "fallback"}
	if got := r.Phrase(context.Background(), Input{}, res); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	if got := NewRephraser(nil).Phrase(context.Background(), Input{}, res); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestPhrasePromptPerRole(t *testing.T) {
	vendor := phrasePrompt(Input{Role: RoleVendor, Commodity: "onion", AskingPrice: 30, Offer: 25}, Result{CounterOffer: 28, MarketPrice: 27})
	for _, want := range []string{"Indian mandi vendors", "Buyer's offer: ₹25/kg", "Suggested counter-offer: ₹28/kg", "the vendor can say to the buyer"} {
		if !strings.Contains(vendor, want) {
			t.Errorf("vendor prompt missing %q", want)
		}
	}
	buyer := phrasePrompt(Input{Role: RoleBuyer, Commodity: "onion", AskingPrice: 30, Offer: 25}, Result{CounterOffer: 27, MarketPrice: 27})
	for _, want := range []string{"Indian market buyers", "Your offer: ₹25/kg", "market rates or budget"} {
		if !strings.Contains(buyer, want) {
			t.Errorf("buyer prompt missing %q", want)
		}
	}
}
