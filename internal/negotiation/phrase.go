package negotiation

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"mandi-mitra/internal/services/llm"
)

// TextCompleter is the generative text model.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, p llm.Params) (string, error)
}

var phraseParams = llm.Params{MaxTokens: 100, Temperature: 0.7, TopP: 0.9}

var edgeQuotes = regexp.MustCompile(`^["']|["']$`)

// Rephraser asks a model for a more natural bargaining sentence. A nil Rephraser or
// one without a model keeps the templated phrase.
type Rephraser struct {
	model TextCompleter
}

func NewRephraser(model TextCompleter) *Rephraser {
	return &Rephraser{model: model}
}

// Phrase returns the model's sentence for res, or res.Phrase when the model fails or
// replies with something too short or too long to be a single sentence.
func (r *Rephraser) Phrase(ctx context.Context, in Input, res Result) string {
	if r == nil || r.model == nil {
		return res.Phrase
	}

	reply, err := r.model.Complete(ctx, phrasePrompt(in, res), phraseParams)
	if err != nil {
		log.Printf("negotiation phrase model error: %v", err)
		return res.Phrase
	}
	reply = strings.TrimSpace(reply)
	n := utf8.RuneCountInString(reply)
	if n <= 10 || n >= 200 {
		return res.Phrase
	}
	return edgeQuotes.ReplaceAllString(reply, "")
}

func phrasePrompt(in Input, res Result) string {
	var b strings.Builder
	party, counterpart, offerLabel, reference := "vendor", "buyer", "Buyer's offer", "quality or market conditions"
	audience := "Indian mandi vendors"
	if in.Role == RoleBuyer {
		party, counterpart, offerLabel, reference = "buyer", "vendor", "Your offer", "market rates or budget"
		audience = "Indian market buyers"
	}

	fmt.Fprintf(&b, "You are an AI negotiation assistant for %s.\n\n", audience)
	fmt.Fprintf(&b, "Commodity: %s\n", in.Commodity)
	fmt.Fprintf(&b, "Vendor's asking price: ₹%s/kg\n", formatRupees(in.AskingPrice))
	fmt.Fprintf(&b, "%s: ₹%s/kg\n", offerLabel, formatRupees(in.Offer))
	fmt.Fprintf(&b, "Market average: ₹%s/kg\n", formatRupees(res.MarketPrice))
	fmt.Fprintf(&b, "Suggested counter-offer: ₹%s/kg\n\n", formatRupees(res.CounterOffer))
	fmt.Fprintf(&b, "Generate ONE polite, respectful negotiation sentence the %s can say to the %s. The sentence should:\n", party, counterpart)
	b.WriteString("- Be polite and respectful\n")
	b.WriteString("- Mention the counter-offer price\n")
	fmt.Fprintf(&b, "- Reference %s\n", reference)
	b.WriteString("- Be short (max 20 words)\n")
	fmt.Fprintf(&b, "- Sound natural for an Indian %s\n\n", party)
	b.WriteString("Respond with ONLY the sentence, nothing else. In English.")
	return b.String()
}
