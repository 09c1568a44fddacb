package pricing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"mandi-mitra/internal/services/llm"
)

// TextCompleter is the generative text model.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, p llm.Params) (string, error)
}

var estimateParams = llm.Params{MaxTokens: 50, Temperature: 0.3, TopP: 0.9}

// GenerativeTier asks a text model for a min,max,average estimate.
type GenerativeTier struct {
	model TextCompleter
	now   func() time.Time
}

// NewGenerativeTier creates the tier. now may be nil.
func NewGenerativeTier(model TextCompleter, now func() time.Time) *GenerativeTier {
	if now == nil {
		now = time.Now
	}
	return &GenerativeTier{model: model, now: now}
}

func (t *GenerativeTier) Kind() SourceKind { return SourceGenerative }

func (t *GenerativeTier) Attempt(ctx context.Context, q Query) (Quote, bool) {
	prompt := EstimatePrompt(q, t.now())
	reply, err := t.model.Complete(ctx, prompt, estimateParams)
	if err != nil {
		log.Printf("price estimate model error: %v", err)
		return Quote{}, false
	}

	quote, ok := ParseEstimate(reply)
	if !ok {
		log.Printf("price estimate unparseable: %q", reply)
		return Quote{}, false
	}
	return quote, true
}

// EstimatePrompt builds the constrained prompt for a commodity/location estimate.
func EstimatePrompt(q Query, date time.Time) string {
	var b strings.Builder
	b.WriteString("You are an expert agricultural market analyst for India. Provide realistic wholesale market prices for the following:\n\n")
	fmt.Fprintf(&b, "Commodity: %s\n", q.Commodity)
	fmt.Fprintf(&b, "Location: %s, India\n", q.Location)
	fmt.Fprintf(&b, "Quantity: %d kg\n", q.Quantity)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("2/1/2006"))
	b.WriteString("Based on typical Indian agricultural market conditions, seasonal factors, and regional variations, provide:\n")
	b.WriteString("1. Minimum wholesale price per kg (in rupees)\n")
	b.WriteString("2. Maximum wholesale price per kg (in rupees)\n")
	b.WriteString("3. Average/Modal price per kg (in rupees)\n\n")
	b.WriteString("Respond ONLY with three numbers separated by commas, nothing else.\n")
	b.WriteString("Format: min,max,average\n")
	b.WriteString("Example: 35,50,42\n\n")
	b.WriteString("Your response:")
	return b.String()
}

// ParseEstimate reads the first three positive integers of a comma separated reply as
// min, max and average, by position.
func ParseEstimate(reply string) (Quote, bool) {
	var nums []float64
	for _, tok := range strings.Split(reply, ",") {
		n, ok := leadingInt(tok)
		if !ok || n <= 0 {
			continue
		}
		nums = append(nums, float64(n))
	}
	if len(nums) < 3 {
		return Quote{}, false
	}

	return Quote{
		MinPrice: nums[0],
		MaxPrice: nums[1],
		AvgPrice: nums[2],
		Trend:    TrendStable,
		Source:   Source{Kind: SourceGenerative, Label: LabelGenerative},
	}, true
}
