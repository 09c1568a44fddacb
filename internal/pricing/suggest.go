package pricing

import (
	"math"
	"strings"

	"mandi-mitra/internal/money"
)

// Quantity bands, in kg.
const (
	BulkQuantity   = 50
	SteadyQuantity = 20
)

// Suggestion is a quantity and trend adjusted sale price.
type Suggestion struct {
	SuggestedPrice float64  `json:"suggestedPrice"`
	Rationale      []string `json:"rationale"`
}

// Explanation joins the rationale into one sentence group.
func (s Suggestion) Explanation() string {
	return strings.Join(s.Rationale, " ")
}

// Suggest adjusts the quote's average for bulk size and trend, clamps the result to
// the quote's min/max band and rounds once at the end.
func Suggest(q Quote, quantity int) Suggestion {
	price := q.AvgPrice
	var rationale []string

	switch {
	case quantity >= BulkQuantity:
		price = money.Mul(price, 0.95)
		rationale = append(rationale, "Good bulk quantity. Price slightly below market average for faster sale.")
	case quantity >= SteadyQuantity:
		rationale = append(rationale, "Fair market price. Good quantity for steady sales.")
	default:
		price = money.Mul(price, 1.05)
		rationale = append(rationale, "Small quantity. Slightly above average to maintain profit margin.")
	}

	switch q.Trend {
	case TrendRising:
		price = money.Mul(price, 1.03)
		rationale = append(rationale, "Market is rising, good time to sell.")
	case TrendFalling:
		price = money.Mul(price, 0.98)
		rationale = append(rationale, "Market is falling, price adjusted for quick sale.")
	}

	price = math.Max(q.MinPrice, math.Min(q.MaxPrice, price))

	return Suggestion{
		SuggestedPrice: money.Round(price),
		Rationale:      rationale,
	}
}
