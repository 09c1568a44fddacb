// Package negotiation rates a price against the other side of a bargain and proposes
// a counter-offer.
package negotiation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mandi-mitra/internal/money"
)

var (
	ErrInvalidPrice = errors.New("asking price and offer must be positive numbers")
	ErrInvalidRole  = errors.New("mode must be vendor or buyer")
)

// Role is the side of the bargain the assessment is made for.
type Role string

const (
	RoleVendor Role = "vendor"
	RoleBuyer  Role = "buyer"
)

// ParseRole accepts "vendor" or "buyer", case-insensitively. Anything short of an
// explicit vendor mode, including an empty one, is the buyer view.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleVendor):
		return RoleVendor, nil
	case "", string(RoleBuyer):
		return RoleBuyer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Fairness colors, best to worst.
const (
	ColorBest  = "#e8f5e9"
	ColorFair  = "#fff9c4"
	ColorWarn  = "#ffe0b2"
	ColorWorst = "#ffcdd2"
)

// Fairness describes one rung of a ladder.
type Fairness struct {
	Tier       int    `json:"tier"`
	Label      string `json:"label"`
	Assessment string `json:"assessment"`
	Color      string `json:"color"`
}

var vendorLadder = [4]Fairness{
	{1, "excellent", "Excellent offer! Very close to your asking price.", ColorBest},
	{2, "good", "Good offer. Reasonable and fair.", ColorFair},
	{3, "low", "Low offer. You can negotiate higher.", ColorWarn},
	{4, "very-low", "Very low offer. Stand firm on your price.", ColorWorst},
}

var buyerLadder = [4]Fairness{
	{1, "fair", "Fair price! Close to market average.", ColorBest},
	{2, "slightly-high", "Slightly high. You can negotiate lower.", ColorFair},
	{3, "high", "High price. Negotiate for better deal.", ColorWarn},
	{4, "very-high", "Very high price. Offer market rate.", ColorWorst},
}

// DefaultMarketFactor derives a market reference from the asking price when none is
// supplied.
const DefaultMarketFactor = 0.9

// Input is one bargaining state. AskingPrice is always the vendor's price and Offer
// the buyer's, whichever side is asking for advice.
type Input struct {
	Role        Role
	Commodity   string
	AskingPrice float64
	Offer       float64
	MarketPrice float64
}

// Result is the engine's verdict.
type Result struct {
	Fairness
	CounterOffer float64 `json:"counterOffer"`
	MarketPrice  float64 `json:"marketPrice"`
	Phrase       string  `json:"suggestedPhrase"`
}

// Assess applies the role's ladder. It only fails on non-positive prices or an
// unknown role.
func Assess(in Input) (Result, error) {
	if !(in.AskingPrice > 0) || !(in.Offer > 0) {
		return Result{}, ErrInvalidPrice
	}

	market := in.MarketPrice
	if !(market > 0) {
		market = money.RoundTo(money.Mul(in.AskingPrice, DefaultMarketFactor), 2)
	}

	var res Result
	switch in.Role {
	case RoleVendor:
		res = assessVendor(in.AskingPrice, in.Offer)
	case RoleBuyer:
		res = assessBuyer(in.AskingPrice, market)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}
	res.MarketPrice = market
	res.Phrase = FallbackPhrase(in.Role, market, res.CounterOffer)
	return res, nil
}

func assessVendor(asking, offer float64) Result {
	var res Result
	switch {
	case offer >= money.Mul(asking, 0.95):
		res = Result{Fairness: vendorLadder[0], CounterOffer: money.Round(asking)}
	case offer >= money.Mul(asking, 0.85):
		res = Result{Fairness: vendorLadder[1], CounterOffer: money.Midpoint(asking, offer)}
	case offer >= money.Mul(asking, 0.75):
		res = Result{Fairness: vendorLadder[2], CounterOffer: money.Round(money.Mul(asking, 0.90))}
	default:
		res = Result{Fairness: vendorLadder[3], CounterOffer: money.Round(money.Mul(asking, 0.85))}
	}

	if res.CounterOffer < offer {
		res.CounterOffer = money.Midpoint(asking, offer)
	}
	// whole-rupee rounding of the midpoint can still land under a fractional offer
	if floor := math.Min(offer, asking); res.CounterOffer < floor {
		res.CounterOffer = math.Ceil(floor)
	}
	return res
}

func assessBuyer(asking, market float64) Result {
	var res Result
	switch {
	case asking <= money.Mul(market, 1.05):
		res = Result{Fairness: buyerLadder[0], CounterOffer: money.Round(money.Mul(asking, 0.98))}
	case asking <= money.Mul(market, 1.15):
		res = Result{Fairness: buyerLadder[1], CounterOffer: money.Round(money.Mul(market, 1.05))}
	case asking <= money.Mul(market, 1.30):
		res = Result{Fairness: buyerLadder[2], CounterOffer: money.Round(money.Mul(market, 1.10))}
	default:
		res = Result{Fairness: buyerLadder[3], CounterOffer: money.Round(market)}
	}

	if res.CounterOffer > asking {
		res.CounterOffer = money.Round(money.Mul(asking, 0.95))
	}
	if res.CounterOffer > asking {
		res.CounterOffer = math.Floor(asking)
	}
	return res
}

// FallbackPhrase is the templated sentence used when no model rephrasing is available.
func FallbackPhrase(role Role, market, counter float64) string {
	if role == RoleVendor {
		return fmt.Sprintf("Sir, considering the quality, I can offer you at ₹%s per kg.", formatRupees(counter))
	}
	return fmt.Sprintf("Brother, market rate is around ₹%s. Can you do ₹%s per kg?", formatRupees(market), formatRupees(counter))
}

func formatRupees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
