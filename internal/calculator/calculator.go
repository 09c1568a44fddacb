// Package calculator prices a shopping bill line by line with bulk discounts.
package calculator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyBill   = errors.New("bill has no items")
	ErrInvalidLine = errors.New("price and weight must be positive")
)

// Unit is the weight unit of a line.
type Unit string

const (
	UnitKg   Unit = "kg"
	UnitGram Unit = "g"
)

// Line is one item as entered by the vendor.
type Line struct {
	Name       string  `json:"name"`
	PricePerKg float64 `json:"pricePerKg"`
	Weight     float64 `json:"weight"`
	Unit       Unit    `json:"unit"`
}

// PricedLine is a line with its discount applied.
type PricedLine struct {
	Line
	WeightKg       float64 `json:"weightKg"`
	Subtotal       float64 `json:"subtotal"`
	Discount       int     `json:"discount"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

// Bill is a priced list of lines.
type Bill struct {
	Lines      []PricedLine `json:"items"`
	GrandTotal float64      `json:"grandTotal"`
}

// DiscountPercent is the bulk discount for a weight in kg.
func DiscountPercent(weightKg float64) int {
	switch {
	case weightKg >= 50:
		return 10
	case weightKg >= 20:
		return 5
	case weightKg >= 10:
		return 2
	}
	return 0
}

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// PriceLine computes subtotal, discount and total for one line, in paise precision.
func PriceLine(l Line) (PricedLine, error) {
	if !(l.PricePerKg > 0) || !(l.Weight > 0) {
		return PricedLine{}, fmt.Errorf("%w: %q", ErrInvalidLine, l.Name)
	}
	if l.Unit == "" {
		l.Unit = UnitKg
	}

	weight := decimal.NewFromFloat(l.Weight)
	switch l.Unit {
	case UnitKg:
	case UnitGram:
		weight = weight.Div(thousand)
	default:
		return PricedLine{}, fmt.Errorf("unknown unit %q", l.Unit)
	}

	pct := DiscountPercent(weight.InexactFloat64())
	subtotal := decimal.NewFromFloat(l.PricePerKg).Mul(weight).Round(2)
	discount := subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(2)

	return PricedLine{
		Line:           l,
		WeightKg:       weight.InexactFloat64(),
		Subtotal:       subtotal.InexactFloat64(),
		Discount:       pct,
		DiscountAmount: discount.InexactFloat64(),
		Total:          subtotal.Sub(discount).InexactFloat64(),
	}, nil
}

// NewBill prices every line and sums the totals.
func NewBill(lines []Line) (Bill, error) {
	if len(lines) == 0 {
		return Bill{}, ErrEmptyBill
	}

	bill := Bill{Lines: make([]PricedLine, 0, len(lines))}
	sum := decimal.Zero
	for _, l := range lines {
		priced, err := PriceLine(l)
		if err != nil {
			return Bill{}, err
		}
		bill.Lines = append(bill.Lines, priced)
		sum = sum.Add(decimal.NewFromFloat(priced.Total))
	}
	bill.GrandTotal = sum.Round(2).InexactFloat64()
	return bill, nil
}

var finalAmount = map[string][2]string{
	"en": {"Final Amount", "rupees"},
	"hi": {"अंतिम राशि", "रुपये"},
	"te": {"చివరి మొత్తం", "రూపాయలు"},
	"ta": {"இறுதி தொகை", "ரூபாய்"},
	"kn": {"ಅಂತಿಮ ಮೊತ್ತ", "ರೂಪಾಯಿ"},
	"ml": {"അവസാന തുക", "രൂപ"},
}

// SpokenTotal is the read-aloud sentence for an amount, rounded to whole rupees.
func SpokenTotal(amount float64, lang string) string {
	words, ok := finalAmount[lang]
	if !ok {
		words = finalAmount["en"]
	}
	rupees := decimal.NewFromFloat(amount).Round(0).IntPart()
	return words[0] + " " + strconv.FormatInt(rupees, 10) + " " + words[1]
}

var (
	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
	gramRe   = regexp.MustCompile(`\b(g|gm|gms|gram|grams)\b`)
)

// ParseSpoken reads a phrase such as "10 kilos at 28 rupees": the first number is the
// weight and the second the price per kg. Grams are recognised by word.
func ParseSpoken(text string) (Line, bool) {
	lower := strings.ToLower(text)
	nums := numberRe.FindAllString(lower, -1)
	if len(nums) < 2 {
		return Line{}, false
	}
	weight, err := strconv.ParseFloat(nums[0], 64)
	if err != nil {
		return Line{}, false
	}
	price, err := strconv.ParseFloat(nums[1], 64)
	if err != nil {
		return Line{}, false
	}

	unit := UnitKg
	if !strings.Contains(lower, "kilo") && !strings.Contains(lower, "kg") && gramRe.MatchString(lower) {
		unit = UnitGram
	}
	return Line{PricePerKg: price, Weight: weight, Unit: unit}, true
}
