package pricing

import (
	"context"
	"math/rand"

	"mandi-mitra/internal/catalog"
	"mandi-mitra/internal/money"
)

var heuristicTrends = []Trend{TrendStable, TrendRising, TrendFalling}

// HeuristicTier prices from the static base table scaled by a regional multiplier.
// Its trend is a random pick and carries no market signal.
type HeuristicTier struct {
	catalog *catalog.Catalog
	intn    func(n int) int
}

// NewHeuristicTier creates the tier. intn picks the trend index; nil uses math/rand.
func NewHeuristicTier(cat *catalog.Catalog, intn func(n int) int) *HeuristicTier {
	if intn == nil {
		intn = rand.Intn
	}
	return &HeuristicTier{catalog: cat, intn: intn}
}

func (t *HeuristicTier) Kind() SourceKind { return SourceHeuristic }

// Attempt always succeeds.
func (t *HeuristicTier) Attempt(_ context.Context, q Query) (Quote, bool) {
	return t.Estimate(q), true
}

// Estimate computes the fallback quote.
func (t *HeuristicTier) Estimate(q Query) Quote {
	base := t.catalog.BasePrice(q.Commodity)
	multiplier := t.catalog.Multiplier(q.Location)

	return Quote{
		MinPrice: money.Round(money.Mul(base.Min, multiplier)),
		MaxPrice: money.Round(money.Mul(base.Max, multiplier)),
		AvgPrice: money.Round(money.Mul(base.Avg, multiplier)),
		Trend:    heuristicTrends[t.intn(len(heuristicTrends))],
		Source:   Source{Kind: SourceHeuristic, Label: LabelHeuristic},
	}
}
