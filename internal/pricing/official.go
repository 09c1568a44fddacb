package pricing

import (
	"context"
	"log"

	"mandi-mitra/internal/catalog"
	"mandi-mitra/internal/money"
	"mandi-mitra/internal/services/agmarknet"
)

// quintalToKg converts Agmarknet per-quintal prices to per-kg.
const quintalToKg = 100.0

// StatisticsSource returns official market records for a commodity in a state.
type StatisticsSource interface {
	Records(ctx context.Context, commodity, state string) ([]agmarknet.Record, error)
}

// OfficialTier averages recent Agmarknet records.
type OfficialTier struct {
	catalog *catalog.Catalog
	source  StatisticsSource
}

func NewOfficialTier(cat *catalog.Catalog, source StatisticsSource) *OfficialTier {
	return &OfficialTier{catalog: cat, source: source}
}

func (t *OfficialTier) Kind() SourceKind { return SourceOfficial }

func (t *OfficialTier) Attempt(ctx context.Context, q Query) (Quote, bool) {
	commodity, commodityMapped := t.catalog.AgmarknetName(q.Commodity)
	state, stateMapped := t.catalog.StateName(q.Location)
	if !commodityMapped || !stateMapped {
		log.Printf("agmarknet: no mapping for %q/%q, querying %s in %s", q.Commodity, q.Location, commodity, state)
	}

	records, err := t.source.Records(ctx, commodity, state)
	if err != nil {
		log.Printf("agmarknet: %v", err)
		return Quote{}, false
	}
	if len(records) == 0 {
		log.Printf("agmarknet: no records found for %s in %s", commodity, state)
		return Quote{}, false
	}

	quote, ok := AggregateRecords(records)
	if !ok {
		log.Printf("agmarknet: no valid prices in %d records for %s in %s", len(records), commodity, state)
		return Quote{}, false
	}
	log.Printf("agmarknet: %d records for %s in %s, min %.0f max %.0f avg %.0f",
		len(records), commodity, state, quote.MinPrice, quote.MaxPrice, quote.AvgPrice)
	return quote, true
}

// AggregateRecords converts per-quintal records to per-kg and averages the rows whose
// modal price is positive, rounding each mean to whole rupees.
func AggregateRecords(records []agmarknet.Record) (Quote, bool) {
	var sumMin, sumMax, sumModal float64
	n := 0
	for _, r := range records {
		modal := float64(r.ModalPrice) / quintalToKg
		if modal <= 0 {
			continue
		}
		sumMin += float64(r.MinPrice) / quintalToKg
		sumMax += float64(r.MaxPrice) / quintalToKg
		sumModal += modal
		n++
	}
	if n == 0 {
		return Quote{}, false
	}

	count := float64(n)
	quote := Quote{
		MinPrice: money.Round(sumMin / count),
		MaxPrice: money.Round(sumMax / count),
		AvgPrice: money.Round(sumModal / count),
		Trend:    TrendStable,
		Source:   Source{Kind: SourceOfficial, Label: LabelOfficial},
	}
	return quote, quote.Usable()
}
