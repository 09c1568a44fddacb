package pricing

import (
	"context"
	"log"
	"time"
)

// DefaultTierTimeout bounds each external tier when no timeout is configured.
const DefaultTierTimeout = 8 * time.Second

// Tier is one price source in the fallback chain. Attempt reports false when the
// source is unavailable or its answer is unusable; it must not block past ctx.
type Tier interface {
	Kind() SourceKind
	Attempt(ctx context.Context, q Query) (Quote, bool)
}

// Resolver tries each tier in order and falls back to the heuristic table, so
// Resolve always produces a quote.
type Resolver struct {
	tiers    []Tier
	fallback *HeuristicTier
	timeout  time.Duration
}

// NewResolver builds a resolver over the given external tiers. fallback must not be nil.
func NewResolver(fallback *HeuristicTier, timeout time.Duration, tiers ...Tier) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTierTimeout
	}
	return &Resolver{
		tiers:    tiers,
		fallback: fallback,
		timeout:  timeout,
	}
}

// Resolve returns the first usable quote from the chain. Degraded sources only show
// up in the quote's Source.
func (r *Resolver) Resolve(ctx context.Context, q Query) Quote {
	for _, tier := range r.tiers {
		if ctx.Err() != nil {
			log.Printf("price resolution for %s/%s cancelled: %v", q.Commodity, q.Location, ctx.Err())
			break
		}
		quote, ok := r.attempt(ctx, tier, q)
		if ok {
			log.Printf("using %s for %s in %s", tier.Kind(), q.Commodity, q.Location)
			return quote
		}
		log.Printf("%s unavailable for %s in %s, trying next source", tier.Kind(), q.Commodity, q.Location)
	}
	log.Printf("using %s for %s in %s", SourceHeuristic, q.Commodity, q.Location)
	return r.fallback.Estimate(q)
}

func (r *Resolver) attempt(ctx context.Context, tier Tier, q Query) (Quote, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		quote Quote
		ok    bool
	}
	done := make(chan result, 1)
	go func() {
		quote, ok := tier.Attempt(ctx, q)
		done <- result{quote: quote, ok: ok}
	}()

	select {
	case res := <-done:
		if !res.ok || !res.quote.Usable() {
			return Quote{}, false
		}
		return res.quote, true
	case <-ctx.Done():
		log.Printf("%s timed out: %v", tier.Kind(), ctx.Err())
		return Quote{}, false
	}
}
