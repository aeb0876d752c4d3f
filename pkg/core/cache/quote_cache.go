package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"mortgage_engine/pkg/core/loan"
)

// QuoteCache memoizes loan breakdowns. The key is the full input record by
// value (canonical JSON of LoanInputs), so any field change misses and
// recomputes. Computation is cheap; the cache only exists to skip redundant
// work when many clients ask for the same quote.
type QuoteCache struct {
	backend Cache
}

func NewQuoteCache(backend Cache) *QuoteCache {
	return &QuoteCache{backend: backend}
}

// Key builds the canonical cache key for an input record.
// encoding/json emits struct fields in declaration order, which makes the
// encoding stable for identical inputs.
func (c *QuoteCache) Key(input loan.LoanInputs) string {
	raw, err := json.Marshal(input)
	if err != nil {
		// LoanInputs is all scalars; marshal cannot realistically fail
		return fmt.Sprintf("quote:%+v", input)
	}
	return "quote:" + string(raw)
}

// Lookup returns the cached breakdown for the inputs, if present and parseable.
func (c *QuoteCache) Lookup(ctx context.Context, input loan.LoanInputs) (loan.LoanBreakdown, bool) {
	raw, ok := c.backend.Get(ctx, c.Key(input))
	if !ok {
		return loan.LoanBreakdown{}, false
	}
	var breakdown loan.LoanBreakdown
	if err := json.Unmarshal([]byte(raw), &breakdown); err != nil {
		// Corrupt entry: treat as a miss and let the caller overwrite it
		return loan.LoanBreakdown{}, false
	}
	return breakdown, true
}

// Store caches a computed breakdown. Failure is non-critical; the caller
// already has the result.
func (c *QuoteCache) Store(ctx context.Context, input loan.LoanInputs, breakdown loan.LoanBreakdown) error {
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	return c.backend.Set(ctx, c.Key(input), string(raw))
}
