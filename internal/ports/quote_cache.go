package ports

import "context"

// Optional cache of computed minimum costs keyed by network and order.
type QuoteCache interface {
	// Return the cached cost and whether it was found.
	Get(ctx context.Context, key string) (int64, bool, error)
	// Store a computed cost.
	Put(ctx context.Context, key string, cost int64) error
}
