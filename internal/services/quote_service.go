package services

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/metrics"
	"delivery-cost-service/internal/ports"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// QuoteService answers cost requests, consulting an optional cache before
// running the optimizer. Cache failures are logged and never fail a request.
type QuoteService struct {
	optimizer *RouteOptimizer
	cache     ports.QuoteCache
}

// NewQuoteService returns a service over optimizer. cache may be nil.
func NewQuoteService(optimizer *RouteOptimizer, cache ports.QuoteCache) (*QuoteService, error) {
	if optimizer == nil {
		return nil, errors.New("new quote service: optimizer must be non-nil")
	}
	return &QuoteService{optimizer: optimizer, cache: cache}, nil
}

// MinimumCost returns the rounded minimum delivery cost for order.
func (s *QuoteService) MinimumCost(ctx context.Context, order domain.Order) (int64, error) {
	if err := order.Validate(); err != nil {
		return 0, err
	}

	key := QuoteKey(s.optimizer.Network().Fingerprint(), order)

	if s.cache != nil {
		cost, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.QuoteCacheLookups.WithLabelValues("error").Inc()
			log.Printf("quote cache read failed: key=%s err=%v", key, err)
		case ok:
			metrics.QuoteCacheLookups.WithLabelValues("hit").Inc()
			return cost, nil
		default:
			metrics.QuoteCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	cost, err := s.optimizer.MinimumCost(ctx, order)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, cost); err != nil {
			log.Printf("quote cache write failed: key=%s err=%v", key, err)
		}
	}

	return cost, nil
}

// Plan returns the full optimal route for order. Plans are not cached.
func (s *QuoteService) Plan(ctx context.Context, order domain.Order) (*domain.RoutePlan, error) {
	return s.optimizer.OptimalRoute(ctx, order)
}

// Network returns the network quotes are priced against.
func (s *QuoteService) Network() *domain.Network { return s.optimizer.Network() }

// QuoteKey derives a cache key from the network fingerprint and the order
// contents. The key does not depend on the order's key ordering.
func QuoteKey(fingerprint string, order domain.Order) string {
	var b strings.Builder
	for _, p := range order.Products() {
		b.WriteString(strconv.Quote(p))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(order[p], 'g', -1, 64))
		b.WriteByte(';')
	}
	return "quote:" + fingerprint + ":" + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
