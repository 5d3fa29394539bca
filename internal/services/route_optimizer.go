package services

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/metrics"
	"delivery-cost-service/internal/platform/obs"
	"errors"
	"fmt"
	"math"
)

// DefaultMaxWarehouses bounds the factorial search when no cap is configured.
const DefaultMaxWarehouses = 7

// How many candidates are priced between context checks.
const ctxCheckInterval = 256

// maxRoundedCost is 2^63, the first float64 that no longer fits an int64.
const maxRoundedCost = 1 << 63

// RouteOptimizer finds the minimum-cost delivery route for an order over a
// fixed network. It holds no per-request state and is safe for concurrent use.
type RouteOptimizer struct {
	network       *domain.Network
	maxWarehouses int
}

// NewRouteOptimizer returns an optimizer over network. A non-positive
// maxWarehouses selects DefaultMaxWarehouses.
func NewRouteOptimizer(network *domain.Network, maxWarehouses int) (*RouteOptimizer, error) {
	if network == nil {
		return nil, errors.New("new route optimizer: network must be non-nil")
	}
	if maxWarehouses <= 0 {
		maxWarehouses = DefaultMaxWarehouses
	}
	return &RouteOptimizer{network: network, maxWarehouses: maxWarehouses}, nil
}

// Network returns the network the optimizer prices against.
func (o *RouteOptimizer) Network() *domain.Network { return o.network }

// MinimumCost returns the cost of the cheapest route for order, rounded to
// the nearest integer (halves away from zero).
func (o *RouteOptimizer) MinimumCost(ctx context.Context, order domain.Order) (int64, error) {
	plan, err := o.OptimalRoute(ctx, order)
	if err != nil {
		return 0, err
	}
	return plan.Rounded, nil
}

// OptimalRoute searches every candidate route for order and returns the
// cheapest one together with its priced legs.
//
// Ties keep the first route found. Candidates that need a leg missing from
// the distance table are skipped; if every candidate is skipped the order is
// unroutable.
func (o *RouteOptimizer) OptimalRoute(ctx context.Context, order domain.Order) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "optimizer.OptimalRoute")(&err)

	demand, err := GroupByWarehouse(o.network, order)
	if err != nil {
		return nil, fmt.Errorf("optimal route: %w", err)
	}

	warehouses := demand.Warehouses()
	if len(warehouses) > o.maxWarehouses {
		return nil, fmt.Errorf(
			"optimal route: %w: %d warehouses, limit is %d",
			domain.ErrTooManyWarehouses, len(warehouses), o.maxWarehouses,
		)
	}

	// A single warehouse leaves exactly one route: straight to the hub.
	if len(warehouses) == 1 {
		route := domain.Route{warehouses[0], o.network.Hub()}
		plan, err := o.plan(route, demand, 1)
		if err != nil {
			if errors.Is(err, domain.ErrMissingRouteEdge) {
				return nil, fmt.Errorf("optimal route: %w: %w", domain.ErrUnroutableOrder, err)
			}
			return nil, fmt.Errorf("optimal route: %w", err)
		}
		metrics.RouteCandidates.Observe(1)
		return plan, nil
	}

	var (
		best        domain.Route
		bestCost    = math.Inf(1)
		evaluated   int
		overflowed  int
		lastMissing error
	)

	for route := range CandidateRoutes(warehouses, o.network.Hub()) {
		if evaluated%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("optimal route: search interrupted after %d candidates: %w", evaluated, err)
			}
		}
		evaluated++

		cost, err := PriceRoute(o.network, route, demand)
		if err != nil {
			if errors.Is(err, domain.ErrMissingRouteEdge) {
				lastMissing = err
				continue
			}
			return nil, fmt.Errorf("optimal route: %w", err)
		}
		if !roundable(cost) {
			overflowed++
			continue
		}

		// Strictly smaller: ties keep the earlier candidate.
		if cost < bestCost {
			bestCost = cost
			best = route
		}
	}

	metrics.RouteCandidates.Observe(float64(evaluated))

	if best == nil {
		if overflowed > 0 {
			return nil, fmt.Errorf(
				"optimal route: %w: %d of %d candidates overflowed",
				domain.ErrCostOverflow, overflowed, evaluated,
			)
		}
		if lastMissing == nil {
			lastMissing = errors.New("no candidate routes")
		}
		return nil, fmt.Errorf(
			"optimal route: %w: all %d candidates failed, last: %w",
			domain.ErrUnroutableOrder, evaluated, lastMissing,
		)
	}

	plan, err := o.plan(best, demand, evaluated)
	if err != nil {
		return nil, fmt.Errorf("optimal route: re-price winner: %w", err)
	}
	return plan, nil
}

func (o *RouteOptimizer) plan(route domain.Route, demand domain.WarehouseDemand, evaluated int) (*domain.RoutePlan, error) {
	cost, legs, err := PriceRouteLegs(o.network, route, demand)
	if err != nil {
		return nil, err
	}
	if !roundable(cost) {
		return nil, fmt.Errorf("plan route %v: %w: cost %v", route, domain.ErrCostOverflow, cost)
	}
	return &domain.RoutePlan{
		Route:      route,
		Legs:       legs,
		Cost:       cost,
		Rounded:    int64(math.Round(cost)),
		Candidates: evaluated,
	}, nil
}

// roundable reports whether cost is finite and rounds into an int64.
func roundable(cost float64) bool {
	return !math.IsNaN(cost) && cost < maxRoundedCost
}
