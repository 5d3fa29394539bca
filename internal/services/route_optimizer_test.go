package services

import (
	"context"
	"delivery-cost-service/internal/domain"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortcutConfig violates the triangle inequality so that chaining W1 through
// W2 is far cheaper than two separate trips.
func shortcutConfig() domain.NetworkConfig {
	return domain.NetworkConfig{
		Hub:        "H",
		Warehouses: map[string][]string{"W1": {"P1"}, "W2": {"P2"}},
		Distances: map[domain.Edge]float64{
			{Origin: "W1", Destination: "H"}:  100,
			{Origin: "H", Destination: "W1"}:  100,
			{Origin: "W2", Destination: "H"}:  10,
			{Origin: "H", Destination: "W2"}:  10,
			{Origin: "W1", Destination: "W2"}: 1,
			{Origin: "W2", Destination: "W1"}: 1,
		},
		UnitWeight: 1,
		CostRate:   1,
	}
}

func TestOptimalRouteSingleWarehouse(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	plan, err := o.OptimalRoute(context.Background(), domain.Order{"A": 1})
	require.NoError(t, err)

	assert.Equal(t, domain.Route{"C1", "L1"}, plan.Route)
	assert.InDelta(t, 10.0, plan.Cost, 1e-9)
	assert.Equal(t, int64(10), plan.Rounded)
	assert.Equal(t, 1, plan.Candidates)
}

func TestMinimumCostSingleWarehouseFormula(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	tests := []struct {
		name  string
		order domain.Order
		want  int64
	}{
		{"one unit C1", domain.Order{"A": 1}, 10},
		{"mixed C1", domain.Order{"A": 1, "B": 2, "C": 3}, 60},
		{"C2 fractional", domain.Order{"D": 1, "E": 0.5}, 30},
		{"C3", domain.Order{"G": 3}, 45},
		{"half rounds away from zero", domain.Order{"A": 0.25}, 3},
		{"small fraction", domain.Order{"B": 0.3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.MinimumCost(context.Background(), tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptimalRouteTwoWarehouses(t *testing.T) {
	o := newOptimizer(t, referenceConfig())
	order := domain.Order{"A": 1, "D": 1}

	plan, err := o.OptimalRoute(context.Background(), order)
	require.NoError(t, err)

	// C1->C2->L1 = 52, C1->L1->C2->L1 = 30, C2->C1->L1 = 32, C2->L1->C1->L1 = 30.
	// The tie keeps the first candidate.
	assert.InDelta(t, 30.0, plan.Cost, 1e-9)
	assert.Equal(t, int64(30), plan.Rounded)
	assert.Equal(t, domain.Route{"C1", "L1", "C2", "L1"}, plan.Route)
	assert.Equal(t, 4, plan.Candidates)

	demand, err := GroupByWarehouse(o.Network(), order)
	require.NoError(t, err)
	require.NoError(t, plan.Route.Validate("L1", demand))

	sum := 0.0
	for _, leg := range plan.Legs {
		sum += leg.Cost
	}
	assert.InDelta(t, plan.Cost, sum, 1e-9)
}

func TestOptimalRouteThreeWarehouses(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	plan, err := o.OptimalRoute(context.Background(), domain.Order{"A": 1, "D": 1, "G": 1})
	require.NoError(t, err)

	assert.Equal(t, int64(45), plan.Rounded)
	assert.Equal(t, domain.Route{"C1", "L1", "C2", "L1", "C3", "L1"}, plan.Route)
	assert.Equal(t, 24, plan.Candidates)
}

func TestOptimalRouteIsMinimumOfCandidates(t *testing.T) {
	o := newOptimizer(t, referenceConfig())
	order := domain.Order{"A": 4, "E": 1, "H": 7}

	plan, err := o.OptimalRoute(context.Background(), order)
	require.NoError(t, err)

	demand, err := GroupByWarehouse(o.Network(), order)
	require.NoError(t, err)

	for r := range CandidateRoutes(demand.Warehouses(), "L1") {
		cost, err := PriceRoute(o.Network(), r, demand)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost+1e-9, plan.Cost, "route %v beats the optimum", r)
	}
}

func TestOptimalRoutePrefersChainingWhenCheaper(t *testing.T) {
	o := newOptimizer(t, shortcutConfig())

	plan, err := o.OptimalRoute(context.Background(), domain.Order{"P1": 1, "P2": 1})
	require.NoError(t, err)

	assert.Equal(t, domain.Route{"W1", "W2", "H"}, plan.Route)
	assert.Equal(t, int64(21), plan.Rounded)
}

func TestOptimalRouteSkipsMissingEdges(t *testing.T) {
	cfg := shortcutConfig()
	delete(cfg.Distances, domain.Edge{Origin: "W1", Destination: "W2"})
	o := newOptimizer(t, cfg)

	plan, err := o.OptimalRoute(context.Background(), domain.Order{"P1": 1, "P2": 1})
	require.NoError(t, err)

	assert.Equal(t, domain.Route{"W1", "H", "W2", "H"}, plan.Route)
	assert.Equal(t, int64(110), plan.Rounded)
	assert.Equal(t, 4, plan.Candidates)
}

func TestOptimalRouteUnroutable(t *testing.T) {
	cfg := shortcutConfig()
	cfg.Distances = map[domain.Edge]float64{
		{Origin: "W1", Destination: "W2"}: 1,
		{Origin: "W2", Destination: "W1"}: 1,
	}
	o := newOptimizer(t, cfg)

	_, err := o.OptimalRoute(context.Background(), domain.Order{"P1": 1, "P2": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnroutableOrder)
	assert.ErrorIs(t, err, domain.ErrMissingRouteEdge)

	_, err = o.MinimumCost(context.Background(), domain.Order{"P1": 1})
	assert.ErrorIs(t, err, domain.ErrUnroutableOrder)
}

func TestOptimalRouteErrors(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	_, err := o.MinimumCost(context.Background(), domain.Order{"A": 1, "X": 2})
	var unknown *domain.UnknownProductError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "X", unknown.Product)

	_, err = o.MinimumCost(context.Background(), domain.Order{"A": 0})
	var invalid *domain.InvalidOrderError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "A", invalid.Product)
}

func TestOptimalRouteWarehouseCap(t *testing.T) {
	o, err := NewRouteOptimizer(newNetwork(t, referenceConfig()), 2)
	require.NoError(t, err)

	_, err = o.MinimumCost(context.Background(), domain.Order{"A": 1, "D": 1, "G": 1})
	assert.ErrorIs(t, err, domain.ErrTooManyWarehouses)

	_, err = o.MinimumCost(context.Background(), domain.Order{"A": 1, "D": 1})
	assert.NoError(t, err)
}

func TestOptimalRouteCancelled(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.MinimumCost(ctx, domain.Order{"A": 1, "D": 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMinimumCostIgnoresInsertionOrder(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	forward := domain.Order{}
	backward := domain.Order{}
	products := []string{"A", "B", "D", "F", "G", "I"}
	for i, p := range products {
		forward[p] = float64(i + 1)
	}
	for i := len(products) - 1; i >= 0; i-- {
		backward[products[i]] = float64(i + 1)
	}

	a, err := o.OptimalRoute(context.Background(), forward)
	require.NoError(t, err)
	b, err := o.OptimalRoute(context.Background(), backward)
	require.NoError(t, err)

	assert.Equal(t, a.Rounded, b.Rounded)
	assert.Equal(t, a.Route, b.Route)
}

func TestMinimumCostMonotoneInQuantity(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	prev := int64(-1)
	for q := 1; q <= 8; q++ {
		cost, err := o.MinimumCost(context.Background(), domain.Order{"A": float64(q), "D": 2, "G": 1})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost, prev, "quantity %d", q)
		prev = cost
	}
}

func TestMinimumCostScaling(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	base, err := o.MinimumCost(context.Background(), domain.Order{"A": 1, "B": 2})
	require.NoError(t, err)
	require.Equal(t, int64(30), base)

	prevMulti := int64(-1)
	for k := 1; k <= 5; k++ {
		single, err := o.MinimumCost(context.Background(), domain.Order{"A": float64(k), "B": float64(2 * k)})
		require.NoError(t, err)
		assert.Equal(t, base*int64(k), single)

		multi, err := o.MinimumCost(context.Background(), domain.Order{"A": float64(k), "D": float64(3 * k), "G": float64(2 * k)})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, multi, prevMulti)
		prevMulti = multi
	}
}

func TestOptimalRouteSkipsUndemandedWarehouses(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	plan, err := o.OptimalRoute(context.Background(), domain.Order{"A": 1, "G": 2})
	require.NoError(t, err)

	assert.False(t, slices.Contains(plan.Route, "C2"))
	assert.True(t, slices.Contains(plan.Route, "C1"))
	assert.True(t, slices.Contains(plan.Route, "C3"))
}

func TestNewRouteOptimizerRequiresNetwork(t *testing.T) {
	_, err := NewRouteOptimizer(nil, 0)
	assert.Error(t, err)
}

func TestMinimumCostLargeQuantities(t *testing.T) {
	o := newOptimizer(t, referenceConfig())

	// 1e17 units cost exactly 1e18, which still fits an int64.
	cost, err := o.MinimumCost(context.Background(), domain.Order{"A": 1e17})
	require.NoError(t, err)
	assert.Equal(t, int64(1e18), cost)

	tests := []struct {
		name  string
		order domain.Order
	}{
		{"single warehouse past int64", domain.Order{"A": 1e18}},
		{"single warehouse infinite cost", domain.Order{"A": 1e308}},
		{"every candidate infinite", domain.Order{"A": 1e308, "D": 1e308}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.MinimumCost(context.Background(), tt.order)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCostOverflow)
			assert.NotErrorIs(t, err, domain.ErrUnroutableOrder)
			assert.Zero(t, got)
		})
	}
}
