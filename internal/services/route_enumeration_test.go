package services

import (
	"delivery-cost-service/internal/domain"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(warehouses []string, hub string) []domain.Route {
	var out []domain.Route
	for r := range CandidateRoutes(warehouses, hub) {
		out = append(out, r)
	}
	return out
}

func TestCandidateRoutesOrder(t *testing.T) {
	got := collect([]string{"C2", "C1"}, "L1")

	want := []domain.Route{
		{"C1", "C2", "L1"},
		{"C1", "L1", "C2", "L1"},
		{"C2", "C1", "L1"},
		{"C2", "L1", "C1", "L1"},
	}
	assert.Equal(t, want, got)
}

func TestCandidateRoutesSingleWarehouse(t *testing.T) {
	assert.Equal(t, []domain.Route{{"C3", "L1"}}, collect([]string{"C3"}, "L1"))
	assert.Empty(t, collect(nil, "L1"))
}

func TestCandidateRoutesThreeWarehouses(t *testing.T) {
	warehouses := []string{"C3", "C1", "C2"}
	demand := domain.WarehouseDemand{"C1": 1, "C2": 1, "C3": 1}

	routes := collect(warehouses, "L1")
	require.Len(t, routes, CandidateCount(3))
	require.Equal(t, 24, len(routes))

	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		require.NoError(t, r.Validate("L1", demand), "route %v", r)
		assert.False(t, seen[r.String()], "duplicate route %v", r)
		seen[r.String()] = true
	}

	// First ordering is the sorted one with no intermediate drops,
	// last is the reversed ordering dropping after every warehouse.
	assert.Equal(t, domain.Route{"C1", "C2", "C3", "L1"}, routes[0])
	assert.Equal(t, domain.Route{"C3", "L1", "C2", "L1", "C1", "L1"}, routes[len(routes)-1])
}

func TestCandidateRoutesRestartAndStop(t *testing.T) {
	seq := CandidateRoutes([]string{"C1", "C2", "C3"}, "L1")

	var first []domain.Route
	for r := range seq {
		first = append(first, r)
		if len(first) == 3 {
			break
		}
	}
	require.Len(t, first, 3)

	var again []domain.Route
	for r := range seq {
		again = append(again, r)
	}
	assert.Len(t, again, 24)
	assert.True(t, slices.EqualFunc(first, again[:3], func(a, b domain.Route) bool { return slices.Equal(a, b) }))
}

func TestCandidateCount(t *testing.T) {
	assert.Equal(t, 0, CandidateCount(0))
	assert.Equal(t, 1, CandidateCount(1))
	assert.Equal(t, 4, CandidateCount(2))
	assert.Equal(t, 24, CandidateCount(3))
	assert.Equal(t, 192, CandidateCount(4))
}
