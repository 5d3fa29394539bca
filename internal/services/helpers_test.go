package services

import (
	"delivery-cost-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceConfig is the three-warehouse network the service ships with.
func referenceConfig() domain.NetworkConfig {
	return domain.NetworkConfig{
		Hub: "L1",
		Warehouses: map[string][]string{
			"C1": {"A", "B", "C"},
			"C2": {"D", "E", "F"},
			"C3": {"G", "H", "I"},
		},
		Distances:  symmetric(map[[2]string]float64{{"C1", "L1"}: 10, {"C2", "L1"}: 20, {"C3", "L1"}: 15, {"C1", "C2"}: 12, {"C1", "C3"}: 8, {"C2", "C3"}: 10}),
		UnitWeight: 0.5,
		CostRate:   2,
	}
}

func symmetric(pairs map[[2]string]float64) map[domain.Edge]float64 {
	out := make(map[domain.Edge]float64, 2*len(pairs))
	for p, d := range pairs {
		out[domain.Edge{Origin: p[0], Destination: p[1]}] = d
		out[domain.Edge{Origin: p[1], Destination: p[0]}] = d
	}
	return out
}

func newNetwork(t *testing.T, cfg domain.NetworkConfig) *domain.Network {
	t.Helper()
	n, err := domain.NewNetwork(cfg)
	require.NoError(t, err)
	return n
}

func newOptimizer(t *testing.T, cfg domain.NetworkConfig) *RouteOptimizer {
	t.Helper()
	o, err := NewRouteOptimizer(newNetwork(t, cfg), 0)
	require.NoError(t, err)
	return o
}
