package ports

import (
	"context"
	"delivery-cost-service/internal/domain"
)

// Port: a boundary for loading and storing the static network configuration.
type NetworkRepository interface {
	// Load the warehouse catalog, distance table and cost constants.
	LoadNetwork(ctx context.Context) (domain.NetworkConfig, error)
	// Replace the stored network with cfg.
	SaveNetwork(ctx context.Context, cfg domain.NetworkConfig) error
}
