package services

import (
	"delivery-cost-service/internal/domain"
	"errors"
	"fmt"
)

// GroupByWarehouse partitions an order by owning warehouse and converts the
// summed quantities to weight using the network's unit product weight.
//
// Any unknown product rejects the whole order; no partial demand is returned.
func GroupByWarehouse(network *domain.Network, order domain.Order) (domain.WarehouseDemand, error) {
	if network == nil {
		return nil, errors.New("group by warehouse: network must be non-nil")
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("group by warehouse: %w", err)
	}

	quantities := make(map[string]float64)
	// Sorted products keep the floating point summation order stable.
	for _, product := range order.Products() {
		warehouse, err := network.WarehouseOf(product)
		if err != nil {
			return nil, fmt.Errorf("group by warehouse: %w", err)
		}
		quantities[warehouse] += order[product]
	}

	demand := make(domain.WarehouseDemand, len(quantities))
	for warehouse, qty := range quantities {
		demand[warehouse] = qty * network.UnitWeight()
	}

	return demand, nil
}
