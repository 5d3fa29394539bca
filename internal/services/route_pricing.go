package services

import (
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/ports"
	"errors"
	"fmt"
)

// PriceRoute simulates a truck driving route and returns the accumulated cost.
//
// The truck starts empty. Departing a warehouse that has not been picked up
// yet loads that warehouse's demand; every leg costs
// LegCost(distance, weight on board at departure); arriving at the hub
// delivers everything on board. A leg missing from the distance table makes
// the route un-costable and is returned as *domain.MissingRouteEdgeError.
func PriceRoute(provider ports.DistanceProvider, route domain.Route, demand domain.WarehouseDemand) (float64, error) {
	cost, _, err := priceRoute(provider, route, demand, false)
	return cost, err
}

// PriceRouteLegs is PriceRoute that also returns the priced legs.
func PriceRouteLegs(provider ports.DistanceProvider, route domain.Route, demand domain.WarehouseDemand) (float64, []domain.RouteLeg, error) {
	return priceRoute(provider, route, demand, true)
}

func priceRoute(
	provider ports.DistanceProvider,
	route domain.Route,
	demand domain.WarehouseDemand,
	recordLegs bool,
) (float64, []domain.RouteLeg, error) {
	if provider == nil {
		return 0, nil, errors.New("price route: provider must be non-nil")
	}
	if len(route) < 2 {
		return 0, nil, fmt.Errorf("price route: route %v has no legs", route)
	}

	hub := provider.Hub()
	truck := domain.NewTruck(route[0])

	var legs []domain.RouteLeg
	if recordLegs {
		legs = make([]domain.RouteLeg, 0, len(route)-1)
	}

	total := 0.0
	for i := 0; i+1 < len(route); i++ {
		from, to := route[i], route[i+1]

		if from != hub {
			if _, err := truck.Load(from, demand[from]); err != nil {
				return 0, nil, fmt.Errorf("price route: %w", err)
			}
		}

		distance, err := provider.Distance(from, to)
		if err != nil {
			return 0, nil, fmt.Errorf("price route: leg %d: %w", i+1, err)
		}

		weight := truck.Carried()
		legCost := provider.LegCost(distance, weight)
		total += legCost

		if recordLegs {
			legs = append(legs, domain.RouteLeg{
				From:     from,
				To:       to,
				Distance: distance,
				Weight:   weight,
				Cost:     legCost,
			})
		}

		truck.MoveTo(to)
		if to == hub {
			truck.Unload()
		}
	}

	if truck.Carried() > 0 {
		return 0, nil, fmt.Errorf("price route: route %v ends with undelivered cargo", route)
	}
	for _, w := range demand.Warehouses() {
		if !truck.Delivered(w) {
			return 0, nil, fmt.Errorf("price route: route %v never delivers %q", route, w)
		}
	}

	return total, legs, nil
}
