package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Route is an ordered sequence of locations. Consecutive pairs are legs.
type Route []string

// Legs returns the directed legs the route traverses.
func (r Route) Legs() []Edge {
	if len(r) < 2 {
		return nil
	}
	legs := make([]Edge, 0, len(r)-1)
	for i := 0; i+1 < len(r); i++ {
		legs = append(legs, Edge{Origin: r[i], Destination: r[i+1]})
	}
	return legs
}

func (r Route) String() string { return strings.Join(r, "->") }

// Validate checks that the route is well formed for the given demand:
// it starts at a demanded warehouse, ends at the hub, visits every demanded
// warehouse exactly once and reaches the hub after each of them.
func (r Route) Validate(hub string, demand WarehouseDemand) error {
	if len(r) < 2 {
		return errors.New("validate route: route must have at least one leg")
	}
	if r[0] == hub || demand[r[0]] <= 0 {
		return fmt.Errorf("validate route: first stop %q is not a demanded warehouse", r[0])
	}
	if r[len(r)-1] != hub {
		return fmt.Errorf("validate route: last stop %q is not the hub %q", r[len(r)-1], hub)
	}

	visited := make(map[string]bool, len(demand))
	for i, stop := range r {
		if stop == hub {
			if i > 0 && r[i-1] == hub {
				return fmt.Errorf("validate route: consecutive hub visits at position %d", i)
			}
			continue
		}
		if demand[stop] <= 0 {
			return fmt.Errorf("validate route: stop %q has no demand", stop)
		}
		if visited[stop] {
			return fmt.Errorf("validate route: warehouse %q visited more than once", stop)
		}
		visited[stop] = true
	}

	for _, w := range demand.Warehouses() {
		if !visited[w] {
			return fmt.Errorf("validate route: demanded warehouse %q never visited", w)
		}
	}

	return nil
}

// RouteLeg is one priced leg of a route.
type RouteLeg struct {
	From     string
	To       string
	Distance float64
	Weight   float64
	Cost     float64
}

// RoutePlan is the optimizer's result for one order: the winning route,
// its priced legs and the search statistics.
type RoutePlan struct {
	Route      Route
	Legs       []RouteLeg
	Cost       float64
	Rounded    int64
	Candidates int
}
