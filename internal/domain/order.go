package domain

import (
	"math"
	"slices"
)

// Order maps product identifiers to requested quantities.
// It is built per request and never shared between requests.
type Order map[string]float64

// Products returns the order's product identifiers in sorted order so that
// anything derived from an order does not depend on map iteration.
func (o Order) Products() []string {
	products := make([]string, 0, len(o))
	for p := range o {
		products = append(products, p)
	}
	slices.Sort(products)
	return products
}

// Validate checks that the order is non-empty and that every quantity is a
// finite number strictly greater than zero.
func (o Order) Validate() error {
	if len(o) == 0 {
		return &InvalidOrderError{Reason: "order must contain at least one product"}
	}

	for _, p := range o.Products() {
		q := o[p]
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return &InvalidOrderError{Product: p, Reason: "quantity must be a finite number"}
		}
		if q <= 0 {
			return &InvalidOrderError{Product: p, Reason: "quantity must be greater than zero"}
		}
	}

	return nil
}

// WarehouseDemand maps a warehouse to the total weight demanded from it.
type WarehouseDemand map[string]float64

// Warehouses returns the warehouses with positive demand, sorted.
func (d WarehouseDemand) Warehouses() []string {
	out := make([]string, 0, len(d))
	for w, weight := range d {
		if weight > 0 {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return out
}

// Total returns the total demanded weight across all warehouses.
func (d WarehouseDemand) Total() float64 {
	total := 0.0
	for _, w := range d.Warehouses() {
		total += d[w]
	}
	return total
}
