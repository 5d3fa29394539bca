package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrder      = errors.New("invalid order")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrMissingRouteEdge  = errors.New("missing route edge")
	ErrUnroutableOrder   = errors.New("order is not routable")
	ErrTooManyWarehouses = errors.New("order spans too many warehouses")
	ErrInvalidNetwork    = errors.New("invalid network")
	ErrCostOverflow      = errors.New("order cost exceeds the representable range")
)

// InvalidOrderError reports an order that is empty or carries a
// non-positive or non-numeric quantity. Product is empty when the problem
// concerns the order as a whole.
type InvalidOrderError struct {
	Product string
	Reason  string
}

func (e *InvalidOrderError) Error() string {
	if e.Product == "" {
		return fmt.Sprintf("invalid order: %s", e.Reason)
	}
	return fmt.Sprintf("invalid quantity for product %s: %s", e.Product, e.Reason)
}

func (e *InvalidOrderError) Unwrap() error { return ErrInvalidOrder }

// UnknownProductError reports a product absent from the warehouse catalog.
type UnknownProductError struct {
	Product string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q", e.Product)
}

func (e *UnknownProductError) Unwrap() error { return ErrUnknownProduct }

// MissingRouteEdgeError reports a directed leg with no distance table entry.
type MissingRouteEdgeError struct {
	Origin      string
	Destination string
}

func (e *MissingRouteEdgeError) Error() string {
	return fmt.Sprintf("no distance from %q to %q", e.Origin, e.Destination)
}

func (e *MissingRouteEdgeError) Unwrap() error { return ErrMissingRouteEdge }
