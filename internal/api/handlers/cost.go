package handlers

import (
	"context"
	"delivery-cost-service/internal/api/dto"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/platform/obs"
	"delivery-cost-service/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"math"
	"net/http"
	"slices"
)

const maxOrderBytes = 1 << 20

// CostHandler exposes minimum delivery cost calculation.
type CostHandler struct {
	Quotes *services.QuoteService
}

// Calculate returns the minimum delivery cost for the order in the body.
func (h *CostHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	order, err := decodeOrder(w, r)
	if err != nil {
		writeCostError(w, r, err)
		return
	}

	cost, err := h.Quotes.MinimumCost(r.Context(), order)
	if err != nil {
		writeCostError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CostResponse{MinimumCost: cost})
}

// Route returns the optimal route and its priced legs for the order in the body.
func (h *CostHandler) Route(w http.ResponseWriter, r *http.Request) {
	order, err := decodeOrder(w, r)
	if err != nil {
		writeCostError(w, r, err)
		return
	}

	plan, err := h.Quotes.Plan(r.Context(), order)
	if err != nil {
		writeCostError(w, r, err)
		return
	}

	res := dto.RouteResponse{
		MinimumCost: plan.Rounded,
		Cost:        plan.Cost,
		Route:       plan.Route,
		Legs:        make([]dto.LegResponse, 0, len(plan.Legs)),
		Candidates:  plan.Candidates,
	}
	for _, leg := range plan.Legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			Leg:      leg.From + "-" + leg.To,
			From:     leg.From,
			To:       leg.To,
			Distance: leg.Distance,
			Weight:   leg.Weight,
			Cost:     leg.Cost,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// decodeOrder reads a flat JSON object of product -> quantity and enforces
// that it is non-empty and every quantity is a number greater than zero.
func decodeOrder(w http.ResponseWriter, r *http.Request) (domain.Order, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxOrderBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &domain.InvalidOrderError{Reason: fmt.Sprintf("invalid json body: %v", err)}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &domain.InvalidOrderError{Reason: "body must contain only one JSON object"}
	}

	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, &domain.InvalidOrderError{Reason: "order must be a non-empty JSON object"}
	}

	order := make(domain.Order, len(obj))
	for _, product := range slices.Sorted(maps.Keys(obj)) {
		qty, ok := obj[product].(float64)
		if !ok || qty <= 0 || math.IsInf(qty, 0) {
			return nil, &domain.InvalidOrderError{Product: product, Reason: "quantity must be a number greater than zero"}
		}
		order[product] = qty
	}

	return order, nil
}

// writeCostError maps domain errors onto HTTP responses. Anything not caused
// by the client is logged and reported as an opaque internal error.
func writeCostError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidOrderError
	var unknown *domain.UnknownProductError

	switch {
	case errors.As(err, &invalid):
		if invalid.Product != "" {
			writeError(w, r, http.StatusBadRequest, "Invalid quantity for product "+invalid.Product)
			return
		}
		writeError(w, r, http.StatusBadRequest, "Invalid order format")
	case errors.As(err, &unknown):
		writeError(w, r, http.StatusBadRequest, "Unknown product "+unknown.Product)
	case errors.Is(err, domain.ErrCostOverflow):
		writeError(w, r, http.StatusBadRequest, "Order quantities too large")
	case errors.Is(err, domain.ErrTooManyWarehouses):
		writeError(w, r, http.StatusUnprocessableEntity, "order spans too many warehouses")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Printf("calculate cost cancelled: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusServiceUnavailable, "request cancelled")
	default:
		log.Printf("calculate cost failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
