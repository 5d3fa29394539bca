package api

import (
	"delivery-cost-service/internal/api/handlers"
	"delivery-cost-service/internal/metrics"
	"delivery-cost-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// A nil limiter disables rate limiting on the cost endpoints.
func NewRouter(quotes *services.QuoteService, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	costHandler := &handlers.CostHandler{Quotes: quotes}
	networkHandler := &handlers.NetworkHandler{Network: quotes.Network()}

	r.Get("/health", handlers.Health)
	r.Get("/network", networkHandler.Get)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(rateLimitMiddleware(limiter))
		}
		r.Post("/calculate-cost", costHandler.Calculate)
		r.Post("/calculate-route", costHandler.Route)
	})

	return r
}
