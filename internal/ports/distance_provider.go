package ports

// Read-only view of the transportation network used to price routes.
// domain.Network is the production implementation.
type DistanceProvider interface {
	// Return the single delivery point.
	Hub() string
	// Return the directed distance from origin to destination.
	// A missing entry is a *domain.MissingRouteEdgeError, never zero.
	Distance(origin string, destination string) (float64, error)
	// Price one leg carrying weight over distance.
	LegCost(distance float64, weight float64) float64
}
