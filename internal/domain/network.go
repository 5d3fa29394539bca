package domain

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Edge is a directed leg between two locations.
type Edge struct {
	Origin      string
	Destination string
}

func (e Edge) String() string { return e.Origin + "-" + e.Destination }

// NetworkConfig is the static configuration a Network is built from.
// It is what repositories load and seed files describe.
type NetworkConfig struct {
	Hub        string
	Warehouses map[string][]string
	Distances  map[Edge]float64
	UnitWeight float64
	CostRate   float64
}

// Network is the immutable transportation model: warehouses, one hub,
// the directed distance table and the weight/cost constants.
// It is built once at startup and is safe for concurrent use.
type Network struct {
	hub         string
	warehouses  map[string][]string
	productHome map[string]string
	distances   map[Edge]float64
	unitWeight  float64
	costRate    float64
	fingerprint string
}

// NewNetwork validates cfg and builds a Network from a private copy of it.
func NewNetwork(cfg NetworkConfig) (*Network, error) {
	hub := strings.TrimSpace(cfg.Hub)
	if hub == "" {
		return nil, fmt.Errorf("new network: %w: hub must be non-empty", ErrInvalidNetwork)
	}
	if !(cfg.UnitWeight > 0) || math.IsInf(cfg.UnitWeight, 0) {
		return nil, fmt.Errorf("new network: %w: unit weight must be positive, got %v", ErrInvalidNetwork, cfg.UnitWeight)
	}
	if !(cfg.CostRate > 0) || math.IsInf(cfg.CostRate, 0) {
		return nil, fmt.Errorf("new network: %w: cost rate must be positive, got %v", ErrInvalidNetwork, cfg.CostRate)
	}
	if len(cfg.Warehouses) == 0 {
		return nil, fmt.Errorf("new network: %w: at least one warehouse is required", ErrInvalidNetwork)
	}

	n := &Network{
		hub:         hub,
		warehouses:  make(map[string][]string, len(cfg.Warehouses)),
		productHome: make(map[string]string),
		distances:   make(map[Edge]float64, len(cfg.Distances)),
		unitWeight:  cfg.UnitWeight,
		costRate:    cfg.CostRate,
	}

	for w, products := range cfg.Warehouses {
		if strings.TrimSpace(w) == "" {
			return nil, fmt.Errorf("new network: %w: empty warehouse id", ErrInvalidNetwork)
		}
		if w == hub {
			return nil, fmt.Errorf("new network: %w: warehouse %q shares the hub id", ErrInvalidNetwork, w)
		}

		stocked := make([]string, 0, len(products))
		for _, p := range products {
			if strings.TrimSpace(p) == "" {
				return nil, fmt.Errorf("new network: %w: warehouse %q lists an empty product id", ErrInvalidNetwork, w)
			}
			if owner, ok := n.productHome[p]; ok {
				return nil, fmt.Errorf(
					"new network: %w: product %q stocked by both %q and %q",
					ErrInvalidNetwork, p, owner, w,
				)
			}
			n.productHome[p] = w
			stocked = append(stocked, p)
		}
		slices.Sort(stocked)
		n.warehouses[w] = stocked
	}

	for e, d := range cfg.Distances {
		if e.Origin == "" || e.Destination == "" {
			return nil, fmt.Errorf("new network: %w: distance entry with empty endpoint", ErrInvalidNetwork)
		}
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("new network: %w: distance %s must be a non-negative number, got %v", ErrInvalidNetwork, e, d)
		}
		n.distances[e] = d
	}

	n.fingerprint = n.computeFingerprint()
	return n, nil
}

// Hub returns the single delivery point.
func (n *Network) Hub() string { return n.hub }

// UnitWeight returns the weight of one unit of any product.
func (n *Network) UnitWeight() float64 { return n.unitWeight }

// CostRate returns the cost per distance unit per weight unit.
func (n *Network) CostRate() float64 { return n.costRate }

// Warehouses returns the warehouse ids, sorted.
func (n *Network) Warehouses() []string {
	out := make([]string, 0, len(n.warehouses))
	for w := range n.warehouses {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Products returns the sorted products stocked by warehouse.
func (n *Network) Products(warehouse string) []string {
	return slices.Clone(n.warehouses[warehouse])
}

// WarehouseOf resolves the warehouse that stocks product.
func (n *Network) WarehouseOf(product string) (string, error) {
	w, ok := n.productHome[product]
	if !ok {
		return "", &UnknownProductError{Product: product}
	}
	return w, nil
}

// Distance looks up the directed distance from origin to destination.
// The table is never assumed symmetric.
func (n *Network) Distance(origin, destination string) (float64, error) {
	d, ok := n.distances[Edge{Origin: origin, Destination: destination}]
	if !ok {
		return 0, &MissingRouteEdgeError{Origin: origin, Destination: destination}
	}
	return d, nil
}

// LegCost prices one leg: distance * weight * cost rate.
func (n *Network) LegCost(distance, weight float64) float64 {
	return distance * weight * n.costRate
}

// Fingerprint identifies the network contents. Two networks built from
// equal configurations share a fingerprint.
func (n *Network) Fingerprint() string { return n.fingerprint }

// Config returns a copy of the configuration the network was built from.
func (n *Network) Config() NetworkConfig {
	cfg := NetworkConfig{
		Hub:        n.hub,
		Warehouses: make(map[string][]string, len(n.warehouses)),
		Distances:  make(map[Edge]float64, len(n.distances)),
		UnitWeight: n.unitWeight,
		CostRate:   n.costRate,
	}
	for w, products := range n.warehouses {
		cfg.Warehouses[w] = slices.Clone(products)
	}
	for e, d := range n.distances {
		cfg.Distances[e] = d
	}
	return cfg
}

func (n *Network) computeFingerprint() string {
	var b strings.Builder
	b.WriteString("hub=" + n.hub + ";")
	b.WriteString("unit=" + strconv.FormatFloat(n.unitWeight, 'g', -1, 64) + ";")
	b.WriteString("rate=" + strconv.FormatFloat(n.costRate, 'g', -1, 64) + ";")

	for _, w := range n.Warehouses() {
		b.WriteString(w + "=" + strings.Join(n.warehouses[w], ",") + ";")
	}

	edges := make([]Edge, 0, len(n.distances))
	for e := range n.distances {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := strings.Compare(a.Origin, b.Origin); c != 0 {
			return c
		}
		return strings.Compare(a.Destination, b.Destination)
	})
	for _, e := range edges {
		b.WriteString(e.String() + "=" + strconv.FormatFloat(n.distances[e], 'g', -1, 64) + ";")
	}

	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
