package domain

import "fmt"

// Truck tracks the cargo carried while a route is simulated.
// Each warehouse is picked up at most once; arriving at the hub
// delivers everything on board.
type Truck struct {
	Location  string
	carried   float64
	onBoard   []string
	pickedUp  map[string]struct{}
	delivered map[string]struct{}
}

func NewTruck(start string) *Truck {
	return &Truck{
		Location:  start,
		pickedUp:  make(map[string]struct{}),
		delivered: make(map[string]struct{}),
	}
}

// Load picks up a warehouse's demand. Loading a warehouse that was already
// picked up is a no-op and reports false.
func (t *Truck) Load(warehouse string, weight float64) (bool, error) {
	if weight < 0 {
		return false, fmt.Errorf("load truck: negative weight %v for %q", weight, warehouse)
	}
	if _, ok := t.pickedUp[warehouse]; ok {
		return false, nil
	}
	t.pickedUp[warehouse] = struct{}{}
	t.onBoard = append(t.onBoard, warehouse)
	t.carried += weight
	return true, nil
}

// Unload delivers everything on board and returns the warehouses delivered.
func (t *Truck) Unload() []string {
	dropped := t.onBoard
	for _, w := range dropped {
		t.delivered[w] = struct{}{}
	}
	t.onBoard = nil
	t.carried = 0
	return dropped
}

// Carried returns the weight currently on board.
func (t *Truck) Carried() float64 { return t.carried }

// Delivered reports whether the warehouse's demand reached the hub.
func (t *Truck) Delivered(warehouse string) bool {
	_, ok := t.delivered[warehouse]
	return ok
}

// MoveTo records arrival at a new location.
func (t *Truck) MoveTo(location string) { t.Location = location }
