package dto

type CostResponse struct {
	MinimumCost int64 `json:"minimum_cost"`
}

type LegResponse struct {
	Leg      string  `json:"leg"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Weight   float64 `json:"weight"`
	Cost     float64 `json:"cost"`
}

type RouteResponse struct {
	MinimumCost int64         `json:"minimum_cost"`
	Cost        float64       `json:"cost"`
	Route       []string      `json:"route"`
	Legs        []LegResponse `json:"legs"`
	Candidates  int           `json:"candidates"`
}
