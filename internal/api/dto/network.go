package dto

type WarehouseResponse struct {
	ID       string   `json:"id"`
	Products []string `json:"products"`
}

type NetworkResponse struct {
	Hub        string              `json:"hub"`
	UnitWeight float64             `json:"unit_weight"`
	CostRate   float64             `json:"cost_rate"`
	Warehouses []WarehouseResponse `json:"warehouses"`
}
