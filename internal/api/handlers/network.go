package handlers

import (
	"delivery-cost-service/internal/api/dto"
	"delivery-cost-service/internal/domain"
	"net/http"
)

// NetworkHandler exposes the read-only network configuration.
type NetworkHandler struct {
	Network *domain.Network
}

func (h *NetworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := dto.NetworkResponse{
		Hub:        h.Network.Hub(),
		UnitWeight: h.Network.UnitWeight(),
		CostRate:   h.Network.CostRate(),
		Warehouses: make([]dto.WarehouseResponse, 0, len(h.Network.Warehouses())),
	}
	for _, id := range h.Network.Warehouses() {
		res.Warehouses = append(res.Warehouses, dto.WarehouseResponse{
			ID:       id,
			Products: h.Network.Products(id),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
