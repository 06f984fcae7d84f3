package handler

import (
	"net/http"

	"github.com/lagoshaul/lagoshaul/internal/api/response"
	"github.com/lagoshaul/lagoshaul/internal/fuel"
)

// FuelHandler handles the fuel price endpoint.
type FuelHandler struct {
	fuel *fuel.Service
}

// NewFuelHandler creates a new FuelHandler.
func NewFuelHandler(svc *fuel.Service) *FuelHandler {
	return &FuelHandler{fuel: svc}
}

// GetPrice handles GET /v1/fuel/price - the current pump price with its
// source label (live, cached or fallback).
func (h *FuelHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.fuel.CurrentPrice(r.Context()))
}
