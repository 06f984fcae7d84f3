package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lagoshaul/lagoshaul/internal/api/models"
	"github.com/lagoshaul/lagoshaul/internal/api/response"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
)

// PricingHandler handles the admin pricing parameter endpoints.
type PricingHandler struct {
	params *pricing.Service
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(params *pricing.Service) *PricingHandler {
	return &PricingHandler{params: params}
}

// GetParams handles GET /v1/pricing/params.
func (h *PricingHandler) GetParams(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.params.Params())
}

// UpdateParams handles PUT /v1/pricing/params - wholesale replacement of
// the pricing configuration.
func (h *PricingHandler) UpdateParams(w http.ResponseWriter, r *http.Request) {
	var input pricing.Params
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := validateParams(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid pricing params", fieldErrors)
		return
	}

	updated, err := h.params.Update(r.Context(), input)
	if err != nil {
		response.CouldNotSave(w, r, "pricing params could not be saved")
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

func validateParams(p *pricing.Params) []models.FieldError {
	var fieldErrors []models.FieldError
	if p.BaseRate <= 0 {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "baseRate", Message: "must be positive",
		})
	}
	if p.FuelSurcharge < 1 {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "fuelSurcharge", Message: "must be at least 1.0",
		})
	}
	if p.ProfitMarginPercentage < 0 {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "profitMarginPercentage", Message: "must not be negative",
		})
	}
	for size, factor := range p.LoadFactors {
		if factor <= 0 {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: "loadFactors." + string(size), Message: "must be positive",
			})
		}
	}
	for hour, m := range p.TrafficMultipliers {
		if hour < 0 || hour > 23 {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: "trafficMultipliers", Message: "hours must be 0-23",
			})
			break
		}
		if m < 1 {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: "trafficMultipliers", Message: "multipliers must be at least 1.0",
			})
			break
		}
	}
	return fieldErrors
}
