package handler

import (
	"net/http"

	"github.com/lagoshaul/lagoshaul/internal/api/response"
	"github.com/lagoshaul/lagoshaul/internal/geo"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
	"github.com/lagoshaul/lagoshaul/internal/quote"
)

// MetadataHandler handles static metadata endpoints.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

type lgaResponse struct {
	Name string  `json:"name"`
	Zone string  `json:"zone"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ListLGAs handles GET /v1/metadata/lgas - the supported pickup/dropoff
// areas.
func (h *MetadataHandler) ListLGAs(w http.ResponseWriter, r *http.Request) {
	items := make([]lgaResponse, 0, len(geo.LagosLGAs))
	for _, l := range geo.LagosLGAs {
		items = append(items, lgaResponse{
			Name: l.Name,
			Zone: string(l.Zone),
			Lat:  l.Centre.Lat,
			Lon:  l.Centre.Lon,
		})
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"items": items})
}

// GetEnums handles GET /v1/metadata/enums - the domain enumerations.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := map[string]interface{}{
		"loadSizes": []pricing.LoadSize{pricing.LoadHalf, pricing.LoadSemiFull, pricing.LoadFull},
		"stopTypes": []quote.StopType{quote.StopPickup, quote.StopDropoff},
		"statuses":  []quote.Status{quote.StatusDraft, quote.StatusConfirmed, quote.StatusCompleted},
		"zones":     []geo.Zone{geo.ZoneMainland, geo.ZoneIsland, geo.ZoneOutskirt},
		"fuelTypes": []pricing.FuelType{pricing.FuelPetrol, pricing.FuelDiesel},
	}
	response.JSON(w, r, http.StatusOK, enums)
}
