package models

import (
	"time"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
	"github.com/lagoshaul/lagoshaul/internal/quote"
)

// StopInput is one stop of an estimate or quote request.
type StopInput struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Address  string `json:"address,omitempty"`
}

// Stops converts the inputs to domain stops.
func Stops(inputs []StopInput) []quote.Stop {
	stops := make([]quote.Stop, len(inputs))
	for i, s := range inputs {
		stops[i] = quote.Stop{
			Type:     quote.StopType(s.Type),
			Location: s.Location,
			Address:  s.Address,
		}
	}
	return stops
}

// EstimateRequest is the body of POST /v1/quotes:estimate.
type EstimateRequest struct {
	Stops            []StopInput `json:"stops"`
	LoadSize         string      `json:"loadSize"`
	LoadWeightKg     float64     `json:"loadWeightKg"`
	PickupTime       time.Time   `json:"pickupTime"`
	UseRouteProvider bool        `json:"useRouteProvider"`
}

// QuoteCreateRequest is the body of POST /v1/quotes and PUT
// /v1/quotes/{quoteId}: a computed estimate the client wants persisted.
type QuoteCreateRequest struct {
	Stops           []StopInput          `json:"stops"`
	LoadSize        string               `json:"loadSize"`
	LoadWeightKg    float64              `json:"loadWeightKg"`
	PickupTime      time.Time            `json:"pickupTime"`
	DistanceKm      float64              `json:"distanceKm"`
	DurationMinutes float64              `json:"durationMinutes"`
	Price           int64                `json:"price"`
	Breakdown       pricing.Breakdown    `json:"breakdown"`
	VehicleSpecs    pricing.VehicleSpecs `json:"vehicleSpecs"`
	FuelData        *fuel.FuelData       `json:"fuelData,omitempty"`
	Status          string               `json:"status,omitempty"`
}

// PagedQuotes is the body of GET /v1/quotes.
type PagedQuotes struct {
	Items []*quote.Quote    `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// NegotiateRequest is the body of POST /v1/quotes:negotiate.
type NegotiateRequest struct {
	OfferPrice     int64 `json:"offerPrice"`
	BreakEvenPrice int64 `json:"breakEvenPrice"`
}
