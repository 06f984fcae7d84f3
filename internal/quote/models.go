// Package quote implements the quote domain: multi-stop delivery quotes,
// their persistence, price estimation cycles and CSV export.
package quote

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
)

// Sentinel errors for quote operations.
var (
	// ErrQuoteNotFound indicates the quote does not exist.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrCouldNotSave indicates the quote could not be persisted.
	ErrCouldNotSave = errors.New("could not save quote")

	// ErrSuperseded indicates an estimation cycle was overtaken by a newer
	// one and its result must be discarded.
	ErrSuperseded = errors.New("estimation cycle superseded")
)

// StopType distinguishes pickup from dropoff stops.
type StopType string

const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
)

// Valid reports whether the stop type is known.
func (t StopType) Valid() bool {
	return t == StopPickup || t == StopDropoff
}

// Stop is a single point on a delivery route.
type Stop struct {
	Type     StopType `json:"type"`
	Location string   `json:"location"`
	Address  string   `json:"address,omitempty"`
}

// Status is the lifecycle state of a saved quote.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
)

// Valid reports whether the status is known.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// Quote is a saved delivery price quote.
type Quote struct {
	ID              string               `json:"id"`
	Stops           []Stop               `json:"stops"`
	LoadSize        pricing.LoadSize     `json:"loadSize"`
	LoadWeightKg    float64              `json:"loadWeightKg"`
	PickupTime      time.Time            `json:"pickupTime"`
	DistanceKm      float64              `json:"distanceKm"`
	DurationMinutes float64              `json:"durationMinutes"`
	Price           int64                `json:"price"`
	Breakdown       pricing.Breakdown    `json:"breakdown"`
	VehicleSpecs    pricing.VehicleSpecs `json:"vehicleSpecs"`
	FuelData        *fuel.FuelData       `json:"fuelData,omitempty"`
	Status          Status               `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// NewQuoteID generates a unique quote identifier.
func NewQuoteID() string {
	return "qt_" + uuid.New().String()[:22]
}
