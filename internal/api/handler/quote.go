// Package handler provides HTTP handlers for the LagosHaul API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lagoshaul/lagoshaul/internal/api/models"
	"github.com/lagoshaul/lagoshaul/internal/api/response"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
	"github.com/lagoshaul/lagoshaul/internal/quote"
)

// QuoteHandler handles quote endpoints.
type QuoteHandler struct {
	quotes    *quote.Service
	estimator *quote.Estimator
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes *quote.Service, estimator *quote.Estimator) *QuoteHandler {
	return &QuoteHandler{
		quotes:    quotes,
		estimator: estimator,
	}
}

// Estimate handles POST /v1/quotes:estimate - compute a price breakdown
// without saving anything.
func (h *QuoteHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var input models.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := validateEstimate(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid estimate request", fieldErrors)
		return
	}

	// Each API request is an independent cycle. Latest-wins superseding
	// is for a single input stream; unrelated clients must not discard
	// each other's estimates.
	estimate, err := h.estimator.Estimate(r.Context(), quote.EstimateInput{
		Stops:            models.Stops(input.Stops),
		LoadSize:         pricing.LoadSize(input.LoadSize),
		LoadWeightKg:     input.LoadWeightKg,
		PickupTime:       input.PickupTime,
		UseRouteProvider: input.UseRouteProvider,
	})
	if err != nil {
		response.InternalError(w, r, "failed to compute estimate")
		return
	}

	response.JSON(w, r, http.StatusOK, estimate)
}

// Create handles POST /v1/quotes - save a computed estimate as a quote.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.QuoteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := validateQuote(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid quote", fieldErrors)
		return
	}

	q := quoteFromRequest(&input)
	created, err := h.quotes.Create(r.Context(), q)
	if err != nil {
		response.CouldNotSave(w, r, "quote could not be saved")
		return
	}

	location := fmt.Sprintf("/v1/quotes/%s", created.ID)
	response.Created(w, r, location, created)
}

// List handles GET /v1/quotes - list and search saved quotes.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := quote.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: quote.Status(r.URL.Query().Get("status")),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		response.BadRequest(w, r, "unknown status", []models.FieldError{
			{Field: "status", Message: "must be draft, confirmed or completed"},
		})
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 200 {
			response.BadRequest(w, r, "limit must be between 1 and 200", nil)
			return
		}
		filter.Limit = limit
	}

	if cursorStr := r.URL.Query().Get("cursor"); cursorStr != "" {
		cursor, err := time.Parse(time.RFC3339Nano, cursorStr)
		if err != nil {
			response.BadRequest(w, r, "invalid cursor", nil)
			return
		}
		filter.Cursor = cursor
	}

	quotes, next, err := h.quotes.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w, r, "failed to list quotes")
		return
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}
	page := models.PagedQuotes{
		Items: quotes,
		Meta:  models.PagedResponseMeta{Limit: limit},
	}
	if !next.IsZero() {
		cursor := next.Format(time.RFC3339Nano)
		page.Meta.NextCursor = &cursor
	}
	if page.Items == nil {
		page.Items = []*quote.Quote{}
	}

	response.JSON(w, r, http.StatusOK, page)
}

// Get handles GET /v1/quotes/{quoteId}.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteId")
	if quoteID == "" {
		response.BadRequest(w, r, "quoteId is required", nil)
		return
	}

	q, err := h.quotes.Get(r.Context(), quoteID)
	if err != nil {
		if errors.Is(err, quote.ErrQuoteNotFound) {
			response.NotFound(w, r, "quote does not exist")
			return
		}
		response.InternalError(w, r, "failed to fetch quote")
		return
	}

	response.JSON(w, r, http.StatusOK, q)
}

// Update handles PUT /v1/quotes/{quoteId} - re-save an edited quote.
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteId")
	if quoteID == "" {
		response.BadRequest(w, r, "quoteId is required", nil)
		return
	}

	var input models.QuoteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := validateQuote(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid quote", fieldErrors)
		return
	}

	q := quoteFromRequest(&input)
	q.ID = quoteID

	updated, err := h.quotes.Update(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrQuoteNotFound):
			response.NotFound(w, r, "quote does not exist")
		case errors.Is(err, quote.ErrCouldNotSave):
			response.CouldNotSave(w, r, "quote could not be saved")
		default:
			response.InternalError(w, r, "failed to update quote")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /v1/quotes/{quoteId}.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteId")
	if quoteID == "" {
		response.BadRequest(w, r, "quoteId is required", nil)
		return
	}

	if err := h.quotes.Delete(r.Context(), quoteID); err != nil {
		if errors.Is(err, quote.ErrQuoteNotFound) {
			response.NotFound(w, r, "quote does not exist")
			return
		}
		response.InternalError(w, r, "failed to delete quote")
		return
	}

	response.NoContent(w, r)
}

// Export handles GET /v1/quotes:export - download quotes as CSV.
func (h *QuoteHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter := quote.ListFilter{
		Query:  r.URL.Query().Get("q"),
		Status: quote.Status(r.URL.Query().Get("status")),
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="quotes-%s.csv"`, time.Now().Format("2006-01-02")))

	if err := h.quotes.ExportCSV(r.Context(), w, filter); err != nil {
		// Headers may already be sent; nothing more useful to do than log
		// via the middleware and cut the stream.
		return
	}
}

// Negotiate handles POST /v1/quotes:negotiate - check a customer offer
// against the break-even price.
func (h *QuoteHandler) Negotiate(w http.ResponseWriter, r *http.Request) {
	var input models.NegotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	analysis := pricing.EvaluateOffer(input.OfferPrice, input.BreakEvenPrice)
	response.JSON(w, r, http.StatusOK, analysis)
}

func validateEstimate(input *models.EstimateRequest) []models.FieldError {
	var fieldErrors []models.FieldError
	if input.LoadSize != "" && !pricing.LoadSize(input.LoadSize).Valid() {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "loadSize", Message: "must be half, semi-full or full",
		})
	}
	for i, s := range input.Stops {
		if s.Type != "" && !quote.StopType(s.Type).Valid() {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   fmt.Sprintf("stops[%d].type", i),
				Message: "must be pickup or dropoff",
			})
		}
	}
	return fieldErrors
}

func validateQuote(input *models.QuoteCreateRequest) []models.FieldError {
	var fieldErrors []models.FieldError
	if len(input.Stops) < 2 {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "stops", Message: "at least two stops are required",
		})
	}
	if !pricing.LoadSize(input.LoadSize).Valid() {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "loadSize", Message: "must be half, semi-full or full",
		})
	}
	if input.Status != "" && !quote.Status(input.Status).Valid() {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "status", Message: "must be draft, confirmed or completed",
		})
	}
	return fieldErrors
}

func quoteFromRequest(input *models.QuoteCreateRequest) *quote.Quote {
	return &quote.Quote{
		Stops:           models.Stops(input.Stops),
		LoadSize:        pricing.LoadSize(input.LoadSize),
		LoadWeightKg:    input.LoadWeightKg,
		PickupTime:      input.PickupTime,
		DistanceKm:      input.DistanceKm,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		Breakdown:       input.Breakdown,
		VehicleSpecs:    input.VehicleSpecs,
		FuelData:        input.FuelData,
		Status:          quote.Status(input.Status),
	}
}
