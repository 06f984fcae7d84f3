package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
)

// PostgresRepository implements Repository backed by PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE quotes (
//	    id               TEXT PRIMARY KEY,
//	    stops            JSONB NOT NULL,
//	    load_size        TEXT NOT NULL,
//	    load_weight_kg   DOUBLE PRECISION NOT NULL,
//	    pickup_time      TIMESTAMPTZ NOT NULL,
//	    distance_km      DOUBLE PRECISION NOT NULL,
//	    duration_minutes DOUBLE PRECISION NOT NULL,
//	    price            BIGINT NOT NULL,
//	    breakdown        JSONB NOT NULL,
//	    vehicle_specs    JSONB NOT NULL,
//	    fuel_data        JSONB,
//	    status           TEXT NOT NULL,
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    updated_at       TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX idx_quotes_created_at ON quotes (created_at DESC);
//	CREATE INDEX idx_quotes_status ON quotes (status);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL-backed quote repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts or replaces a quote by ID.
func (r *PostgresRepository) Save(ctx context.Context, q *Quote) error {
	stopsJSON, err := json.Marshal(q.Stops)
	if err != nil {
		return fmt.Errorf("marshaling stops: %w", err)
	}
	breakdownJSON, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("marshaling breakdown: %w", err)
	}
	vehicleJSON, err := json.Marshal(q.VehicleSpecs)
	if err != nil {
		return fmt.Errorf("marshaling vehicle specs: %w", err)
	}

	var fuelJSON []byte
	if q.FuelData != nil {
		fuelJSON, err = json.Marshal(q.FuelData)
		if err != nil {
			return fmt.Errorf("marshaling fuel data: %w", err)
		}
	}

	query := `
		INSERT INTO quotes (
			id, stops, load_size, load_weight_kg, pickup_time,
			distance_km, duration_minutes, price, breakdown,
			vehicle_specs, fuel_data, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			stops = EXCLUDED.stops,
			load_size = EXCLUDED.load_size,
			load_weight_kg = EXCLUDED.load_weight_kg,
			pickup_time = EXCLUDED.pickup_time,
			distance_km = EXCLUDED.distance_km,
			duration_minutes = EXCLUDED.duration_minutes,
			price = EXCLUDED.price,
			breakdown = EXCLUDED.breakdown,
			vehicle_specs = EXCLUDED.vehicle_specs,
			fuel_data = EXCLUDED.fuel_data,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query,
		q.ID, stopsJSON, string(q.LoadSize), q.LoadWeightKg, q.PickupTime,
		q.DistanceKm, q.DurationMinutes, q.Price, breakdownJSON,
		vehicleJSON, fuelJSON, string(q.Status), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving quote: %w", err)
	}

	return nil
}

const quoteColumns = `
	id, stops, load_size, load_weight_kg, pickup_time,
	distance_km, duration_minutes, price, breakdown,
	vehicle_specs, fuel_data, status, created_at, updated_at
`

// Get retrieves a quote by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return q, nil
}

// List returns a filtered page of quotes, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Quote, time.Time, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
	args := []any{}
	argN := 1

	if filter.Query != "" {
		query += fmt.Sprintf(` AND stops::text ILIKE $%d`, argN)
		args = append(args, "%"+filter.Query+"%")
		argN++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argN)
		args = append(args, string(filter.Status))
		argN++
	}
	if !filter.Cursor.IsZero() {
		query += fmt.Sprintf(` AND created_at < $%d`, argN)
		args = append(args, filter.Cursor)
		argN++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, argN)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating quotes: %w", err)
	}

	var next time.Time
	if len(quotes) == limit {
		next = quotes[len(quotes)-1].CreatedAt
	}

	return quotes, next, nil
}

// Delete removes a quote by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuoteNotFound
	}

	return nil
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	var loadSize, status string
	var stopsJSON, breakdownJSON, vehicleJSON, fuelJSON []byte

	err := row.Scan(
		&q.ID, &stopsJSON, &loadSize, &q.LoadWeightKg, &q.PickupTime,
		&q.DistanceKm, &q.DurationMinutes, &q.Price, &breakdownJSON,
		&vehicleJSON, &fuelJSON, &status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.LoadSize = pricing.LoadSize(loadSize)
	q.Status = Status(status)

	if err := json.Unmarshal(stopsJSON, &q.Stops); err != nil {
		return nil, fmt.Errorf("unmarshaling stops: %w", err)
	}
	if err := json.Unmarshal(breakdownJSON, &q.Breakdown); err != nil {
		return nil, fmt.Errorf("unmarshaling breakdown: %w", err)
	}
	if err := json.Unmarshal(vehicleJSON, &q.VehicleSpecs); err != nil {
		return nil, fmt.Errorf("unmarshaling vehicle specs: %w", err)
	}
	if len(fuelJSON) > 0 {
		var fd fuel.FuelData
		if err := json.Unmarshal(fuelJSON, &fd); err != nil {
			return nil, fmt.Errorf("unmarshaling fuel data: %w", err)
		}
		q.FuelData = &fd
	}

	return &q, nil
}
