package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// paramsKey identifies the single pricing params document.
const paramsKey = "default"

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL pricing params repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Load retrieves the saved pricing params.
func (r *PostgresRepository) Load(ctx context.Context) (*Params, error) {
	query := `
		SELECT params, updated_at
		FROM pricing_params
		WHERE key = $1
	`

	var (
		paramsJSON []byte
		updatedAt  time.Time
	)

	err := r.pool.QueryRow(ctx, query, paramsKey).Scan(&paramsJSON, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParamsNotFound
		}
		return nil, err
	}

	var params Params
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		return nil, err
	}
	params.LastUpdated = updatedAt

	return &params, nil
}

// Save persists the pricing params, replacing any previous version.
func (r *PostgresRepository) Save(ctx context.Context, params *Params) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO pricing_params (key, params, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			params = EXCLUDED.params,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query, paramsKey, paramsJSON, params.LastUpdated)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
