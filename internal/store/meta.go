package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Meta keys shared by background jobs
const (
	MetaSubmissionsUpdated = "submissions_updated_utc"
)

// MetaRepository stores small pieces of job state as key/value rows
type MetaRepository struct {
	pool *pgxpool.Pool
}

// NewMetaRepository creates a new meta repository
func NewMetaRepository(pool *pgxpool.Pool) *MetaRepository {
	return &MetaRepository{pool: pool}
}

// GetInt64 returns the value for a key, or 0 when the key is absent
func (r *MetaRepository) GetInt64(ctx context.Context, key string) (int64, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM meta WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query meta %s: %w", key, err)
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse meta %s: %w", key, err)
	}
	return n, nil
}

// SetInt64 upserts the value for a key
func (r *MetaRepository) SetInt64(ctx context.Context, key string, value int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO meta (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, strconv.FormatInt(value, 10))
	if err != nil {
		return fmt.Errorf("set meta %s: %w", key, err)
	}
	return nil
}
