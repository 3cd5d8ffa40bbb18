package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpulse/backend/internal/contracts"
)

// TickerRepository persists reference tickers and the links between
// submissions and the tickers they mention.
type TickerRepository struct {
	pool *pgxpool.Pool
}

// NewTickerRepository creates a new ticker repository
func NewTickerRepository(pool *pgxpool.Pool) *TickerRepository {
	return &TickerRepository{pool: pool}
}

// SaveBatch inserts tickers, leaving existing rows untouched
func (r *TickerRepository) SaveBatch(ctx context.Context, tickers []contracts.Ticker) error {
	if len(tickers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO tickers (symbol, is_fake, name, exchange, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol) DO NOTHING
	`
	for _, t := range tickers {
		batch.Queue(query, t.Symbol, t.IsFake, t.CompanyName, t.Exchange, t.Currency)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range tickers {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert ticker: %w", err)
		}
	}
	return nil
}

// LinkSubmissions records which tickers a submission mentions
func (r *TickerRepository) LinkSubmissions(ctx context.Context, links map[string][]string) error {
	if len(links) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO submission_tickers (submission_id, symbol)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	count := 0
	for submissionID, symbols := range links {
		for _, symbol := range symbols {
			batch.Queue(query, submissionID, symbol)
			count++
		}
	}
	if count == 0 {
		return nil
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < count; i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("link submission ticker: %w", err)
		}
	}
	return nil
}
