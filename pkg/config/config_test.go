package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://stockpulse:pw@localhost:5432/stockpulse?sslmode=disable")
	os.Unsetenv("SUBREDDITS_TO_SCRAPE")
	os.Unsetenv("TICKER_MIN_LEN")
	os.Unsetenv("TICKER_MAX_LEN")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 1, cfg.TickerMinLen)
	assert.Equal(t, 6, cfg.TickerMaxLen)
	assert.Equal(t, []string{"investing", "stocks", "wallstreetbets"}, cfg.Subreddits)
	assert.Equal(t, 10, cfg.IEX.BatchSize)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_SubredditsSortedAndLowercased(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stockpulse")
	t.Setenv("SUBREDDITS_TO_SCRAPE", "WallStreetBets, stocks ,Investing")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"investing", "stocks", "wallstreetbets"}, cfg.Subreddits)
}

func TestLoad_InvalidTickerBounds(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stockpulse")
	t.Setenv("TICKER_MIN_LEN", "5")
	t.Setenv("TICKER_MAX_LEN", "2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ticker length bounds")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stockpulse")
	t.Setenv("ENV", "prod")

	_, err := Load()
	require.Error(t, err)
}
