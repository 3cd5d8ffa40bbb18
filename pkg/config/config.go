package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	Reddit    RedditConfig
	Pushshift PushshiftConfig
	IEX       IEXConfig

	// Scraping
	Subreddits      []string // tracked subreddits, lowercased and sorted
	ScrapeStartDate string   // YYYY-MM-DD, first day to scrape when the DB is empty

	// Ticker extraction
	TickerMinLen int
	TickerMaxLen int
	DataDir      string // directory with the reference ticker datasets

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// RedditConfig holds Reddit API credentials used for score rescraping
type RedditConfig struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// PushshiftConfig holds Pushshift API configuration
type PushshiftConfig struct {
	BaseURL        string
	PageSize       int
	RequestsPerSec float64
}

// IEXConfig holds IEX Cloud API configuration
type IEXConfig struct {
	BaseURL   string
	Token     string
	IsSandbox bool
	BatchSize int
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Reddit: RedditConfig{
			Username:     getEnv("REDDIT_USER_NAME", ""),
			Password:     getEnv("REDDIT_PASSWORD", ""),
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			BaseURL:      getEnv("REDDIT_BASE_URL", "https://oauth.reddit.com"),
		},

		Pushshift: PushshiftConfig{
			BaseURL:        getEnv("PUSHSHIFT_BASE_URL", "https://api.pushshift.io"),
			PageSize:       getEnvAsInt("PUSHSHIFT_PAGE_SIZE", 100),
			RequestsPerSec: getEnvAsFloat("PUSHSHIFT_RPS", 1.0),
		},

		IEX: IEXConfig{
			BaseURL:   getEnv("IEX_CLOUD_BASE_URL", "https://cloud.iexapis.com/stable"),
			Token:     getEnv("IEX_CLOUD_TOKEN", ""),
			IsSandbox: getEnvAsBool("IEX_CLOUD_IS_SANDBOX", false),
			BatchSize: getEnvAsInt("IEX_BATCH_SIZE", 10),
		},

		Subreddits:      getEnvAsSubreddits("SUBREDDITS_TO_SCRAPE", "investing,stocks,wallstreetbets"),
		ScrapeStartDate: getEnv("SCRAPE_START_DATE", "2021-01-01"),

		TickerMinLen: getEnvAsInt("TICKER_MIN_LEN", 1),
		TickerMaxLen: getEnvAsInt("TICKER_MAX_LEN", 6),
		DataDir:      getEnv("TICKER_DATA_DIR", "data"),

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Subreddits) == 0 {
		return fmt.Errorf("SUBREDDITS_TO_SCRAPE must list at least one subreddit")
	}

	if c.TickerMinLen < 1 || c.TickerMaxLen < c.TickerMinLen {
		return fmt.Errorf("invalid ticker length bounds: min=%d max=%d", c.TickerMinLen, c.TickerMaxLen)
	}

	if _, err := time.Parse("2006-01-02", c.ScrapeStartDate); err != nil {
		return fmt.Errorf("SCRAPE_START_DATE must be YYYY-MM-DD: %w", err)
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsSubreddits parses a comma-separated subreddit list.
// Names are lowercased and sorted so the tracked set has a stable
// order everywhere it is used.
func getEnvAsSubreddits(key, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	var subreddits []string
	for _, name := range strings.Split(valueStr, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			subreddits = append(subreddits, name)
		}
	}
	sort.Strings(subreddits)
	return subreddits
}
