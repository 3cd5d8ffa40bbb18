package commands

import (
	"fmt"
	"time"

	"github.com/stockpulse/backend/internal/catalog"
	"github.com/stockpulse/backend/internal/extract"
	"github.com/stockpulse/backend/internal/external/iex"
	"github.com/stockpulse/backend/internal/external/pushshift"
	"github.com/stockpulse/backend/internal/external/reddit"
	"github.com/stockpulse/backend/internal/scraper"
	"github.com/stockpulse/backend/internal/store"
	"github.com/stockpulse/backend/internal/trends"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/database"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
	"github.com/stockpulse/backend/pkg/redis"
)

// deps is the shared object graph behind every command
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	rdb     *redis.Client
	catalog *catalog.Catalog
	grouper *trends.Grouper

	submissions *store.SubmissionRepository
	tickers     *store.TickerRepository
}

// newDeps loads config and wires the core components every command
// needs. Callers must Close when done.
func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	cat, err := catalog.Load(catalog.DefaultPaths(cfg.DataDir))
	if err != nil {
		rdb.Close()
		db.Close()
		return nil, fmt.Errorf("load ticker catalog: %w", err)
	}
	log.WithField("symbols", cat.Size()).Info("Loaded ticker catalog")

	extractor, err := extract.New(cfg.TickerMinLen, cfg.TickerMaxLen, cat)
	if err != nil {
		rdb.Close()
		db.Close()
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	return &deps{
		cfg:         cfg,
		log:         log,
		db:          db,
		rdb:         rdb,
		catalog:     cat,
		grouper:     trends.NewGrouper(extractor, log),
		submissions: store.NewSubmissionRepository(db.Pool),
		tickers:     store.NewTickerRepository(db.Pool),
	}, nil
}

// Close releases all held connections
func (d *deps) Close() {
	d.rdb.Close()
	d.db.Close()
}

// newScraper wires the pushshift-backed scraper
func (d *deps) newScraper() *scraper.Scraper {
	httpClient := httputil.New(d.cfg, d.log)
	source := pushshift.NewClient(d.cfg.Pushshift, httpClient, d.log)

	startDate, _ := time.Parse("2006-01-02", d.cfg.ScrapeStartDate)

	return scraper.New(
		source,
		d.catalog,
		d.grouper,
		d.submissions,
		d.tickers,
		d.cfg.Subreddits,
		startDate.UTC(),
		d.log,
	)
}

// newRescraper wires the reddit-backed score refresher
func (d *deps) newRescraper() *scraper.Rescraper {
	httpClient := httputil.New(d.cfg, d.log)
	if d.rdb.Enabled() {
		limiter := redis.NewRateLimiter(d.rdb, "reddit")
		httpClient = httpClient.WithRateLimiter(limiter, redis.RedditRateLimit)
	}
	source := reddit.NewClient(d.cfg.Reddit, httpClient, d.log)
	return scraper.NewRescraper(source, d.submissions, d.log)
}

// newQuoteProvider wires the IEX client, or nil without a token
func (d *deps) newQuoteProvider() *iex.Client {
	if d.cfg.IEX.Token == "" {
		d.log.Warn("IEX token not configured, quotes disabled")
		return nil
	}

	httpClient := httputil.New(d.cfg, d.log)
	if d.rdb.Enabled() {
		limiter := redis.NewRateLimiter(d.rdb, "iex")
		httpClient = httpClient.WithRateLimiter(limiter, redis.IEXRateLimit)
	}
	return iex.NewClient(d.cfg.IEX, httpClient, d.log)
}

// newCache returns the shared cache, or nil when redis is disabled
func (d *deps) newCache() *redis.Cache {
	if !d.rdb.Enabled() {
		return nil
	}
	return redis.NewCache(d.rdb, "stockpulse")
}
