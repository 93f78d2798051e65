package aristotle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/aristotle/internal/db"
	dbBleve "github.com/kailas-cloud/aristotle/internal/db/bleve"
	dbElastic "github.com/kailas-cloud/aristotle/internal/db/elastic"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	searchrepo "github.com/kailas-cloud/aristotle/internal/repository/search"
	healthuc "github.com/kailas-cloud/aristotle/internal/usecase/health"
	searchuc "github.com/kailas-cloud/aristotle/internal/usecase/search"
)

const (
	driverElastic = "elastic"
	driverBleve   = "bleve"

	defaultIndex            = "repository"
	defaultFacetSize        = 20
	defaultReadinessTimeout = 10 * time.Second
	loadBatchSize           = 500
)

// Internal interface for swapping in tests.
type searchUseCase interface {
	SimpleSearch(ctx context.Context, req request.Simple) (result.SearchResult, error)
	SpecificSearch(ctx context.Context, req request.Specific) (result.SearchResult, error)
	FilterQuery(ctx context.Context, req request.FacetFilter) (result.SearchResult, error)
	AdvancedSearch(ctx context.Context, req request.Advanced) (result.SearchResult, error)
	Browse(ctx context.Context, req request.Browse) (result.SearchResult, error)
	GetDetail(ctx context.Context, pid string) (result.SearchResult, error)
	GetPID(ctx context.Context, esID string) (string, error)
	GetTitle(ctx context.Context, pid string) (string, error)
	Facets(ctx context.Context, scope string) (result.Aggregations, error)
	GenreChoices(ctx context.Context) ([]searchuc.Choice, error)
	TopicChoices(ctx context.Context) ([]searchuc.Choice, error)
	About(ctx context.Context) (searchuc.About, error)
}

// readiness is implemented by backends that wait for a remote peer.
type readiness interface {
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Client is the aristotle SDK entry point.
type Client struct {
	executor  db.Executor
	index     string
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the search backend.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		index:            defaultIndex,
		facetSize:        defaultFacetSize,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("aristotle: backend required (use WithElastic or WithBleve)")
	}

	executor, err := createExecutor(cfg)
	if err != nil {
		return nil, err
	}

	if r, ok := executor.(readiness); ok {
		if err := r.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			executor.Close()
			return nil, fmt.Errorf("aristotle: backend not ready: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		executor.Close()
		return nil, err
	}
	return wireClient(executor, cfg, obs), nil
}

func createExecutor(cfg *clientConfig) (db.Executor, error) {
	switch cfg.driver {
	case driverElastic:
		if len(cfg.urls) == 0 {
			return nil, errors.New("aristotle: elastic requires at least one URL")
		}
		s, err := dbElastic.NewStore(dbElastic.Config{
			URLs:     cfg.urls,
			Username: cfg.username,
			Password: cfg.password,
			Sniff:    cfg.sniff,
		})
		if err != nil {
			return nil, fmt.Errorf("aristotle: create elastic store: %w", err)
		}
		return s, nil
	case driverBleve:
		s, err := dbBleve.NewStore(dbBleve.Config{Path: cfg.blevePath})
		if err != nil {
			return nil, fmt.Errorf("aristotle: create bleve store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("aristotle: unknown driver %q", cfg.driver)
	}
}

func wireClient(executor db.Executor, cfg *clientConfig, obs *observer) *Client {
	repo := searchrepo.New(executor, cfg.index, cfg.facetSize)
	return &Client{
		executor: executor,
		index:    cfg.index,
		searchSvc: searchuc.New(repo, searchuc.Config{
			SpecialCollectionsLabel: cfg.specialCollectionsLabel,
			MusicLibraryLabel:       cfg.musicLibraryLabel,
		}),
		healthSvc: healthuc.New(executor, nil),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.executor != nil {
		c.executor.Close()
	}
}

// Ping checks backend connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.executor.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Load creates the catalog index when missing and indexes records in
// batches. It returns the number of records indexed.
func (c *Client) Load(ctx context.Context, records []Record) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	exists, err := c.executor.IndexExists(ctx, c.index)
	if err != nil {
		return 0, fmt.Errorf("check index: %w", err)
	}
	if !exists {
		def, err := searchrepo.CatalogIndex(c.index)
		if err != nil {
			return 0, fmt.Errorf("index definition: %w", err)
		}
		if err := c.executor.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return 0, fmt.Errorf("create index: %w", err)
		}
	}

	for i, r := range records {
		if r.ID == "" {
			return 0, fmt.Errorf("%w: record %d has no id", ErrInvalidRequest, i)
		}
	}
	for len(records) > 0 {
		batch := records[:min(loadBatchSize, len(records))]
		hits := make([]db.Hit, len(batch))
		for i, r := range batch {
			hits[i] = db.Hit{ID: r.ID, Source: r.Source}
		}
		if err := c.executor.Bulk(ctx, c.index, hits); err != nil {
			return n, fmt.Errorf("bulk after %d records: %w", n, err)
		}
		n += len(batch)
		records = records[len(batch):]
	}
	return n, nil
}
