// Package elastic implements the search Executor over Elasticsearch 7 via
// olivere/elastic.
package elastic

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/aristotle/internal/db"
)

// Compile-time check: Store implements db.Executor.
var _ db.Executor = (*Store)(nil)

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	URLs     []string
	Username string
	Password string
	Sniff    bool
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// Store is the Elasticsearch execution adapter.
type Store struct {
	client *elastic.Client
	url    string
}

// NewStore creates an Elasticsearch client. No request is sent until the
// first operation: health checks are disabled at startup so the service can
// boot while the cluster is still coming up.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.URLs) == 0 {
		return nil, fmt.Errorf("urls is required")
	}

	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.URLs...),
		elastic.SetSniff(cfg.Sniff),
		elastic.SetHealthcheck(false),
	}
	if cfg.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, elastic.SetHttpClient(cfg.HTTPClient))
	}

	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, url: cfg.URLs[0]}, nil
}

// Ping checks connectivity against the first configured node.
func (s *Store) Ping(ctx context.Context) error {
	if _, _, err := s.client.Ping(s.url).Do(ctx); err != nil {
		return wrapErr(db.OpPing, err)
	}
	return nil
}

// Close stops background goroutines of the client.
func (s *Store) Close() {
	s.client.Stop()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// wrapErr attaches the operation name, marks connection level failures
// with db.ErrUnavailable and rejected requests with db.ErrBadQuery.
func wrapErr(op string, err error) error {
	switch {
	case isConnErr(err):
		err = fmt.Errorf("%w: %w", db.ErrUnavailable, err)
	case isBadRequest(err):
		err = fmt.Errorf("%w: %w", db.ErrBadQuery, err)
	}
	return &db.Error{Op: op, Err: err}
}

func isBadRequest(err error) bool {
	var esErr *elastic.Error
	return errors.As(err, &esErr) && esErr.Status == http.StatusBadRequest
}

func isConnErr(err error) bool {
	if elastic.IsConnErr(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var esErr *elastic.Error
	if errors.As(err, &esErr) {
		return esErr.Status == http.StatusBadGateway ||
			esErr.Status == http.StatusServiceUnavailable ||
			esErr.Status == http.StatusGatewayTimeout
	}
	return false
}
