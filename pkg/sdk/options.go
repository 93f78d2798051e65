package aristotle

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "elastic" or "bleve"
	urls      []string
	username  string
	password  string
	sniff     bool
	blevePath string

	index            string
	facetSize        int
	readinessTimeout time.Duration

	specialCollectionsLabel string
	musicLibraryLabel       string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithElastic configures the client to query an Elasticsearch cluster.
func WithElastic(urls ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverElastic
		c.urls = urls
	})
}

// WithBasicAuth sets Elasticsearch credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithSniff enables cluster node discovery.
// Leave it off for single-node or proxied clusters.
func WithSniff() Option {
	return optionFunc(func(c *clientConfig) {
		c.sniff = true
	})
}

// WithBleve keeps the catalog in an embedded Bleve index stored under path.
// An empty path keeps the index in memory.
func WithBleve(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverBleve
		c.blevePath = path
	})
}

// WithIndex sets the catalog index name. Default: "repository".
func WithIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = name
	})
}

// WithFacetSize caps the buckets returned per facet. Default: 20.
func WithFacetSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.facetSize = n
	})
}

// WithReadinessTimeout bounds the initial wait for Elasticsearch.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithCollectionLabels overrides the titles used to resolve the special
// collections and music library records in advanced search.
func WithCollectionLabels(specialCollections, musicLibrary string) Option {
	return optionFunc(func(c *clientConfig) {
		c.specialCollectionsLabel = specialCollections
		c.musicLibraryLabel = musicLibrary
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
