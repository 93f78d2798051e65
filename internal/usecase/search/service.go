// Package search composes catalog queries and runs them against the
// repository.
package search

import (
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
)

// Default lookup labels of the collections advanced search can narrow to.
const (
	DefaultSpecialCollectionsLabel = "Special Collections Materials"
	DefaultMusicLibraryLabel       = "Music Department"
)

// DefaultTitle is returned by GetTitle when the identifier does not resolve
// to exactly one document.
const DefaultTitle = "Home"

// Config tunes the service.
type Config struct {
	// SpecialCollectionsLabel is the title of the special collections record.
	SpecialCollectionsLabel string
	// MusicLibraryLabel is the title of the music library record.
	MusicLibraryLabel string
}

func (c Config) withDefaults() Config {
	if c.SpecialCollectionsLabel == "" {
		c.SpecialCollectionsLabel = DefaultSpecialCollectionsLabel
	}
	if c.MusicLibraryLabel == "" {
		c.MusicLibraryLabel = DefaultMusicLibraryLabel
	}
	return c
}

// Service handles catalog search: simple, field-specific, facet-filtered,
// advanced boolean and browse-by-parent.
type Service struct {
	repo   Repository
	schema facet.Schema
	cfg    Config
}

// New creates a search service.
func New(repo Repository, cfg Config) *Service {
	return &Service{repo: repo, schema: facet.Default, cfg: cfg.withDefaults()}
}
