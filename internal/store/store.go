// Package store persists collected records and preprocessed documents.
// Two backends exist: a directory of JSONL files and a SQLite database.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// Stats summarizes what a store currently holds
type Stats struct {
	Records         int
	RecordsBySource map[string]int
	Documents       int
}

// Store is the persistence boundary for the pipeline
type Store interface {
	// SaveRecords appends collected records, keyed by their source
	SaveRecords(ctx context.Context, records []model.RawRecord) error

	// LoadRecords returns records for one source, or for every source
	// when source is empty, in insertion order
	LoadRecords(ctx context.Context, source string) ([]model.RawRecord, error)

	// Sources lists sources that have stored records, sorted
	Sources(ctx context.Context) ([]string, error)

	// SaveDocuments replaces the preprocessed document set
	SaveDocuments(ctx context.Context, docs []model.Document) error

	// LoadDocuments returns the preprocessed document set in saved order
	LoadDocuments(ctx context.Context) ([]model.Document, error)

	// Stats summarizes stored data
	Stats(ctx context.Context) (Stats, error)

	// Close releases backing resources
	Close() error
}

// Config selects and parameterizes a storage backend
type Config struct {
	Backend string `mapstructure:"backend"` // "jsonl" or "sqlite"
	Dir     string `mapstructure:"dir"`     // jsonl directory
	Path    string `mapstructure:"path"`    // sqlite database file
}

// New creates a store from configuration
func New(cfg Config) (Store, error) {
	backend := strings.ToLower(cfg.Backend)

	switch backend {
	case "jsonl", "":
		return NewJSONLStore(cfg.Dir)

	case "sqlite":
		return NewSQLiteStore(cfg.Path)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: jsonl, sqlite)", cfg.Backend)
	}
}
