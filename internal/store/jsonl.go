package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// JSONLStore keeps records in <dir>/raw/<source>.jsonl files and documents
// in <dir>/documents.jsonl. Records append; documents replace.
type JSONLStore struct {
	dir string
}

// NewJSONLStore creates the storage directory if needed
func NewJSONLStore(dir string) (*JSONLStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("jsonl storage directory not configured")
	}
	if err := os.MkdirAll(filepath.Join(dir, "raw"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &JSONLStore{dir: dir}, nil
}

// sourceKey normalizes a source name into a safe file stem
func sourceKey(source string) string {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, source)
}

func (s *JSONLStore) recordsPath(source string) string {
	return filepath.Join(s.dir, "raw", sourceKey(source)+".jsonl")
}

func (s *JSONLStore) documentsPath() string {
	return filepath.Join(s.dir, "documents.jsonl")
}

// SaveRecords appends records to their per-source files
func (s *JSONLStore) SaveRecords(ctx context.Context, records []model.RawRecord) error {
	grouped := make(map[string][]model.RawRecord)
	var order []string
	for _, r := range records {
		key := sourceKey(r.Source)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], r)
	}

	for _, key := range order {
		if err := appendJSONL(filepath.Join(s.dir, "raw", key+".jsonl"), grouped[key]); err != nil {
			return err
		}
	}
	return nil
}

func appendJSONL(path string, records []model.RawRecord) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to append record to %s: %w", path, err)
		}
	}
	return nil
}

// LoadRecords reads one source file, or every source file in sorted source
// order when source is empty. A source with no file yields no records and
// no error.
func (s *JSONLStore) LoadRecords(ctx context.Context, source string) ([]model.RawRecord, error) {
	if source != "" {
		return readRecords(s.recordsPath(source))
	}

	sources, err := s.Sources(ctx)
	if err != nil {
		return nil, err
	}

	var all []model.RawRecord
	for _, src := range sources {
		records, err := readRecords(s.recordsPath(src))
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func readRecords(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var records []model.RawRecord
	dec := json.NewDecoder(f)
	for {
		var r model.RawRecord
		if err := dec.Decode(&r); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Sources lists the record files present, sorted
func (s *JSONLStore) Sources(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "raw"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	var sources []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		sources = append(sources, strings.TrimSuffix(name, ".jsonl"))
	}
	sort.Strings(sources)
	return sources, nil
}

// SaveDocuments replaces the document file
func (s *JSONLStore) SaveDocuments(ctx context.Context, docs []model.Document) error {
	f, err := os.Create(s.documentsPath())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.documentsPath(), err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
	}
	return nil
}

// LoadDocuments reads the document file; a missing file yields no documents
func (s *JSONLStore) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	f, err := os.Open(s.documentsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.documentsPath(), err)
	}
	defer func() { _ = f.Close() }()

	var docs []model.Document
	dec := json.NewDecoder(f)
	for {
		var doc model.Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse %s: %w", s.documentsPath(), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Stats counts stored records and documents
func (s *JSONLStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{RecordsBySource: make(map[string]int)}

	sources, err := s.Sources(ctx)
	if err != nil {
		return stats, err
	}
	for _, src := range sources {
		records, err := readRecords(s.recordsPath(src))
		if err != nil {
			return stats, err
		}
		stats.RecordsBySource[src] = len(records)
		stats.Records += len(records)
	}

	docs, err := s.LoadDocuments(ctx)
	if err != nil {
		return stats, err
	}
	stats.Documents = len(docs)

	return stats, nil
}

// Close is a no-op for the file backend
func (s *JSONLStore) Close() error {
	return nil
}
