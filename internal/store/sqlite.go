package store

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/ppiankov/cyberabsa/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY,
	source TEXT NOT NULL,
	url TEXT UNIQUE,
	title TEXT NOT NULL DEFAULT '',
	content_text TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	published TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	sitename TEXT NOT NULL DEFAULT '',
	tier INTEGER NOT NULL DEFAULT 0,
	collected_at TEXT NOT NULL DEFAULT '',
	success INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY,
	source TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	clean_text TEXT NOT NULL,
	terms TEXT NOT NULL DEFAULT '[]',
	term_count INTEGER NOT NULL DEFAULT 0,
	tier INTEGER NOT NULL DEFAULT 0,
	topic_id INTEGER NOT NULL DEFAULT -1,
	topic_prob REAL NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps records and documents in a single SQLite database.
// Records upsert by URL; URL-less records (CSV ingest, samples) insert as
// independent rows.
type SQLiteStore struct {
	pool *sqlitex.Pool
}

// NewSQLiteStore opens (or creates) the database and ensures the schema.
// The pool opens in WAL mode by default.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite database path not configured")
	}

	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", path), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite pool at %s: %w", path, err)
	}

	s := &SQLiteStore{pool: pool}
	if err := s.ensureSchema(); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	conn, err := s.pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, sqliteSchema, nil); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const upsertRecordSQL = `
INSERT INTO records (source, url, title, content_text, author, published, description, sitename, tier, collected_at, success, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
	source = excluded.source,
	title = excluded.title,
	content_text = excluded.content_text,
	author = excluded.author,
	published = excluded.published,
	description = excluded.description,
	sitename = excluded.sitename,
	tier = excluded.tier,
	collected_at = excluded.collected_at,
	success = excluded.success,
	error = excluded.error`

const insertRecordSQL = `
INSERT INTO records (source, title, content_text, author, published, description, sitename, tier, collected_at, success, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveRecords upserts records by URL in one transaction
func (s *SQLiteStore) SaveRecords(ctx context.Context, records []model.RawRecord) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	for _, r := range records {
		success := 0
		if r.ExtractionSuccess {
			success = 1
		}
		collectedAt := ""
		if !r.CollectedAt.IsZero() {
			collectedAt = r.CollectedAt.Format(time.RFC3339)
		}

		if r.URL == "" {
			err = sqlitex.Execute(conn, insertRecordSQL, &sqlitex.ExecOptions{
				Args: []interface{}{
					r.Source, r.Title, r.Text, r.Author, r.Published,
					r.Description, r.SiteName, int(r.Tier), collectedAt, success, r.Error,
				},
			})
		} else {
			err = sqlitex.Execute(conn, upsertRecordSQL, &sqlitex.ExecOptions{
				Args: []interface{}{
					r.Source, r.URL, r.Title, r.Text, r.Author, r.Published,
					r.Description, r.SiteName, int(r.Tier), collectedAt, success, r.Error,
				},
			})
		}
		if err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
	}
	return nil
}

// LoadRecords returns records for one source, or all records when source is
// empty, in insertion order
func (s *SQLiteStore) LoadRecords(ctx context.Context, source string) ([]model.RawRecord, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	query := `SELECT source, url, title, content_text, author, published, description, sitename, tier, collected_at, success, error
FROM records ORDER BY id`
	var args []interface{}
	if source != "" {
		query = `SELECT source, url, title, content_text, author, published, description, sitename, tier, collected_at, success, error
FROM records WHERE source = ? ORDER BY id`
		args = []interface{}{source}
	}

	var records []model.RawRecord
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			r := model.RawRecord{
				Source:            stmt.ColumnText(0),
				URL:               stmt.ColumnText(1),
				Title:             stmt.ColumnText(2),
				Text:              stmt.ColumnText(3),
				Author:            stmt.ColumnText(4),
				Published:         stmt.ColumnText(5),
				Description:       stmt.ColumnText(6),
				SiteName:          stmt.ColumnText(7),
				Tier:              model.SourceTier(stmt.ColumnInt(8)),
				ExtractionSuccess: stmt.ColumnInt(10) != 0,
				Error:             stmt.ColumnText(11),
			}
			if raw := stmt.ColumnText(9); raw != "" {
				if ts, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
					r.CollectedAt = ts
				}
			}
			records = append(records, r)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// Sources lists distinct record sources, sorted
func (s *SQLiteStore) Sources(ctx context.Context) ([]string, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var sources []string
	err = sqlitex.Execute(conn, "SELECT DISTINCT source FROM records ORDER BY source", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			sources = append(sources, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	return sources, nil
}

// SaveDocuments replaces the document set in one transaction
func (s *SQLiteStore) SaveDocuments(ctx context.Context, docs []model.Document) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM documents", nil)
	if err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	for _, doc := range docs {
		var terms []byte
		terms, err = json.Marshal(doc.Terms)
		if err != nil {
			return fmt.Errorf("failed to encode terms: %w", err)
		}

		err = sqlitex.Execute(conn, `INSERT INTO documents (source, url, title, clean_text, terms, term_count, tier, topic_id, topic_prob)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
			Args: []interface{}{
				doc.Source, doc.URL, doc.Title, doc.CleanText, string(terms),
				doc.TermCount, int(doc.Tier), doc.TopicID, doc.TopicProb,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
	}
	return nil
}

// LoadDocuments returns the document set in saved order
func (s *SQLiteStore) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var docs []model.Document
	err = sqlitex.Execute(conn, `SELECT source, url, title, clean_text, terms, term_count, tier, topic_id, topic_prob
FROM documents ORDER BY id`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := model.Document{
				Source:    stmt.ColumnText(0),
				URL:       stmt.ColumnText(1),
				Title:     stmt.ColumnText(2),
				CleanText: stmt.ColumnText(3),
				TermCount: stmt.ColumnInt(5),
				Tier:      model.SourceTier(stmt.ColumnInt(6)),
				TopicID:   stmt.ColumnInt(7),
				TopicProb: stmt.ColumnFloat(8),
			}
			if raw := stmt.ColumnText(4); raw != "" && raw != "null" {
				if err := json.Unmarshal([]byte(raw), &doc.Terms); err != nil {
					return err
				}
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	return docs, nil
}

// Stats counts stored records and documents
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer s.pool.Put(conn)

	stats := Stats{RecordsBySource: make(map[string]int)}

	err = sqlitex.Execute(conn, "SELECT source, COUNT(*) FROM records GROUP BY source", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count := stmt.ColumnInt(1)
			stats.RecordsBySource[stmt.ColumnText(0)] = count
			stats.Records += count
			return nil
		},
	})
	if err != nil {
		return stats, fmt.Errorf("failed to count records: %w", err)
	}

	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM documents", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			stats.Documents = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return stats, fmt.Errorf("failed to count documents: %w", err)
	}

	return stats, nil
}

// Close shuts down the connection pool
func (s *SQLiteStore) Close() error {
	return s.pool.Close()
}
