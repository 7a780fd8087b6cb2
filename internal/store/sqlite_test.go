package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ppiankov/cyberabsa/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_UpsertByURL(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	err := s.SaveRecords(ctx, []model.RawRecord{
		{Source: "cisa", URL: "https://example.gov/a", Title: "First pass", ExtractionSuccess: false, Error: "timeout"},
	})
	if err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	// Re-collecting the same URL replaces the row
	err = s.SaveRecords(ctx, []model.RawRecord{
		{Source: "cisa", URL: "https://example.gov/a", Title: "Second pass", ExtractionSuccess: true},
	})
	if err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	records, err := s.LoadRecords(ctx, "cisa")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected upsert to keep 1 record, got %d", len(records))
	}
	if records[0].Title != "Second pass" || !records[0].ExtractionSuccess || records[0].Error != "" {
		t.Errorf("Record not updated: %+v", records[0])
	}
}

func TestSQLiteStore_URLLessRecordsInsertSeparately(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	err := s.SaveRecords(ctx, []model.RawRecord{
		{Source: "eurepoc", Title: "Incident 1"},
		{Source: "eurepoc", Title: "Incident 2"},
	})
	if err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	records, err := s.LoadRecords(ctx, "eurepoc")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 URL-less records, got %d", len(records))
	}
}

func TestSQLiteStore_LoadRecordsFiltersBySource(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_ = s.SaveRecords(ctx, []model.RawRecord{
		{Source: "cisa", URL: "https://example.gov/a", Tier: model.TierGovernment},
		{Source: "csis", URL: "https://example.org/b", Tier: model.TierResearch},
	})

	cisa, err := s.LoadRecords(ctx, "cisa")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(cisa) != 1 || cisa[0].Tier != model.TierGovernment {
		t.Errorf("Unexpected cisa records: %+v", cisa)
	}

	all, err := s.LoadRecords(ctx, "")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 records, got %d", len(all))
	}

	sources, err := s.Sources(ctx)
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if !reflect.DeepEqual(sources, []string{"cisa", "csis"}) {
		t.Errorf("Expected [cisa csis], got %v", sources)
	}
}

func TestSQLiteStore_DocumentsReplaceAndRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := []model.Document{
		{Source: "cisa", CleanText: "ransomware advisory issued", Terms: []string{"ransomware"}, TermCount: 1, TopicID: -1},
	}
	if err := s.SaveDocuments(ctx, first); err != nil {
		t.Fatalf("SaveDocuments failed: %v", err)
	}

	second := []model.Document{
		{
			Source:    "csis",
			URL:       "https://example.org/b",
			Title:     "Analysis",
			CleanText: "breach analysis published",
			Terms:     []string{"breach", "threat intelligence"},
			TermCount: 2,
			Tier:      model.TierResearch,
			TopicID:   1,
			TopicProb: 0.42,
		},
	}
	if err := s.SaveDocuments(ctx, second); err != nil {
		t.Fatalf("SaveDocuments failed: %v", err)
	}

	docs, err := s.LoadDocuments(ctx)
	if err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Expected replacement to leave 1 document, got %d", len(docs))
	}
	if !reflect.DeepEqual(docs[0], second[0]) {
		t.Errorf("Document not round-tripped:\nwant %+v\ngot  %+v", second[0], docs[0])
	}
}

func TestSQLiteStore_Stats(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_ = s.SaveRecords(ctx, []model.RawRecord{
		{Source: "cisa", URL: "https://example.gov/a"},
		{Source: "cisa", URL: "https://example.gov/b"},
		{Source: "eurepoc"},
	})
	_ = s.SaveDocuments(ctx, []model.Document{{CleanText: "one"}, {CleanText: "two"}})

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Records != 3 || stats.Documents != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.RecordsBySource["cisa"] != 2 || stats.RecordsBySource["eurepoc"] != 1 {
		t.Errorf("Unexpected per-source stats: %v", stats.RecordsBySource)
	}
}
