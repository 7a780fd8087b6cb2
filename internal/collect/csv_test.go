package collect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/cyberabsa/internal/model"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSVRecords_EuRepoCColumns(t *testing.T) {
	content := "ID,name,description,start_date,sources_url\n" +
		"1,Ransomware hits hospital,Attackers encrypted patient records and demanded payment.,2024-03-01,https://example.org/incident-1\n" +
		"2,Unnamed incident,,2024-03-02,\n"
	path := writeCSV(t, t.TempDir(), "eurepoc.csv", content)

	records, err := ReadCSVRecords(path, "EuRepoC", model.TierResearch)
	if err != nil {
		t.Fatalf("ReadCSVRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Ransomware hits hospital" {
		t.Errorf("Expected title from name column, got %q", first.Title)
	}
	if first.Text != "Attackers encrypted patient records and demanded payment." {
		t.Errorf("Expected text from description column, got %q", first.Text)
	}
	if first.Published != "2024-03-01" {
		t.Errorf("Expected date from start_date column, got %q", first.Published)
	}
	if first.URL != "https://example.org/incident-1" {
		t.Errorf("Expected URL from sources_url column, got %q", first.URL)
	}
	if !first.ExtractionSuccess {
		t.Error("Expected first record to be successful")
	}
	if first.Tier != model.TierResearch {
		t.Errorf("Expected research tier, got %s", first.Tier)
	}

	second := records[1]
	if second.ExtractionSuccess {
		t.Error("Expected record without text to be a failure record")
	}
	if second.Error != "no text column populated" {
		t.Errorf("Unexpected error: %q", second.Error)
	}
}

func TestReadCSVRecords_TextColumnPrecedence(t *testing.T) {
	content := "title,content_text,description\n" +
		"Both,full article body,short summary\n" +
		"DescriptionOnly,,fallback summary\n"
	path := writeCSV(t, t.TempDir(), "export.csv", content)

	records, err := ReadCSVRecords(path, "test", model.TierMedia)
	if err != nil {
		t.Fatalf("ReadCSVRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Text != "full article body" {
		t.Errorf("Expected content_text to win, got %q", records[0].Text)
	}
	if records[1].Text != "fallback summary" {
		t.Errorf("Expected description fallback, got %q", records[1].Text)
	}
}

func TestReadCSVRecords_BOMAndCaseInsensitiveHeader(t *testing.T) {
	content := "\uFEFFTitle,Content_Text\nAdvisory,body text here\n"
	path := writeCSV(t, t.TempDir(), "bom.csv", content)

	records, err := ReadCSVRecords(path, "test", model.TierMedia)
	if err != nil {
		t.Fatalf("ReadCSVRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Title != "Advisory" || records[0].Text != "body text here" {
		t.Errorf("BOM or case handling broke column lookup: %+v", records[0])
	}
}

func TestReadCSVRecords_RaggedRow(t *testing.T) {
	content := "title,description,sources_url\nShort row,only description present\n"
	path := writeCSV(t, t.TempDir(), "ragged.csv", content)

	records, err := ReadCSVRecords(path, "test", model.TierMedia)
	if err != nil {
		t.Fatalf("ReadCSVRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Text != "only description present" {
		t.Errorf("Unexpected text: %q", records[0].Text)
	}
	if records[0].URL != "" {
		t.Errorf("Expected empty URL for missing column, got %q", records[0].URL)
	}
}

func TestReadCSVRecords_MissingFile(t *testing.T) {
	_, err := ReadCSVRecords(filepath.Join(t.TempDir(), "missing.csv"), "test", model.TierMedia)
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestFindLocalDataset(t *testing.T) {
	dir := t.TempDir()
	older := writeCSV(t, dir, "eurepoc_2023.csv", "title\n")
	newer := writeCSV(t, dir, "EuRepoC-Global-2024.CSV", "title\n")
	writeCSV(t, dir, "unrelated.csv", "title\n")
	if err := os.WriteFile(filepath.Join(dir, "eurepoc.xlsx"), []byte("not csv"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Make mtimes unambiguous
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	found, err := FindLocalDataset(dir, "eurepoc")
	if err != nil {
		t.Fatalf("FindLocalDataset failed: %v", err)
	}
	if found != newer {
		t.Errorf("Expected newest matching CSV %s, got %s", newer, found)
	}
}

func TestFindLocalDataset_NoMatch(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "other.csv", "title\n")

	_, err := FindLocalDataset(dir, "eurepoc")
	if err == nil {
		t.Error("Expected error when no dataset matches, got nil")
	}
}
