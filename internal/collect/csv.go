package collect

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// Column fallbacks for local CSV ingest. EuRepoC exports rename columns
// between releases, so several candidate names are probed in order.
var (
	csvTextColumns  = []string{"content_text", "description", "text", "summary"}
	csvTitleColumns = []string{"title", "name"}
	csvURLColumns   = []string{"url", "sources_url"}
	csvDateColumns  = []string{"date", "start_date"}
)

// ReadCSVRecords loads one record per row from a local CSV export. Rows
// without any populated text column become failure records.
func ReadCSVRecords(path, source string, tier model.SourceTier) ([]model.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged exports happen

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	pick := func(row []string, candidates []string) string {
		for _, name := range candidates {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				continue
			}
			if value := strings.TrimSpace(row[idx]); value != "" {
				return value
			}
		}
		return ""
	}

	var records []model.RawRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		record := model.RawRecord{
			Source:      source,
			URL:         pick(row, csvURLColumns),
			Title:       pick(row, csvTitleColumns),
			Text:        pick(row, csvTextColumns),
			Published:   pick(row, csvDateColumns),
			Tier:        tier,
			CollectedAt: time.Now().UTC(),
		}
		if record.Title == "" {
			record.Title = "No Title"
		}
		if record.Text == "" {
			record.Error = "no text column populated"
		} else {
			record.ExtractionSuccess = true
		}
		records = append(records, record)
	}

	return records, nil
}

// FindLocalDataset returns the newest CSV under dir whose name contains
// match (case-insensitive). Supports the drop-the-export-in-data/raw
// workflow without pinning an exact filename.
func FindLocalDataset(dir, match string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read data dir: %w", err)
	}

	lower := strings.ToLower(match)
	var (
		newest    string
		newestMod time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.Contains(name, lower) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = entry.Name()
			newestMod = info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no %s dataset found in %s (expected a CSV export)", match, dir)
	}
	return filepath.Join(dir, newest), nil
}
