package collect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/cyberabsa/internal/model"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	if len(sources) != 3 {
		t.Fatalf("Expected 3 default sources, got %d", len(sources))
	}

	cisa := sources[0]
	if cisa.Name != "CISA" || cisa.Kind != KindURLs {
		t.Errorf("Unexpected first source: %+v", cisa)
	}
	if len(cisa.URLs) != 5 || cisa.Limit != 5 {
		t.Errorf("Expected 5 CISA URLs with limit 5, got %d/%d", len(cisa.URLs), cisa.Limit)
	}
	if cisa.Tier != model.TierGovernment {
		t.Errorf("Expected government tier for CISA, got %s", cisa.Tier)
	}

	csis := sources[1]
	if len(csis.URLs) != 10 || csis.Limit != 8 {
		t.Errorf("Expected 10 CSIS URLs with limit 8, got %d/%d", len(csis.URLs), csis.Limit)
	}
	if csis.Tier != model.TierResearch {
		t.Errorf("Expected research tier for CSIS, got %s", csis.Tier)
	}

	eurepoc := sources[2]
	if eurepoc.Kind != KindCSV || eurepoc.Path == "" {
		t.Errorf("Expected CSV source with a path, got %+v", eurepoc)
	}
}

func TestLoadURLFile(t *testing.T) {
	content := `http://example.com
# comment
https://google.com

http://bing.com   `

	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadURLFile(path)
	if err != nil {
		t.Fatalf("LoadURLFile failed: %v", err)
	}

	expected := []string{"http://example.com", "https://google.com", "http://bing.com"}
	if len(urls) != len(expected) {
		t.Fatalf("expected %d URLs, got %d", len(expected), len(urls))
	}
	for i, url := range urls {
		if url != expected[i] {
			t.Errorf("expected URL %s at index %d, got %s", expected[i], i, url)
		}
	}
}

func TestLoadURLFile_Deduplication(t *testing.T) {
	content := "http://example.com\nhttp://example.com\n"
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadURLFile(path)
	if err != nil {
		t.Fatalf("LoadURLFile failed: %v", err)
	}
	if len(urls) != 1 {
		t.Errorf("expected 1 URL after deduplication, got %d", len(urls))
	}
}

func TestLoadURLFile_NonExistent(t *testing.T) {
	_, err := LoadURLFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestLimitURLs(t *testing.T) {
	urls := []string{"a", "b", "c"}
	if got := limitURLs(urls, 2); len(got) != 2 {
		t.Errorf("expected 2 URLs, got %d", len(got))
	}
	if got := limitURLs(urls, 0); len(got) != 3 {
		t.Errorf("expected all URLs for limit 0, got %d", len(got))
	}
	if got := limitURLs(urls, 10); len(got) != 3 {
		t.Errorf("expected all URLs for oversize limit, got %d", len(got))
	}
}
