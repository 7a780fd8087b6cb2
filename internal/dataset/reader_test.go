package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dat.atepc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestReadSentences_BlankLineBlocks(t *testing.T) {
	path := writeFixture(t, "the O 0\nfirewall B-ASP 1\nheld O 0\n\nbreach B-ASP -1\ncontained O 0\n\n")

	sentences, err := ReadSentences(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"the firewall held", "breach contained"}
	if len(sentences) != len(want) {
		t.Fatalf("Expected %d sentences, got %d", len(want), len(sentences))
	}
	for i := range want {
		if sentences[i] != want[i] {
			t.Errorf("Expected sentence %d to be %q, got %q", i, want[i], sentences[i])
		}
	}
}

func TestReadSentences_TrailingBlockWithoutBlankLine(t *testing.T) {
	path := writeFixture(t, "a O 0\nb O 0")

	sentences, err := ReadSentences(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sentences) != 1 || sentences[0] != "a b" {
		t.Errorf("Expected trailing block [a b], got %v", sentences)
	}
}

func TestReadSentences_ToleratesShortLines(t *testing.T) {
	path := writeFixture(t, "lonely\n\ntoken O\n\n")

	sentences, err := ReadSentences(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"lonely", "token"}
	if len(sentences) != 2 || sentences[0] != want[0] || sentences[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, sentences)
	}
}

func TestReadSentences_MissingFile(t *testing.T) {
	if _, err := ReadSentences(filepath.Join(t.TempDir(), "absent.dat.atepc")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestReadTagged_ParsesColumns(t *testing.T) {
	path := writeFixture(t, "the O 0\nfirewall B-ASP 1\n\nserver B-ASP -1\n")

	sentences, err := ReadTagged(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sentences))
	}

	first := sentences[0]
	if first.Text() != "the firewall" {
		t.Errorf("Expected text 'the firewall', got %q", first.Text())
	}
	if first.Tags[1] != "B-ASP" || first.Labels[1] != "1" {
		t.Errorf("Expected firewall tagged B-ASP/1, got %s/%s", first.Tags[1], first.Labels[1])
	}
	if len(first.Tokens) != len(first.Tags) || len(first.Tokens) != len(first.Labels) {
		t.Error("Expected parallel columns")
	}
}

func TestReadTagged_RejectsMalformedLine(t *testing.T) {
	path := writeFixture(t, "the O 0\nfirewall B-ASP\n")

	if _, err := ReadTagged(path); err == nil {
		t.Error("Expected error for malformed line, got nil")
	}
}

func TestReadTagged_ValidatesBuiltDataset(t *testing.T) {
	cfg := buildConfig(t)
	if _, err := NewBuilder(cfg).Build(goodTexts(10)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	validTags := map[string]bool{"O": true, "B-ASP": true, "I-ASP": true}
	validLabels := map[string]bool{"-1": true, "0": true, "1": true}

	for _, name := range []string{"train", "valid", "test"} {
		sentences, err := ReadTagged(filepath.Join(cfg.OutputDir, name+".dat.atepc"))
		if err != nil {
			t.Fatalf("Expected to parse %s split, got %v", name, err)
		}
		for _, s := range sentences {
			for i := range s.Tokens {
				if !validTags[s.Tags[i]] {
					t.Errorf("Expected valid tag, got %q", s.Tags[i])
				}
				if !validLabels[s.Labels[i]] {
					t.Errorf("Expected valid label, got %q", s.Labels[i])
				}
			}
		}
	}
}
