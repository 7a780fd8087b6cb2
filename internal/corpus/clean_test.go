package corpus

import (
	"reflect"
	"testing"
)

func TestCleanText_NormalizesAndDropsStopWords(t *testing.T) {
	got := CleanText("The zero-day exploit, and THE firewall!")
	want := "zero-day exploit firewall"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCleanText_PunctuationBecomesSpace(t *testing.T) {
	got := CleanText("breach;malware")
	if got != "breach malware" {
		t.Errorf("Expected punctuation to split words, got %q", got)
	}
}

func TestCleanText_KeepsHyphensAndPeriods(t *testing.T) {
	got := CleanText("CVE-2024-1234 affects v1.2.")
	want := "cve-2024-1234 affects v1.2."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCleanText_Empty(t *testing.T) {
	if got := CleanText(""); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
	if got := CleanText("   "); got != "" {
		t.Errorf("Expected empty result for whitespace, got %q", got)
	}
	if got := CleanText("the and of"); got != "" {
		t.Errorf("Expected empty result for stop words only, got %q", got)
	}
}

func TestCyberTerms_CatalogOrder(t *testing.T) {
	// "patch" precedes "intrusion detection" in the text but follows it in
	// the catalog
	got := CyberTerms("patch management requires intrusion detection")
	want := []string{"intrusion detection", "patch"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCyberTerms_SubstringMatch(t *testing.T) {
	got := CyberTerms("patched systems resist attack")
	if len(got) != 1 || got[0] != "patch" {
		t.Errorf("Expected substring match on patch, got %v", got)
	}
}

func TestCyberTerms_NoMatches(t *testing.T) {
	if got := CyberTerms("sunny weather all week"); len(got) != 0 {
		t.Errorf("Expected no terms, got %v", got)
	}
}
