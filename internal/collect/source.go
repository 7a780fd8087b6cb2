// Package collect gathers cybersecurity incident text from configured
// sources: fixed advisory URLs, crawlable index pages and local CSV
// exports. Fetches run through a polite pipeline (robots.txt, per-domain
// rate limiting, layered caching) and every URL yields exactly one
// record, failed ones included.
package collect

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// SourceKind selects how a source's documents are located.
type SourceKind string

const (
	// KindURLs fetches a fixed list of article URLs, inline or from a file.
	KindURLs SourceKind = "urls"
	// KindIndex fetches an index page and follows article links under a
	// path prefix.
	KindIndex SourceKind = "index"
	// KindCSV ingests a local CSV export without touching the network.
	KindCSV SourceKind = "csv"
)

// Source describes one place incident text comes from.
type Source struct {
	Name       string           `mapstructure:"name"`
	Kind       SourceKind       `mapstructure:"kind"`
	BaseURL    string           `mapstructure:"base_url"`    // index page for kind "index"
	PathPrefix string           `mapstructure:"path_prefix"` // article link filter for kind "index"
	URLs       []string         `mapstructure:"urls"`        // inline list for kind "urls"
	Path       string           `mapstructure:"path"`        // URL file for "urls", CSV file or directory for "csv"
	Limit      int              `mapstructure:"limit"`       // max documents per run, 0 = all
	Tier       model.SourceTier `mapstructure:"tier"`
}

// DefaultSources returns the built-in collection targets: CISA advisories
// and bulletins, CSIS analysis pieces and a locally downloaded EuRepoC
// incident export.
func DefaultSources() []Source {
	return []Source{
		{
			Name: "CISA",
			Kind: KindURLs,
			URLs: []string{
				"https://www.cisa.gov/news-events/bulletins/sb25-265",
				"https://www.cisa.gov/news-events/cybersecurity-advisories/aa24-131a",
				"https://www.cisa.gov/news-events/alerts/aa23-353a",
				"https://www.cisa.gov/topics/cyber-threats-and-advisories",
				"https://www.cisa.gov/resources-tools/resources/secure-by-design",
			},
			Limit: 5,
			Tier:  model.TierGovernment,
		},
		{
			Name: "CSIS",
			Kind: KindURLs,
			URLs: []string{
				"https://www.csis.org/analysis/why-congress-must-protect-cyber-sharing",
				"https://www.csis.org/analysis/channeling-augustus-agentic-offensive-information-operations",
				"https://www.csis.org/analysis/ensuring-cybersecurity-digital-public-infrastructure",
				"https://www.csis.org/analysis/cybersecurity-implications-ai-adoption",
				"https://www.csis.org/analysis/strategic-competition-cyberspace",
				"https://www.csis.org/analysis/ransomware-resilience-critical-infrastructure",
				"https://www.csis.org/analysis/cyber-deterrence-21st-century",
				"https://www.csis.org/analysis/zero-trust-architecture-implementation",
				"https://www.csis.org/analysis/cyber-threat-intelligence-sharing",
				"https://www.csis.org/analysis/quantum-computing-cybersecurity-implications",
			},
			Limit: 8,
			Tier:  model.TierResearch,
		},
		{
			Name: "EuRepoC",
			Kind: KindCSV,
			Path: "data/raw",
			Tier: model.TierResearch,
		},
	}
}

// LoadURLFile reads URLs from a file, one per line. Blank lines and
// #-comments are skipped, duplicates keep their first occurrence.
func LoadURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan url file: %w", err)
	}

	return urls, nil
}

// limitURLs caps the list per the source's Limit.
func limitURLs(urls []string, limit int) []string {
	if limit > 0 && len(urls) > limit {
		return urls[:limit]
	}
	return urls
}
