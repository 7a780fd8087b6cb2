package collect

import (
	"net/url"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// Built-in host lists for tier classification. Subdomains match too, so
// www.cisa.gov falls under cisa.gov.
var (
	governmentDomains = []string{
		"cisa.gov",
		"us-cert.gov",
		"nist.gov",
		"nsa.gov",
		"fbi.gov",
		"ncsc.gov.uk",
		"enisa.europa.eu",
		"cert.europa.eu",
		"bsi.bund.de",
	}

	researchDomains = []string{
		"csis.org",
		"eurepoc.eu",
		"rand.org",
		"atlanticcouncil.org",
		"carnegieendowment.org",
		"mitre.org",
		"sans.org",
		"first.org",
	}
)

// TierClassifier maps document URLs to source tiers.
type TierClassifier struct {
	overrides  map[string]model.SourceTier
	government map[string]bool
	research   map[string]bool
}

// NewTierClassifier creates a classifier with the built-in domain lists.
// overrides maps exact hosts to tier names ("government", "research",
// "media") and wins over every other rule.
func NewTierClassifier(overrides map[string]string) *TierClassifier {
	classifier := &TierClassifier{
		overrides:  make(map[string]model.SourceTier),
		government: make(map[string]bool),
		research:   make(map[string]bool),
	}

	for host, tier := range overrides {
		classifier.overrides[strings.ToLower(host)] = TierFromString(tier)
	}
	for _, domain := range governmentDomains {
		classifier.government[domain] = true
	}
	for _, domain := range researchDomains {
		classifier.research[domain] = true
	}

	return classifier
}

// Classify returns the tier for a URL host. Hosts matching no list get
// the fallback tier when one is declared, else media.
func (c *TierClassifier) Classify(rawURL string, fallback model.SourceTier) model.SourceTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return orMedia(fallback)
	}

	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if tier, ok := c.overrides[host]; ok {
		return tier
	}

	if matchesDomain(c.government, host) {
		return model.TierGovernment
	}
	if matchesDomain(c.research, host) {
		return model.TierResearch
	}

	// TLD heuristics for hosts not on a list
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return model.TierGovernment
	}
	if strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierResearch
	}

	return orMedia(fallback)
}

// matchesDomain checks an exact host or any subdomain of a listed domain.
func matchesDomain(set map[string]bool, host string) bool {
	if set[host] {
		return true
	}
	for domain := range set {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func orMedia(fallback model.SourceTier) model.SourceTier {
	if fallback != model.TierUnknown {
		return fallback
	}
	return model.TierMedia
}

// TierFromString converts a tier name to a SourceTier.
func TierFromString(tier string) model.SourceTier {
	switch strings.ToLower(tier) {
	case "government", "1":
		return model.TierGovernment
	case "research", "2":
		return model.TierResearch
	case "media", "3":
		return model.TierMedia
	default:
		return model.TierMedia
	}
}
