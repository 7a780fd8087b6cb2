package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is one candidate article link found on an index page
type Link struct {
	URL        string
	Text       string
	IsSameHost bool
}

// LinkExtractor collects article links from index pages
type LinkExtractor struct{}

// NewLinkExtractor creates a new link extractor
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Extract returns deduplicated absolute links from the page. When pathPrefix
// is non-empty, only same-host links whose path starts with the prefix are
// kept - that is how index sources narrow a listing page down to articles.
func (e *LinkExtractor) Extract(htmlContent, sourceURL, pathPrefix string) ([]Link, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(sourceURL)
	if err != nil {
		return nil, err
	}

	var links []Link
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := ""
			text := ""

			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = strings.TrimSpace(attr.Val)
				}
			}

			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				text = strings.TrimSpace(n.FirstChild.Data)
			}

			if href != "" {
				if resolved := resolveURL(baseURL, href); resolved != "" {
					parsed, _ := url.Parse(resolved)
					sameHost := parsed != nil && parsed.Host == baseURL.Host

					if pathPrefix == "" || (sameHost && parsed != nil && strings.HasPrefix(parsed.Path, pathPrefix)) {
						links = append(links, Link{
							URL:        resolved,
							Text:       text,
							IsSameHost: sameHost,
						})
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return dedupeLinks(links), nil
}

// resolveURL resolves a relative URL against a base URL
func resolveURL(base *url.URL, href string) string {
	// Skip anchors
	if strings.HasPrefix(href, "#") {
		return ""
	}

	// Skip javascript: and mailto: links
	if strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)

	// Only keep http/https URLs
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}

// dedupeLinks removes duplicate links by URL, keeping the first occurrence
func dedupeLinks(links []Link) []Link {
	seen := make(map[string]bool)
	var unique []Link

	for _, l := range links {
		if !seen[l.URL] {
			seen[l.URL] = true
			unique = append(unique, l)
		}
	}

	return unique
}
