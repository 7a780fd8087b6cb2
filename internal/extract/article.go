// Package extract pulls article content and candidate links out of fetched
// HTML pages.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Article is the readable content of one fetched page
type Article struct {
	Title       string
	Text        string
	Author      string
	Published   string
	Description string
	SiteName    string
}

// ArticleExtractor extracts article content and metadata from HTML
type ArticleExtractor struct{}

// NewArticleExtractor creates a new article extractor
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// Extract parses HTML and returns the page title, main text and whatever
// metadata the page declares
func (e *ArticleExtractor) Extract(htmlContent string) (*Article, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	article := &Article{Title: findTitle(doc)}
	collectMeta(doc, article)
	article.Text = extractVisibleText(doc)

	return article, nil
}

// findTitle returns the document title, falling back to the first h1
func findTitle(doc *html.Node) string {
	title := firstText(doc, "title")
	if title == "" {
		title = firstText(doc, "h1")
	}
	return title
}

// firstText returns the trimmed text content of the first element with the
// given tag name
func firstText(doc *html.Node, tag string) string {
	var found string

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			found = strings.TrimSpace(nodeText(n))
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(doc)
	return found
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

// collectMeta fills article metadata from meta tags. The keys follow what
// news and advisory pages commonly declare.
func collectMeta(doc *html.Node, article *Article) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name", "property":
					name = strings.ToLower(attr.Val)
				case "content":
					content = strings.TrimSpace(attr.Val)
				}
			}

			if content != "" {
				switch name {
				case "author":
					if article.Author == "" {
						article.Author = content
					}
				case "description", "og:description":
					if article.Description == "" {
						article.Description = content
					}
				case "og:site_name":
					if article.SiteName == "" {
						article.SiteName = content
					}
				case "article:published_time", "date":
					if article.Published == "" {
						article.Published = content
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// extractVisibleText extracts text nodes from HTML, skipping the head and
// page furniture (scripts, styles, navigation, footers)
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "head", "script", "style", "noscript", "iframe", "nav", "footer", "aside", "form":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
