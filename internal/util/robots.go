// Package util holds the small shared pieces of the collection pipeline:
// robots.txt checks and proxy selection.
package util

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsTTL is how long a parsed robots.txt stays cached per host.
// Failures cache too, so an unreachable host is not re-probed for every
// article URL.
const robotsTTL = time.Hour

// RobotsChecker answers robots.txt questions for article URLs, caching
// the parsed file per host.
type RobotsChecker struct {
	mu        sync.Mutex
	entries   map[string]robotsEntry
	client    *http.Client
	userAgent string
	ttl       time.Duration
}

type robotsEntry struct {
	data    *robotstxt.RobotsData // nil when the fetch or parse failed
	fetched time.Time
}

// NewRobotsChecker creates a checker that identifies itself with
// userAgent when fetching robots.txt files.
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		entries:   make(map[string]robotsEntry),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		ttl:       robotsTTL,
	}
}

// Allowed reports whether the URL may be fetched. An unreachable or
// unparseable robots.txt counts as permission: absence of rules is not
// a prohibition.
func (r *RobotsChecker) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}

	data := r.robotsFor(ctx, parsed)
	if data == nil {
		return true
	}
	return data.TestAgent(parsed.Path, r.userAgent)
}

// CrawlDelay returns the crawl-delay advertised for the URL's host, zero
// when none is cached. It never fetches; Allowed warms the cache during
// normal collection.
func (r *RobotsChecker) CrawlDelay(rawURL string) time.Duration {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return 0
	}

	r.mu.Lock()
	entry, ok := r.entries[hostKey(parsed)]
	r.mu.Unlock()
	if !ok || entry.data == nil {
		return 0
	}

	if group := entry.data.FindGroup(r.userAgent); group != nil {
		return group.CrawlDelay
	}
	return 0
}

// robotsFor returns the host's parsed robots.txt, fetching when the
// cached copy is missing or older than the TTL.
func (r *RobotsChecker) robotsFor(ctx context.Context, parsed *url.URL) *robotstxt.RobotsData {
	key := hostKey(parsed)

	r.mu.Lock()
	entry, ok := r.entries[key]
	r.mu.Unlock()
	if ok && time.Since(entry.fetched) < r.ttl {
		return entry.data
	}

	data := r.fetch(ctx, parsed)
	r.mu.Lock()
	r.entries[key] = robotsEntry{data: data, fetched: time.Now()}
	r.mu.Unlock()
	return data
}

// fetch downloads and parses the host's robots.txt, nil on any failure.
// The robotstxt library maps status codes itself: 4xx allows everything,
// 5xx disallows everything.
func (r *RobotsChecker) fetch(ctx context.Context, parsed *url.URL) *robotstxt.RobotsData {
	robotsURL := parsed.Scheme + "://" + parsed.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}

func hostKey(parsed *url.URL) string {
	return strings.ToLower(parsed.Host)
}
