package worker

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces per-host request rates so concurrent fetches stay
// polite to every origin. Hosts are case-insensitive and port-blind:
// Example.COM:443 and example.com share one bucket.
type Limiter struct {
	mu        sync.Mutex
	buckets   map[string]*rate.Limiter
	limit     rate.Limit
	burst     int
	overrides map[string]rate.Limit
}

// NewLimiter creates a limiter with a default requests-per-second rate
// and optional per-host overrides keyed by hostname. Non-positive
// override rates are ignored.
func NewLimiter(requestsPerSecond float64, burst int, overrides map[string]float64) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst < 1 {
		burst = 1
	}

	l := &Limiter{
		buckets:   make(map[string]*rate.Limiter),
		limit:     rate.Limit(requestsPerSecond),
		burst:     burst,
		overrides: make(map[string]rate.Limit, len(overrides)),
	}
	for host, rps := range overrides {
		if rps > 0 {
			l.overrides[normalizeHost(host)] = rate.Limit(rps)
		}
	}
	return l
}

// Wait blocks until the URL's host grants a token or the context ends.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	return l.bucket(host).Wait(ctx)
}

// WaitWithDelay waits for rate clearance plus a fixed extra delay,
// typically a robots.txt crawl-delay.
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, extra time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if extra <= 0 {
		return nil
	}

	timer := time.NewTimer(extra)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// bucket returns the host's token bucket, creating it on first use with
// the override rate when one is configured.
func (l *Limiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bucket, ok := l.buckets[host]; ok {
		return bucket
	}

	limit := l.limit
	if override, ok := l.overrides[host]; ok {
		limit = override
	}
	bucket := rate.NewLimiter(limit, l.burst)
	l.buckets[host] = bucket
	return bucket
}

// hostOf extracts the normalized host from a URL.
func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	return normalizeHost(parsed.Host), nil
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}
