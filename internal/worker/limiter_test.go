package worker

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestHostOf(t *testing.T) {
	tests := []struct {
		rawURL  string
		want    string
		wantErr bool
	}{
		{"https://Example.COM:8443/path", "example.com", false},
		{"http://www.cisa.gov/news", "www.cisa.gov", false},
		{"relative/path", "", true},
		{"::bad", "", true},
	}
	for _, tt := range tests {
		got, err := hostOf(tt.rawURL)
		if (err != nil) != tt.wantErr {
			t.Errorf("hostOf(%q) error = %v, wantErr %v", tt.rawURL, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("hostOf(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}

func TestLimiter_PerHostOverride(t *testing.T) {
	l := NewLimiter(10, 2, map[string]float64{
		"Slow.example.com": 0.5,
		"ignored.com":      -1,
	})

	if got := l.bucket("slow.example.com").Limit(); got != rate.Limit(0.5) {
		t.Errorf("Override host limit = %v, want 0.5", got)
	}
	if got := l.bucket("fast.example.com").Limit(); got != rate.Limit(10) {
		t.Errorf("Default host limit = %v, want 10", got)
	}
	if got := l.bucket("ignored.com").Limit(); got != rate.Limit(10) {
		t.Errorf("Non-positive override should fall back to default, got %v", got)
	}
}

func TestLimiter_SharedBucketAcrossPortAndCase(t *testing.T) {
	_ = NewLimiter(1, 1, nil)

	for _, rawURL := range []string{
		"http://Example.com/a",
		"https://example.com:8443/b",
	} {
		host, err := hostOf(rawURL)
		if err != nil {
			t.Fatalf("hostOf(%q) failed: %v", rawURL, err)
		}
		if host != "example.com" {
			t.Errorf("hostOf(%q) = %q, want shared bucket key example.com", rawURL, host)
		}
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	l := NewLimiter(100, 1, nil)

	start := time.Now()
	if err := l.WaitWithDelay(context.Background(), "http://example.com", 40*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("Expected at least 40ms of delay, got %v", elapsed)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := NewLimiter(100, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.WaitWithDelay(ctx, "http://example.com", time.Second); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1, nil)
	if err := l.Wait(context.Background(), "no-host-here"); err == nil {
		t.Error("Expected error for URL without host")
	}
}
