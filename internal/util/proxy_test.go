package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProxyFunc_ExplicitSettings(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "http://sproxy.internal:3128", "cisa.gov")

	tests := []struct {
		target string
		want   string
	}{
		{"http://example.com/page", "http://proxy.internal:3128"},
		{"https://example.com/page", "http://sproxy.internal:3128"},
		{"https://www.cisa.gov/advisory", ""}, // no_proxy covers subdomains
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.target, nil)
		got, err := proxy(req)
		if err != nil {
			t.Fatalf("proxy(%s) failed: %v", tt.target, err)
		}
		if tt.want == "" {
			if got != nil {
				t.Errorf("proxy(%s) = %v, want direct connection", tt.target, got)
			}
			continue
		}
		if got == nil || got.String() != tt.want {
			t.Errorf("proxy(%s) = %v, want %s", tt.target, got, tt.want)
		}
	}
}

func TestNewProxyFunc_EmptyFallsBackToEnvironment(t *testing.T) {
	proxy := NewProxyFunc("", "", "")
	// Comparing function pointers is not meaningful; just confirm the
	// environment path resolves without error for a plain request.
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if _, err := proxy(req); err != nil {
		t.Fatalf("environment proxy lookup failed: %v", err)
	}
}
