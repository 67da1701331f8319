package middleware

import (
	"net/http"
	"testing"

	"fairway/config"
)

func TestRateLimitUsesConfiguredBudget(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 3
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	handler := RateLimitMiddleware()

	// Fresh IP so this test owns its limiter.
	for i := 0; i < 3; i++ {
		c := requestContext(t, "203.0.113.50:1000", nil)
		handler(c)
		if c.IsAborted() {
			t.Fatalf("request %d within budget was aborted", i+1)
		}
	}

	c := requestContext(t, "203.0.113.50:1000", nil)
	handler(c)
	if !c.IsAborted() {
		t.Fatal("request over budget was not aborted")
	}
	if c.Writer.Status() != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", c.Writer.Status(), http.StatusTooManyRequests)
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 1
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	handler := RateLimitMiddleware()

	c := requestContext(t, "203.0.113.60:1000", nil)
	handler(c)
	if c.IsAborted() {
		t.Fatal("first request was aborted")
	}

	c = requestContext(t, "203.0.113.60:1000", nil)
	handler(c)
	if !c.IsAborted() {
		t.Fatal("expected second request from the same IP to be limited")
	}

	// A different client is unaffected.
	c = requestContext(t, "203.0.113.61:1000", nil)
	handler(c)
	if c.IsAborted() {
		t.Fatal("request from a different IP was aborted")
	}
}
