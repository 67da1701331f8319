package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func requestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIPDirectPeer(t *testing.T) {
	c := requestContext(t, "203.0.113.7:4312", nil)
	if got := getClientIP(c); got != "203.0.113.7" {
		t.Fatalf("getClientIP = %q, want 203.0.113.7", got)
	}
}

func TestGetClientIPIgnoresSpoofedHeader(t *testing.T) {
	// A public peer setting X-Forwarded-For itself must not be able to
	// pick its own limiter key.
	c := requestContext(t, "203.0.113.7:4312", map[string]string{
		"X-Forwarded-For": "198.51.100.9",
	})
	if got := getClientIP(c); got != "203.0.113.7" {
		t.Fatalf("getClientIP = %q, want the direct peer 203.0.113.7", got)
	}
}

func TestGetClientIPBehindTrustedProxy(t *testing.T) {
	c := requestContext(t, "10.0.0.5:4312", map[string]string{
		"X-Forwarded-For": "198.51.100.9, 10.0.0.5",
	})
	if got := getClientIP(c); got != "198.51.100.9" {
		t.Fatalf("getClientIP = %q, want forwarded client 198.51.100.9", got)
	}

	c = requestContext(t, "127.0.0.1:4312", map[string]string{
		"X-Real-IP": "198.51.100.10",
	})
	if got := getClientIP(c); got != "198.51.100.10" {
		t.Fatalf("getClientIP = %q, want X-Real-IP client 198.51.100.10", got)
	}
}

func TestGetClientIPProxyWithoutHeaders(t *testing.T) {
	c := requestContext(t, "10.0.0.5:4312", nil)
	if got := getClientIP(c); got != "10.0.0.5" {
		t.Fatalf("getClientIP = %q, want 10.0.0.5", got)
	}
}
