package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func limiterWithProxies(proxies ...string) *IPRateLimiter {
	return &IPRateLimiter{trustedCIDR: proxies}
}

func requestFrom(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestClientIP_DirectConnection(t *testing.T) {
	l := limiterWithProxies()
	if ip := l.clientIP(requestFrom("203.0.113.5:54321", nil)); ip != "203.0.113.5" {
		t.Fatalf("expected the remote host, got %s", ip)
	}
}

func TestClientIP_TrustedProxyHonorsForwardedFor(t *testing.T) {
	l := limiterWithProxies("198.51.100.10")
	req := requestFrom("198.51.100.10:443", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 198.51.100.10",
	})
	if ip := l.clientIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected the first forwarded address, got %s", ip)
	}
}

func TestClientIP_TrustedCIDRHonorsRealIP(t *testing.T) {
	l := limiterWithProxies("10.0.0.0/8")
	req := requestFrom("10.1.2.3:443", map[string]string{"X-Real-IP": "203.0.113.9"})
	if ip := l.clientIP(req); ip != "203.0.113.9" {
		t.Fatalf("expected X-Real-IP through trusted CIDR, got %s", ip)
	}
}

func TestClientIP_UntrustedProxyCannotSpoof(t *testing.T) {
	l := limiterWithProxies("198.51.100.10")
	req := requestFrom("198.51.100.11:443", map[string]string{
		"X-Forwarded-For": "203.0.113.8, 198.51.100.11",
	})
	if ip := l.clientIP(req); ip != "198.51.100.11" {
		t.Fatalf("forwarding headers from an untrusted peer must be ignored, got %s", ip)
	}
}

func TestIPRateLimiter_BlocksOverLimit(t *testing.T) {
	limiter := NewIPRateLimiter(2, time.Minute)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "http://example.local/", nil)
		req.RemoteAddr = "203.0.113.9:1000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "203.0.113.9:1000"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestIPRateLimiter_SeparateIPs(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"203.0.113.1:1", "203.0.113.2:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "http://example.local/", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("independent IPs must not share counters, got %d for %s", rec.Code, addr)
		}
	}
}
