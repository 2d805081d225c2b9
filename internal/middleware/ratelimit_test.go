package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/changlade/intelligent-dashboard-demo/pkg/ratelimit"
)

func TestRateLimitRejectsOverBudget(t *testing.T) {
	limiter := ratelimit.NewLimiter(time.Minute, 2)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/genie/config", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != 200 || codes[1] != 200 {
		t.Errorf("requests within budget must pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 429 over budget, got %v", codes)
	}
}

func TestRateLimitKeysByClient(t *testing.T) {
	limiter := ratelimit.NewLimiter(time.Minute, 1)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest("GET", "/api/genie/config", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != 200 {
		t.Fatalf("first client must pass, got %d", rec.Code)
	}

	second := httptest.NewRequest("GET", "/api/genie/config", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != 200 {
		t.Errorf("a different client has its own budget, got %d", rec.Code)
	}
}
