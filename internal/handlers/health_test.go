package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/resultcache"
)

func TestHandleHealth(t *testing.T) {
	handler := NewHealthHandler(resultcache.NewService(nil))

	rec := httptest.NewRecorder()
	handler.HandleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected status: %s", body["status"])
	}
}

func TestHandleCacheHealth(t *testing.T) {
	handler := NewHealthHandler(resultcache.NewService(nil))

	rec := httptest.NewRecorder()
	handler.HandleCacheHealth(rec, httptest.NewRequest("GET", "/health/cache", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["cache_backend"] != "memory" {
		t.Errorf("expected the memory backend without redis, got %s", body["cache_backend"])
	}
}
