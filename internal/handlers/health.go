package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/resultcache"
)

type HealthHandler struct {
	cache *resultcache.Service
}

func NewHealthHandler(cache *resultcache.Service) *HealthHandler {
	return &HealthHandler{cache: cache}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"app":    "intelligent-dashboard",
	})
}

func (h *HealthHandler) HandleCacheHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":        "healthy",
		"cache_backend": h.cache.Backend(),
	})
}
