package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/dashboard"
	"github.com/changlade/intelligent-dashboard-demo/pkg/httpext"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
}

func NewDashboardHandler(dashboardService *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService}
}

// HandleConfig serves the embed payload, including a freshly signed token,
// so the frontend can mount the dashboard iframe.
func (h *DashboardHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if !h.dashboard.IsConfigured() {
		httpext.JsonError(w, "Dashboard embedding is not configured", http.StatusServiceUnavailable)
		return
	}

	cfg, err := h.dashboard.EmbedConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dashboard embed config")
		httpext.JsonError(w, "Failed to build embed configuration", http.StatusInternalServerError)
		return
	}
	httpext.JsonSuccess(w, cfg)
}
