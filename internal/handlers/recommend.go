package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/recommend"
	"github.com/changlade/intelligent-dashboard-demo/pkg/httpext"
)

type RecommendHandler struct {
	recommend *recommend.Service
}

func NewRecommendHandler(recommendService *recommend.Service) *RecommendHandler {
	return &RecommendHandler{recommend: recommendService}
}

// HandleGenerate analyses the submitted POS locations and returns strategic
// recommendations. An empty body is analysed as zero locations rather than
// rejected, matching how the frontend calls it on first load.
func (h *RecommendHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var locations []recommend.POSLocation
	if err := json.NewDecoder(r.Body).Decode(&locations); err != nil && !errors.Is(err, io.EOF) {
		httpext.JsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report := h.recommend.Generate(r.Context(), locations)
	httpext.JsonSuccess(w, report)
}
