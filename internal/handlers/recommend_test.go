package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/recommend"
)

func TestHandleGenerateWithoutCompleter(t *testing.T) {
	handler := NewRecommendHandler(recommend.NewService(nil))

	body := `[{"name":"Hypermarket Paris 1","country":"France","businessType":"Hypermarket","salesVolume":200000}]`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
	handler.HandleGenerate(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Recommendations []map[string]any `json:"recommendations"`
			Summary         string           `json:"summary"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if len(envelope.Data.Recommendations) == 0 {
		t.Error("expected fallback recommendations")
	}
	if !strings.Contains(envelope.Data.Summary, "1 POS locations") {
		t.Errorf("unexpected summary: %s", envelope.Data.Summary)
	}
}

func TestHandleGenerateEmptyBody(t *testing.T) {
	handler := NewRecommendHandler(recommend.NewService(nil))

	rec := httptest.NewRecorder()
	handler.HandleGenerate(rec, httptest.NewRequest("POST", "/api/recommendations", nil))

	if rec.Code != 200 {
		t.Fatalf("an empty body is analysed as zero locations, got %d", rec.Code)
	}
}

func TestHandleGenerateInvalidBody(t *testing.T) {
	handler := NewRecommendHandler(recommend.NewService(nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader("{not json"))
	handler.HandleGenerate(rec, req)

	if rec.Code != 400 {
		t.Errorf("expected 400 for malformed input, got %d", rec.Code)
	}
}
