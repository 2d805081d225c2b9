package httpext

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Envelope is the standardised response body every API route returns.
// Business-level success or failure is carried by Status, never by the
// HTTP status code alone.
type Envelope struct {
	Status    string      `json:"status,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

const StatusSuccess = "success"

// JsonSuccess writes a success envelope with the given data payload.
func JsonSuccess(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, http.StatusOK, Envelope{
		Status:    StatusSuccess,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// JsonAccepted writes a success envelope with a 202 status, for work that
// continues after the response is sent.
func JsonAccepted(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, http.StatusAccepted, Envelope{
		Status:    StatusSuccess,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// JsonError writes an error envelope with the specified status code.
func JsonError(w http.ResponseWriter, message string, code int) {
	writeEnvelope(w, code, Envelope{Error: message})
}

func writeEnvelope(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("Failed to encode response envelope")
		// Fallback to writing JSON body as plain text if encoding fails
		http.Error(w, "{\"error\":\"Internal Server Error\"}", http.StatusInternalServerError)
	}
}
