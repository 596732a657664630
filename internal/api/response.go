package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error codes
const (
	ErrCodeInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidParameter   = "INVALID_PARAMETER"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeExternalAPIError   = "EXTERNAL_API_ERROR"
	ErrCodeExternalAPITimeout = "EXTERNAL_API_TIMEOUT"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{
		Code:      code,
		Message:   message,
		RequestID: GetRequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	}})
}
