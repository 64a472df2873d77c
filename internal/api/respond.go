package api

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, error, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            error,
		ErrorDescription: description,
	})
}
