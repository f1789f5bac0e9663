package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.ClientWrapped[*models.Client]{Response: client}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteAPIError writes a Frontend API style error body:
//
//	{"errors":[{"code":"...","message":"..."}],"clerk_trace_id":"..."}
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message, traceID string) (int, error) {
	body := models.APIErrorBody{
		Errors:       []models.APIErrorItem{{Code: code, Message: message, LongMessage: message}},
		ClerkTraceID: traceID,
	}
	return WriteJSON(w, body, statusCode)
}
