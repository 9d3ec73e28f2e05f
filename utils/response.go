package utils

import (
	"encoding/json"
	"net/http"

	"habita/errs"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError writes a structured error payload. Taxonomy errors keep
// their kind; anything else becomes an opaque 500.
func RespondWithError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	if e, ok := errs.As(err); ok {
		RespondWithJSON(w, status, map[string]string{
			"error": e.Message,
			"kind":  string(e.Kind),
		})
		return
	}
	RespondWithJSON(w, status, map[string]string{"error": "internal server error"})
}

func RespondWithMessage(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

type M map[string]interface{}
