package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

// WriteSuccess wraps data in the standard {success, message, data} envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// DecodeBody decodes a JSON request body into dst.
func DecodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
