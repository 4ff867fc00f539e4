package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response body with the given status code
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
