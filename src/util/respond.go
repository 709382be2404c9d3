package util

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Fail writes the error envelope shared by every failure response.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// FailWithError is Fail with the underlying error exposed in the body.
func FailWithError(w http.ResponseWriter, status int, message string, err error) {
	WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}
