package http

import (
	"encoding/json"
	"net/http"
)

// Error тело ответа с ошибкой
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse пишет ошибку в формате JSON
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Error{Status: status, Message: message})
}
