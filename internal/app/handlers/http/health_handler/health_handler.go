package health_handler

import (
	"encoding/json"
	"net/http"
)

// HealthHandler отвечает, что сервер жив
type HealthHandler struct{}

// NewHealthHandler создает новый экземпляр обработчика
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP метод для обработки запроса
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server healthy"})
}
