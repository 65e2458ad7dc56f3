package status_handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/trivia/internal/domain/dto"
	httpError "github.com/IT-Nick/trivia/pkg/http"
	"github.com/sony/gobreaker"
)

// BreakerStatus источник состояния предохранителя
type BreakerStatus interface {
	Status() (gobreaker.State, gobreaker.Counts)
}

// SessionSummary источник сведений о текущей викторине
type SessionSummary interface {
	Summary() *dto.SessionSummary
}

// StatusHandler структура для обработчика
type StatusHandler struct {
	baseURL  string
	breaker  BreakerStatus
	sessions SessionSummary
}

// NewStatusHandler создает новый экземпляр обработчика
func NewStatusHandler(baseURL string, breaker BreakerStatus, sessions SessionSummary) *StatusHandler {
	return &StatusHandler{
		baseURL:  baseURL,
		breaker:  breaker,
		sessions: sessions,
	}
}

// ServeHTTP метод для обработки запроса
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, counts := h.breaker.Status()

	response := dto.StatusResponse{
		BaseURL: h.baseURL,
		Breaker: dto.BreakerStatus{
			State:                state.String(),
			Requests:             counts.Requests,
			TotalSuccesses:       counts.TotalSuccesses,
			TotalFailures:        counts.TotalFailures,
			ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
			ConsecutiveFailures:  counts.ConsecutiveFailures,
		},
		Session: h.sessions.Summary(),
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(response); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}
