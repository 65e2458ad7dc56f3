package dto

import "time"

// SessionSummary краткие сведения о текущей викторине
type SessionSummary struct {
	ID        string    `json:"id"`
	LoadedAt  time.Time `json:"loadedAt"`
	Questions int       `json:"questions"`
	Answered  int       `json:"answered"`
	Submitted bool      `json:"submitted"`
	Correct   int       `json:"correct,omitempty"`
}

// BreakerStatus состояние предохранителя исходящих запросов
type BreakerStatus struct {
	State                string `json:"state"`
	Requests             uint32 `json:"requests"`
	TotalSuccesses       uint32 `json:"totalSuccesses"`
	TotalFailures        uint32 `json:"totalFailures"`
	ConsecutiveSuccesses uint32 `json:"consecutiveSuccesses"`
	ConsecutiveFailures  uint32 `json:"consecutiveFailures"`
}

// StatusResponse ответ GET /v1/status
type StatusResponse struct {
	BaseURL string          `json:"baseUrl"`
	Breaker BreakerStatus   `json:"breaker"`
	Session *SessionSummary `json:"session"`
}
