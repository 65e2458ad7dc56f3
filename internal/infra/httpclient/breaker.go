package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

// BreakerSettings параметры автомата защиты
type BreakerSettings struct {
	Name                string
	MaxRequests         uint32        // сколько запросов пропускать в half-open
	Interval            time.Duration // период сброса счетчиков в closed
	Timeout             time.Duration // время в open до перехода в half-open
	ConsecutiveFailures uint32        // порог подряд идущих ошибок
}

// serverError ответ 5xx: автомат считает его неудачей, но вызывающий получает сам ответ
type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: %d", e.status)
}

// Breaker оборачивает Doer в gobreaker
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	next Doer
}

// NewBreaker создает обёртку с автоматом защиты
func NewBreaker(next Doer, s BreakerSettings) *Breaker {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	threshold := s.ConsecutiveFailures

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
	return &Breaker{cb: cb, next: next}
}

// Do выполняет запрос внутри автомата. В open возвращает gobreaker.ErrOpenState.
func (b *Breaker) Do(req *http.Request) (*http.Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		resp, err := b.next.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, &serverError{status: resp.StatusCode}
		}
		return resp, nil
	})

	var se *serverError
	if err != nil && !errors.As(err, &se) {
		return nil, err
	}
	resp, _ := result.(*http.Response)
	if resp == nil {
		return nil, errors.New("circuit breaker returned no response")
	}
	return resp, nil
}

// Status возвращает текущее состояние и счетчики автомата
func (b *Breaker) Status() (gobreaker.State, gobreaker.Counts) {
	return b.cb.State(), b.cb.Counts()
}

var _ Doer = (*Breaker)(nil)
