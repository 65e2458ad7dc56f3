package fetcher

import (
	"github.com/pkg/errors"
)

var (
	ErrMaxRetriesReached = errors.New("max retries reached")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedBody     = errors.New("malformed response body")
	ErrNoQuestions       = errors.New("no questions returned")
)

// retryError терминальная ошибка цикла попыток. Оборачивает и ErrMaxRetriesReached,
// и причину последней неудачной попытки.
type retryError struct {
	attempts int
	cause    error
}

var _ error = (*retryError)(nil)

func newRetryError(attempts int, cause error) error {
	return &retryError{attempts: attempts, cause: cause}
}

func (err *retryError) Error() string {
	if err == nil {
		return "(*retryError)(nil)"
	}
	message := ErrMaxRetriesReached.Error()
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *retryError) Unwrap() []error {
	if err.cause == nil {
		return []error{ErrMaxRetriesReached}
	}
	return []error{ErrMaxRetriesReached, err.cause}
}

// Attempts возвращает число выполненных попыток
func (err *retryError) Attempts() int {
	return err.attempts
}
