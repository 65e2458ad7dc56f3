package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 5000 * time.Millisecond
)

// HTTPDoer минимальный HTTP-клиент, которым пользуется Fetcher
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sleeper приостанавливает цикл попыток на d. Возвращает ошибку, если ctx отменён раньше.
type Sleeper func(ctx context.Context, d time.Duration) error

// Config параметры цикла попыток
type Config struct {
	MaxAttempts int
	Delay       time.Duration
}

// Fetcher запрашивает список вопросов и повторяет запрос с фиксированной задержкой
type Fetcher struct {
	doer  HTTPDoer
	url   string
	cfg   Config
	sleep Sleeper
	log   logrus.FieldLogger
}

// NewFetcher создает Fetcher для указанного адреса
func NewFetcher(doer HTTPDoer, url string, cfg Config, log logrus.FieldLogger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Delay < 0 {
		cfg.Delay = DefaultDelay
	}
	return &Fetcher{
		doer:  doer,
		url:   url,
		cfg:   cfg,
		sleep: SleepContext,
		log:   log,
	}
}

// WithSleeper подменяет функцию ожидания между попытками
func (f *Fetcher) WithSleeper(sleep Sleeper) *Fetcher {
	f.sleep = sleep
	return f
}

// FetchQuestions выполняет попытки 1..MaxAttempts последовательно и возвращает
// первый непустой список. После последней неудачи возвращает ErrMaxRetriesReached.
func (f *Fetcher) FetchQuestions(ctx context.Context) ([]model.Question, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		questions, err := f.attempt(ctx)
		if err == nil {
			f.log.WithFields(logrus.Fields{
				"attempt":   attempt,
				"questions": len(questions),
			}).Debug("questions fetched")
			return questions, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		f.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"url":     f.url,
		}).Warnf("attempt %d failed: %s", attempt, err)

		if attempt < f.cfg.MaxAttempts {
			if err := f.sleep(ctx, f.cfg.Delay); err != nil {
				return nil, err
			}
		}
	}
	return nil, newRetryError(f.cfg.MaxAttempts, lastErr)
}

func (f *Fetcher) attempt(ctx context.Context) ([]model.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.doer.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.Wrapf(ErrUnexpectedStatus, "HTTP error %d", resp.StatusCode)
	}

	var questions []model.Question
	if err := json.NewDecoder(resp.Body).Decode(&questions); err != nil {
		return nil, errors.Wrapf(ErrMalformedBody, "decode: %s", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// SleepContext ждёт d или отмены ctx
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
