package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/infra/fetcher"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *QuizRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, _ := logtest.NewNullLogger()
	repo := NewQuizRepository(srv.Client(), srv.URL+"/", fetcher.Config{MaxAttempts: 3, Delay: time.Millisecond}, log)
	repo.Fetcher().WithSleeper(func(ctx context.Context, d time.Duration) error { return nil })
	return repo
}

func TestGetQuestions_RetriesUntilList(t *testing.T) {
	calls := 0
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != QuestionsPath || r.Method != http.MethodGet {
			t.Errorf("неожиданный запрос %s %s", r.Method, r.URL.Path)
		}
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"7","question":"Capital of France?","options":["Paris","Rome"]}]`))
	})

	questions, err := repo.GetQuestions(context.Background())
	if err != nil {
		t.Fatalf("GetQuestions вернул ошибку: %v", err)
	}
	if calls != 2 || len(questions) != 1 || questions[0].ID != "7" {
		t.Errorf("запросов %d, вопросы %+v", calls, questions)
	}
}

func TestGetQuestions_MaxRetries(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := repo.GetQuestions(context.Background())
	if !errors.Is(err, fetcher.ErrMaxRetriesReached) {
		t.Fatalf("ожидалась ErrMaxRetriesReached, получено %v", err)
	}
}

// TestCheckAnswers_SendsExactlySubmittedPairs тело запроса содержит ровно переданные пары.
func TestCheckAnswers_SendsExactlySubmittedPairs(t *testing.T) {
	var got map[string]map[string]string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != CheckAnswersPath || r.Method != http.MethodPost {
			t.Errorf("неожиданный запрос %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("неожиданный Content-Type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("не удалось разобрать тело: %v", err)
		}
		_, _ = w.Write([]byte(`{"results":{"q1":true,"q3":false}}`))
	})

	answers := map[string]string{"q1": "Paris", "q3": "Mars"}
	resp, err := repo.CheckAnswers(context.Background(), model.CheckAnswersRequest{UserAnswers: answers})
	if err != nil {
		t.Fatalf("CheckAnswers вернул ошибку: %v", err)
	}
	if !reflect.DeepEqual(got["userAnswers"], answers) {
		t.Errorf("ожидалось тело %v, получено %v", answers, got)
	}
	if !resp.IsCorrect("q1") || resp.IsCorrect("q3") || resp.IsCorrect("q2") {
		t.Errorf("неожиданные результаты: %v", resp.Results)
	}
}

func TestCheckAnswers_Errors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("not json")) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newTestRepository(t, c.handler)
			_, err := repo.CheckAnswers(context.Background(), model.CheckAnswersRequest{})
			if !errors.Is(err, ErrCheckAnswers) {
				t.Fatalf("ожидалась ErrCheckAnswers, получено %v", err)
			}
		})
	}
}

func TestCheckAnswers_EmptyResults(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	resp, err := repo.CheckAnswers(context.Background(), model.CheckAnswersRequest{})
	if err != nil {
		t.Fatalf("CheckAnswers вернул ошибку: %v", err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("ожидалась пустая карта результатов, получено %v", resp.Results)
	}
}
