package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/infra/fetcher"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	QuestionsPath    = "/questions"
	CheckAnswersPath = "/checkanswers"
)

// ErrCheckAnswers ошибка проверки ответов на стороне сервиса
var ErrCheckAnswers = errors.New("check answers failed")

// QuizRepository репозиторий вопросов и проверки ответов поверх HTTP API сервиса
type QuizRepository struct {
	doer    fetcher.HTTPDoer
	baseURL string
	fetcher *fetcher.Fetcher
}

// NewQuizRepository создает новый экземпляр QuizRepository
func NewQuizRepository(doer fetcher.HTTPDoer, baseURL string, cfg fetcher.Config, log logrus.FieldLogger) *QuizRepository {
	baseURL = strings.TrimRight(baseURL, "/")
	return &QuizRepository{
		doer:    doer,
		baseURL: baseURL,
		fetcher: fetcher.NewFetcher(doer, baseURL+QuestionsPath, cfg, log),
	}
}

// Fetcher отдает Fetcher репозитория, например чтобы подменить ожидание в тестах
func (r *QuizRepository) Fetcher() *fetcher.Fetcher {
	return r.fetcher
}

// GetQuestions получает набор вопросов с повторами
func (r *QuizRepository) GetQuestions(ctx context.Context) ([]model.Question, error) {
	questions, err := r.fetcher.FetchQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	return questions, nil
}

// CheckAnswers отправляет ответы на проверку. Запрос не повторяется.
func (r *QuizRepository) CheckAnswers(ctx context.Context, request model.CheckAnswersRequest) (model.CheckAnswersResponse, error) {
	if request.UserAnswers == nil {
		request.UserAnswers = map[string]string{}
	}
	body, err := json.Marshal(request)
	if err != nil {
		return model.CheckAnswersResponse{}, fmt.Errorf("failed to encode answers: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+CheckAnswersPath, bytes.NewReader(body))
	if err != nil {
		return model.CheckAnswersResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.doer.Do(req)
	if err != nil {
		return model.CheckAnswersResponse{}, fmt.Errorf("%w: %w", ErrCheckAnswers, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.CheckAnswersResponse{}, errors.Wrapf(ErrCheckAnswers, "HTTP error %d", resp.StatusCode)
	}

	var response model.CheckAnswersResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return model.CheckAnswersResponse{}, errors.Wrapf(ErrCheckAnswers, "decode: %s", err)
	}
	if response.Results == nil {
		response.Results = map[string]bool{}
	}
	return response, nil
}
