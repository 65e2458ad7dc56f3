package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/infra/httpclient"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// QuizRepository источник вопросов и проверка ответов
type QuizRepository interface {
	GetQuestions(ctx context.Context) ([]model.Question, error)
	CheckAnswers(ctx context.Context, request model.CheckAnswersRequest) (model.CheckAnswersResponse, error)
}

// QuizService для работы с викториной
type QuizService struct {
	repo           QuizRepository
	shuffleOptions bool
	log            logrus.FieldLogger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuizService создает новый экземпляр QuizService
func NewQuizService(repo QuizRepository, shuffleOptions bool, log logrus.FieldLogger) *QuizService {
	return &QuizService{
		repo:           repo,
		shuffleOptions: shuffleOptions,
		log:            log,
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load загружает новый набор вопросов и создает для него сессию
func (s *QuizService) Load(ctx context.Context) (*Session, error) {
	id := uuid.New().String()
	ctx = httpclient.ContextWithRequestID(ctx, id)

	questions, err := s.repo.GetQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	if s.shuffleOptions {
		questions = s.shuffle(questions)
	}

	s.log.WithFields(logrus.Fields{
		"session":   id,
		"questions": len(questions),
	}).Info("quiz session loaded")

	return NewSession(id, questions), nil
}

// Submit отправляет выбранные варианты сессии на проверку
func (s *QuizService) Submit(ctx context.Context, session *Session) (model.CheckAnswersResponse, error) {
	ctx = httpclient.ContextWithRequestID(ctx, session.ID)

	submission := session.Submission()
	results, err := s.repo.CheckAnswers(ctx, submission)
	if err != nil {
		return model.CheckAnswersResponse{}, fmt.Errorf("failed to check answers: %w", err)
	}

	entry := s.log.WithFields(logrus.Fields{
		"session":  session.ID,
		"answered": len(submission.UserAnswers),
	})
	if results.SessionLost() {
		entry.Warn("trivia service has no questions for this session")
	}
	correct, total := Score(session, results)
	entry.WithField("correct", correct).WithField("total", total).Info("answers checked")

	return results, nil
}

// Score считает количество правильных ответов среди вопросов сессии
func Score(session *Session, results model.CheckAnswersResponse) (correct int, total int) {
	for _, q := range session.Questions() {
		if results.IsCorrect(q.ID) {
			correct++
		}
	}
	return correct, session.Len()
}

// shuffle перемешивает варианты каждого вопроса, не изменяя исходный срез
func (s *QuizService) shuffle(questions []model.Question) []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Question, len(questions))
	for i, q := range questions {
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		s.rnd.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		q.Options = options
		out[i] = q
	}
	return out
}
