package service

import (
	"sync"
	"time"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/pkg/errors"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
)

// Session хранит набор вопросов одной загрузки и выбранные пользователем варианты.
// Новая загрузка создает новую сессию, старая отбрасывается.
type Session struct {
	ID       string
	LoadedAt time.Time

	questions []model.Question
	index     map[string]int

	mu         sync.RWMutex
	selections map[string]string
}

// NewSession создает сессию для загруженного набора вопросов
func NewSession(id string, questions []model.Question) *Session {
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}
	return &Session{
		ID:         id,
		LoadedAt:   time.Now(),
		questions:  questions,
		index:      index,
		selections: make(map[string]string),
	}
}

// Questions возвращает копию списка вопросов в порядке показа
func (s *Session) Questions() []model.Question {
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Question возвращает вопрос по идентификатору
func (s *Session) Question(id string) (model.Question, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Question{}, false
	}
	return s.questions[i], true
}

// QuestionAt возвращает вопрос по порядковому номеру (с нуля)
func (s *Session) QuestionAt(i int) (model.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return model.Question{}, false
	}
	return s.questions[i], true
}

// Len количество вопросов в сессии
func (s *Session) Len() int {
	return len(s.questions)
}

// Select запоминает выбранный вариант. Повторный выбор заменяет предыдущий.
func (s *Session) Select(questionID, option string) error {
	q, ok := s.Question(questionID)
	if !ok {
		return errors.Wrapf(ErrUnknownQuestion, "question %q", questionID)
	}
	if !q.HasOption(option) {
		return errors.Wrapf(ErrUnknownOption, "question %q option %q", questionID, option)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[questionID] = option
	return nil
}

// Clear снимает выбор с вопроса
func (s *Session) Clear(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, questionID)
}

// Selection возвращает выбранный вариант
func (s *Session) Selection(questionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	option, ok := s.selections[questionID]
	return option, ok
}

// Answered количество вопросов с выбранным вариантом
func (s *Session) Answered() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selections)
}

// Submission строит тело запроса на проверку: только вопросы с выбранным вариантом
func (s *Session) Submission() model.CheckAnswersRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answers := make(map[string]string, len(s.selections))
	for id, option := range s.selections {
		answers[id] = option
	}
	return model.CheckAnswersRequest{UserAnswers: answers}
}
