package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/IT-Nick/trivia/internal/app/surface"
	"github.com/IT-Nick/trivia/internal/domain/dto"
	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoSession викторина еще не загружена
var ErrNoSession = errors.New("no quiz loaded")

// QuizService загрузка и проверка викторины
type QuizService interface {
	Load(ctx context.Context) (*service.Session, error)
	Submit(ctx context.Context, session *service.Session) (model.CheckAnswersResponse, error)
}

// Controller связывает поверхность отображения с сервисом викторины.
// Одновременно живет одна сессия, новая загрузка заменяет предыдущую.
type Controller struct {
	svc QuizService
	log logrus.FieldLogger

	mu      sync.RWMutex
	session *service.Session
	results *model.CheckAnswersResponse
}

// NewController создает контроллер
func NewController(svc QuizService, log logrus.FieldLogger) *Controller {
	return &Controller{
		svc: svc,
		log: log,
	}
}

// Load загружает новую викторину и показывает ее на поверхности.
// Индикатор загрузки скрывается и при успехе, и при ошибке.
func (c *Controller) Load(ctx context.Context, s surface.Surface) (*service.Session, error) {
	s.ShowLoading()
	session, err := c.svc.Load(ctx)
	s.HideLoading()

	if err != nil {
		c.log.WithError(err).Error("failed to load questions")
		if rerr := s.RenderLoadFailure(err); rerr != nil {
			c.log.WithError(rerr).Warn("failed to render load failure")
		}
		return nil, err
	}

	c.mu.Lock()
	c.session = session
	c.results = nil
	c.mu.Unlock()

	if err := s.RenderQuestions(session); err != nil {
		return session, fmt.Errorf("failed to render questions: %w", err)
	}
	return session, nil
}

// Session текущая сессия
func (c *Controller) Session() (*service.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return nil, ErrNoSession
	}
	return c.session, nil
}

// Select записывает выбор варианта в текущей сессии
func (c *Controller) Select(questionID, option string) error {
	session, err := c.Session()
	if err != nil {
		return err
	}
	return session.Select(questionID, option)
}

// Submit отправляет ответы текущей сессии и показывает результат или ошибку
func (c *Controller) Submit(ctx context.Context, s surface.Surface) (model.CheckAnswersResponse, error) {
	session, err := c.Session()
	if err != nil {
		return model.CheckAnswersResponse{}, err
	}

	results, err := c.svc.Submit(ctx, session)
	if err != nil {
		c.log.WithError(err).WithField("session", session.ID).Error("failed to submit answers")
		if rerr := s.RenderSubmitFailure(err); rerr != nil {
			c.log.WithError(rerr).Warn("failed to render submit failure")
		}
		return model.CheckAnswersResponse{}, err
	}

	c.mu.Lock()
	if c.session == session {
		c.results = &results
	}
	c.mu.Unlock()

	if err := s.RenderResults(session, results); err != nil {
		return results, fmt.Errorf("failed to render results: %w", err)
	}
	return results, nil
}

// Summary сведения о текущей сессии, nil если ее нет
func (c *Controller) Summary() *dto.SessionSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return nil
	}
	summary := &dto.SessionSummary{
		ID:        c.session.ID,
		LoadedAt:  c.session.LoadedAt,
		Questions: c.session.Len(),
		Answered:  c.session.Answered(),
		Submitted: c.results != nil,
	}
	if c.results != nil {
		summary.Correct, _ = service.Score(c.session, *c.results)
	}
	return summary
}
