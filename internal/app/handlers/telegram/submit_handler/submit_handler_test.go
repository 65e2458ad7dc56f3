package submit_handler

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/IT-Nick/trivia/internal/app/controller"
	"github.com/IT-Nick/trivia/internal/app/handlers/telegram/select_option_handler"
	"github.com/IT-Nick/trivia/internal/app/surface"
	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v4"
)

// fakeContext контекст нажатия кнопки Submit
type fakeContext struct {
	telebot.Context
	data      string
	responses []*telebot.CallbackResponse
}

func (c *fakeContext) Callback() *telebot.Callback {
	return &telebot.Callback{Data: c.data}
}

func (c *fakeContext) Respond(resp ...*telebot.CallbackResponse) error {
	c.responses = append(c.responses, resp...)
	return nil
}

type fakeService struct {
	results   model.CheckAnswersResponse
	submitErr error
	submitted []map[string]string
}

func (f *fakeService) Load(context.Context) (*service.Session, error) {
	return service.NewSession("0123456789abcdef", []model.Question{
		{ID: "q1", Options: []string{"x", "y"}},
		{ID: "q2", Options: []string{"x", "y"}},
	}), nil
}

func (f *fakeService) Submit(_ context.Context, session *service.Session) (model.CheckAnswersResponse, error) {
	f.submitted = append(f.submitted, session.Submission().UserAnswers)
	return f.results, f.submitErr
}

// recordingSurface запоминает порядок вызовов
type recordingSurface struct {
	calls []string
}

func (s *recordingSurface) ShowLoading()                           {}
func (s *recordingSurface) HideLoading()                           {}
func (s *recordingSurface) RenderQuestions(*service.Session) error { return nil }
func (s *recordingSurface) RenderLoadFailure(error) error          { return nil }

func (s *recordingSurface) RenderResults(*service.Session, model.CheckAnswersResponse) error {
	s.calls = append(s.calls, "RenderResults")
	return nil
}

func (s *recordingSurface) RenderSubmitFailure(error) error {
	s.calls = append(s.calls, "RenderSubmitFailure")
	return nil
}

func newHandler(t *testing.T, svc *fakeService) (*SubmitHandler, *recordingSurface) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	ctrl := controller.NewController(svc, log)
	s := &recordingSurface{}
	if _, err := ctrl.Load(context.Background(), s); err != nil {
		t.Fatalf("Load вернул ошибку: %v", err)
	}
	if err := ctrl.Select("q2", "y"); err != nil {
		t.Fatalf("Select вернул ошибку: %v", err)
	}

	h := NewSubmitHandler(ctrl, log)
	h.newSurface = func(telebot.Context, logrus.FieldLogger) surface.Surface { return s }
	return h, s
}

func TestHandle_RendersResults(t *testing.T) {
	svc := &fakeService{results: model.CheckAnswersResponse{Results: map[string]bool{"q2": true}}}
	h, s := newHandler(t, svc)
	c := &fakeContext{data: "\f01234567"}

	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle вернул ошибку: %v", err)
	}
	if !reflect.DeepEqual(svc.submitted, []map[string]string{{"q2": "y"}}) {
		t.Errorf("неожиданные отправленные ответы: %v", svc.submitted)
	}
	if !reflect.DeepEqual(s.calls, []string{"RenderResults"}) {
		t.Errorf("ожидался показ результатов, получено %v", s.calls)
	}
	if len(c.responses) != 1 || c.responses[0].ShowAlert {
		t.Errorf("нажатие должно получить обычный ответ, получено %+v", c.responses)
	}
}

func TestHandle_SubmitFailure(t *testing.T) {
	h, s := newHandler(t, &fakeService{submitErr: errors.New("HTTP error 502")})

	if err := h.Handle(&fakeContext{data: "01234567"}); err != nil {
		t.Fatalf("Handle вернул ошибку: %v", err)
	}
	if !reflect.DeepEqual(s.calls, []string{"RenderSubmitFailure"}) {
		t.Errorf("ожидался показ ошибки проверки, получено %v", s.calls)
	}
}

func TestHandle_ReplacedQuiz(t *testing.T) {
	svc := &fakeService{}
	h, s := newHandler(t, svc)
	c := &fakeContext{data: "deadbeef"}

	if err := h.Handle(c); err != nil {
		t.Fatalf("Handle вернул ошибку: %v", err)
	}
	if len(svc.submitted) != 0 || len(s.calls) != 0 {
		t.Errorf("ответы замененной викторины не отправляются")
	}
	if len(c.responses) != 1 || c.responses[0].Text != select_option_handler.StaleQuizText {
		t.Errorf("ожидалось предупреждение о замененной викторине, получено %+v", c.responses)
	}
}
