package submit_handler

import (
	"context"

	"github.com/IT-Nick/trivia/internal/app/controller"
	"github.com/IT-Nick/trivia/internal/app/handlers/telegram/select_option_handler"
	"github.com/IT-Nick/trivia/internal/app/surface"
	telegramSurface "github.com/IT-Nick/trivia/internal/app/surface/telegram"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// SubmitHandler отправляет ответы текущей викторины на проверку
type SubmitHandler struct {
	controller *controller.Controller
	log        logrus.FieldLogger
	newSurface func(c telebot.Context, log logrus.FieldLogger) surface.Surface
}

// NewSubmitHandler возвращает структуру обработчика
func NewSubmitHandler(controller *controller.Controller, log logrus.FieldLogger) *SubmitHandler {
	return &SubmitHandler{
		controller: controller,
		log:        log,
		newSurface: telegramSurface.ForContext,
	}
}

func (h *SubmitHandler) Handle(c telebot.Context) error {
	tag := telegramSurface.ParseSubmitData(c.Callback().Data)

	session, err := h.controller.Session()
	if err != nil || telegramSurface.SessionTag(session.ID) != tag {
		return c.Respond(&telebot.CallbackResponse{Text: select_option_handler.StaleQuizText, ShowAlert: true})
	}

	if err := c.Respond(&telebot.CallbackResponse{Text: "Checking answers..."}); err != nil {
		h.log.WithError(err).Debug("failed to answer callback")
	}

	// ошибка проверки показывается в чате контроллером
	s := h.newSurface(c, h.log)
	_, _ = h.controller.Submit(context.Background(), s)
	return nil
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *SubmitHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
