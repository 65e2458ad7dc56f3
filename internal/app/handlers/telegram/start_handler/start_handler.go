package start_handler

import (
	"context"

	"github.com/IT-Nick/trivia/internal/app/controller"
	"github.com/IT-Nick/trivia/internal/app/surface"
	telegramSurface "github.com/IT-Nick/trivia/internal/app/surface/telegram"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	controller *controller.Controller
	log        logrus.FieldLogger
	newSurface func(c telebot.Context, log logrus.FieldLogger) surface.Surface
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(controller *controller.Controller, log logrus.FieldLogger) *StartHandler {
	return &StartHandler{
		controller: controller,
		log:        log,
		newSurface: telegramSurface.ForContext,
	}
}

// Handle загружает новую викторину в чат. Предыдущая викторина заменяется.
func (h *StartHandler) Handle(c telebot.Context) error {
	s := h.newSurface(c, h.log)

	session, err := h.controller.Load(context.Background(), s)
	if session == nil {
		// ошибка загрузки уже показана в чате и записана в лог
		return nil
	}
	return err
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
