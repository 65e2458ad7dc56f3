package select_option_handler

import (
	"fmt"

	"github.com/IT-Nick/trivia/internal/app/controller"
	"github.com/IT-Nick/trivia/internal/app/surface"
	telegramSurface "github.com/IT-Nick/trivia/internal/app/surface/telegram"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// StaleQuizText ответ на кнопку из уже замененной викторины
const StaleQuizText = "This quiz is no longer active. Send /start to get a new one."

// SelectOptionHandler записывает выбранный вариант ответа
type SelectOptionHandler struct {
	controller *controller.Controller
	log        logrus.FieldLogger
}

// NewSelectOptionHandler возвращает структуру обработчика
func NewSelectOptionHandler(controller *controller.Controller, log logrus.FieldLogger) *SelectOptionHandler {
	return &SelectOptionHandler{
		controller: controller,
		log:        log,
	}
}

func (h *SelectOptionHandler) Handle(c telebot.Context) error {
	data, err := telegramSurface.ParseOptionData(c.Callback().Data)
	if err != nil {
		h.log.WithError(err).Warn("failed to parse option button")
		return c.Respond(&telebot.CallbackResponse{Text: "Unknown option."})
	}

	session, err := h.controller.Session()
	if err != nil || telegramSurface.SessionTag(session.ID) != data.SessionTag {
		return c.Respond(&telebot.CallbackResponse{Text: StaleQuizText, ShowAlert: true})
	}

	q, ok := session.QuestionAt(data.QuestionIndex)
	if !ok || data.OptionIndex < 0 || data.OptionIndex >= len(q.Options) {
		return c.Respond(&telebot.CallbackResponse{Text: "Unknown option."})
	}
	option := q.Options[data.OptionIndex]

	if err := session.Select(q.ID, option); err != nil {
		return fmt.Errorf("failed to select option: %w", err)
	}

	// Отмечаем выбранный вариант на клавиатуре
	markup := telegramSurface.QuestionMarkup(session.ID, data.QuestionIndex, q, option)
	if err := c.Edit(markup); err != nil {
		h.log.WithError(err).Debug("failed to update question keyboard")
	}

	return c.Respond(&telebot.CallbackResponse{
		Text: fmt.Sprintf("Selected %s: %s", surface.OptionLabel(data.OptionIndex), surface.Display(option)),
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *SelectOptionHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
