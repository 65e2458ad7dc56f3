// Package telegram рисует викторину сообщениями с инлайн-клавиатурами.
package telegram

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/IT-Nick/trivia/internal/app/surface"
	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v4"
)

const (
	// OptionUnique уникальный идентификатор кнопок вариантов
	OptionUnique = "trivia_opt"
	// SubmitUnique уникальный идентификатор кнопки отправки ответов
	SubmitUnique = "trivia_submit"

	// LoadingText текст сообщения-индикатора загрузки
	LoadingText = "⏳ Loading questions..."
	// SelectedMark помечает выбранный вариант на клавиатуре
	SelectedMark = "✅ "

	sessionTagLen = 8
)

// ErrBadCallbackData данные кнопки не разобрать
var ErrBadCallbackData = errors.New("invalid callback data")

// Sender часть API бота, нужная поверхности
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

// Surface поверхность для одного чата
type Surface struct {
	sender  Sender
	chat    tele.Recipient
	log     logrus.FieldLogger
	loading *tele.Message
}

var _ surface.Surface = (*Surface)(nil)

// New создает поверхность для чата
func New(sender Sender, chat tele.Recipient, log logrus.FieldLogger) *Surface {
	return &Surface{
		sender: sender,
		chat:   chat,
		log:    log,
	}
}

// ForContext создает поверхность для чата, из которого пришло обновление
func ForContext(c tele.Context, log logrus.FieldLogger) surface.Surface {
	return New(c.Bot(), c.Chat(), log)
}

// ShowLoading отправляет сообщение-индикатор
func (s *Surface) ShowLoading() {
	msg, err := s.sender.Send(s.chat, LoadingText)
	if err != nil {
		s.log.WithError(err).Warn("failed to send loading message")
		return
	}
	s.loading = msg
}

// HideLoading удаляет сообщение-индикатор, если оно было отправлено
func (s *Surface) HideLoading() {
	if s.loading == nil {
		return
	}
	if err := s.sender.Delete(s.loading); err != nil {
		s.log.WithError(err).Warn("failed to delete loading message")
	}
	s.loading = nil
}

// RenderQuestions отправляет по сообщению на вопрос и сообщение с кнопкой Submit
func (s *Surface) RenderQuestions(session *service.Session) error {
	for i, q := range session.Questions() {
		selected, _ := session.Selection(q.ID)
		_, err := s.sender.Send(s.chat, QuestionText(i+1, q), &tele.SendOptions{
			ParseMode:   tele.ModeHTML,
			ReplyMarkup: QuestionMarkup(session.ID, i, q, selected),
		})
		if err != nil {
			return fmt.Errorf("failed to send question %d: %w", i+1, err)
		}
	}

	if _, err := s.sender.Send(s.chat, "Tap Submit when you are done.", SubmitMarkup(session.ID)); err != nil {
		return fmt.Errorf("failed to send submit button: %w", err)
	}
	return nil
}

func (s *Surface) RenderLoadFailure(err error) error {
	_, serr := s.sender.Send(s.chat, surface.LoadFailureNotice)
	return serr
}

func (s *Surface) RenderResults(session *service.Session, results model.CheckAnswersResponse) error {
	_, err := s.sender.Send(s.chat, strings.Join(surface.ResultLines(session, results), "\n"))
	return err
}

func (s *Surface) RenderSubmitFailure(err error) error {
	_, serr := s.sender.Send(s.chat, surface.SubmitFailureNotice)
	return serr
}

// QuestionText текст сообщения с вопросом в разметке HTML
func QuestionText(n int, q model.Question) string {
	return fmt.Sprintf("❓ <b>Question %d:</b>\n%s", n, html.EscapeString(surface.Display(q.Question)))
}

// QuestionMarkup клавиатура с вариантами, по одному в строке.
// Данные кнопки: метка сессии|номер вопроса|номер варианта.
func QuestionMarkup(sessionID string, questionIndex int, q model.Question, selected string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(q.Options))
	for i, option := range q.Options {
		text := fmt.Sprintf("%s. %s", surface.OptionLabel(i), surface.Display(option))
		if option == selected {
			text = SelectedMark + text
		}
		btn := markup.Data(text, OptionUnique, SessionTag(sessionID), strconv.Itoa(questionIndex), strconv.Itoa(i))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)
	return markup
}

// SubmitMarkup клавиатура с кнопкой отправки ответов
func SubmitMarkup(sessionID string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("Submit", SubmitUnique, SessionTag(sessionID))))
	return markup
}

// SessionTag короткая метка сессии, помещающаяся в данные кнопки
func SessionTag(sessionID string) string {
	if len(sessionID) > sessionTagLen {
		return sessionID[:sessionTagLen]
	}
	return sessionID
}

// OptionData разобранные данные кнопки варианта
type OptionData struct {
	SessionTag    string
	QuestionIndex int
	OptionIndex   int
}

// ParseOptionData разбирает данные кнопки варианта
func ParseOptionData(data string) (OptionData, error) {
	parts := strings.Split(cleanData(data), "|")
	if len(parts) != 3 {
		return OptionData{}, errors.Wrapf(ErrBadCallbackData, "%q", data)
	}

	qi, err := strconv.Atoi(parts[1])
	if err != nil {
		return OptionData{}, errors.Wrapf(ErrBadCallbackData, "question index %q", parts[1])
	}
	oi, err := strconv.Atoi(parts[2])
	if err != nil {
		return OptionData{}, errors.Wrapf(ErrBadCallbackData, "option index %q", parts[2])
	}

	return OptionData{SessionTag: parts[0], QuestionIndex: qi, OptionIndex: oi}, nil
}

// ParseSubmitData возвращает метку сессии из данных кнопки Submit
func ParseSubmitData(data string) string {
	return cleanData(data)
}

// cleanData очищает данные от служебных символов
func cleanData(data string) string {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	return strings.ReplaceAll(cleaned, "\\f", "")
}
