package surface

import (
	"fmt"
	"html"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
)

const (
	// LoadFailureNotice показывается, когда вопросы так и не удалось загрузить
	LoadFailureNotice = "Failed to load questions. Please try again later."
	// SubmitFailureNotice показывается, когда ответы не удалось проверить
	SubmitFailureNotice = "Failed to check answers. Please try again later."
	// SessionLostNotice показывается, когда сервис не узнал сессию, выдавшую вопросы
	SessionLostNotice = "The trivia service no longer has this quiz. Load a new one."
)

// Surface поверхность отображения викторины.
// Контроллер вызывает ShowLoading перед загрузкой и HideLoading после нее
// независимо от результата.
type Surface interface {
	ShowLoading()
	HideLoading()
	RenderQuestions(session *service.Session) error
	RenderLoadFailure(err error) error
	RenderResults(session *service.Session, results model.CheckAnswersResponse) error
	RenderSubmitFailure(err error) error
}

// Display убирает HTML-сущности из текста вопроса или варианта
func Display(s string) string {
	return html.UnescapeString(s)
}

// OptionLabel возвращает буквенную метку варианта: A, B, C...
func OptionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

// ResultLine строка результата для вопроса с порядковым номером n (с единицы)
func ResultLine(n int, correct bool) string {
	if correct {
		return fmt.Sprintf("Question %d: ✅ Correct", n)
	}
	return fmt.Sprintf("Question %d: ❌ Wrong", n)
}

// ScoreLine итоговая строка
func ScoreLine(correct, total int) string {
	return fmt.Sprintf("Score: %d/%d", correct, total)
}

// ResultLines строки результатов в порядке вопросов сессии и итог.
// Вопрос, отсутствующий в ответе сервиса, считается неверным.
func ResultLines(session *service.Session, results model.CheckAnswersResponse) []string {
	questions := session.Questions()
	lines := make([]string, 0, len(questions)+2)
	if results.SessionLost() {
		lines = append(lines, SessionLostNotice)
	}
	for i, q := range questions {
		lines = append(lines, ResultLine(i+1, results.IsCorrect(q.ID)))
	}
	correct, total := service.Score(session, results)
	return append(lines, ScoreLine(correct, total))
}
