// Package terminal рисует викторину в терминале и читает ответы построчно.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/IT-Nick/trivia/internal/app/surface"
	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
)

// MaxInvalidAnswers после стольких неверных вводов вопрос пропускается
const MaxInvalidAnswers = 3

// Surface терминальная реализация surface.Surface
type Surface struct {
	in      *bufio.Reader
	out     io.Writer
	loading bool
}

var _ surface.Surface = (*Surface)(nil)

// New создает терминальную поверхность
func New(in io.Reader, out io.Writer) *Surface {
	return &Surface{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Loading показан ли сейчас индикатор загрузки
func (s *Surface) Loading() bool {
	return s.loading
}

func (s *Surface) ShowLoading() {
	s.loading = true
	fmt.Fprintln(s.out, "Loading questions...")
}

func (s *Surface) HideLoading() {
	s.loading = false
}

// RenderQuestions печатает заголовок викторины, сами вопросы задает Ask
func (s *Surface) RenderQuestions(session *service.Session) error {
	_, err := fmt.Fprintf(s.out, "\n%d questions. Type the letter of your answer, or press Enter to skip.\n", session.Len())
	return err
}

func (s *Surface) RenderLoadFailure(err error) error {
	_, werr := fmt.Fprintln(s.out, surface.LoadFailureNotice)
	return werr
}

func (s *Surface) RenderResults(session *service.Session, results model.CheckAnswersResponse) error {
	_, err := fmt.Fprintf(s.out, "\n%s\n", strings.Join(surface.ResultLines(session, results), "\n"))
	return err
}

func (s *Surface) RenderSubmitFailure(err error) error {
	_, werr := fmt.Fprintln(s.out, surface.SubmitFailureNotice)
	return werr
}

// Ask задает вопросы сессии по очереди и записывает выбранные варианты.
// Пустая строка пропускает вопрос, конец ввода завершает опрос без ошибки.
func (s *Surface) Ask(ctx context.Context, session *service.Session) error {
	for i, q := range session.Questions() {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printQuestion(i+1, q)
		option, ok, err := s.readOption(q)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !ok {
			continue
		}
		if err := session.Select(q.ID, option); err != nil {
			return err
		}
	}
	return nil
}

func (s *Surface) printQuestion(n int, q model.Question) {
	fmt.Fprintf(s.out, "\nQuestion %d: %s\n", n, surface.Display(q.Question))
	for i, option := range q.Options {
		fmt.Fprintf(s.out, "  %s) %s\n", surface.OptionLabel(i), surface.Display(option))
	}
}

// readOption возвращает выбранный вариант; ok == false, если вопрос пропущен
func (s *Surface) readOption(q model.Question) (string, bool, error) {
	for invalid := 0; invalid < MaxInvalidAnswers; {
		fmt.Fprint(s.out, "> ")
		line, err := s.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", false, err
		}

		answer := strings.ToUpper(strings.TrimSpace(line))
		if answer == "" {
			return "", false, nil
		}
		for i, option := range q.Options {
			if answer == surface.OptionLabel(i) {
				return option, true, nil
			}
		}

		invalid++
		fmt.Fprintf(s.out, "Unknown option %q.\n", answer)
	}
	fmt.Fprintln(s.out, "Skipping question.")
	return "", false, nil
}
