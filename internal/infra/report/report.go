package report

import (
	"fmt"
	"html"
	"io"
	"time"

	"github.com/IT-Nick/trivia/internal/domain/model"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
	"github.com/jung-kurt/gofpdf"
)

// ReportData содержит данные для формирования отчёта
type ReportData struct {
	SessionID   string
	GeneratedAt time.Time
	Questions   []model.Question
	Answers     map[string]string
	Results     model.CheckAnswersResponse
	Score       int
}

// NewReportData собирает данные отчёта по завершенной сессии
func NewReportData(session *service.Session, results model.CheckAnswersResponse) ReportData {
	correct, _ := service.Score(session, results)
	return ReportData{
		SessionID:   session.ID,
		GeneratedAt: time.Now(),
		Questions:   session.Questions(),
		Answers:     session.Submission().UserAnswers,
		Results:     results,
		Score:       correct,
	}
}

// Generate пишет PDF‑отчёт в w.
// Используются встроенные шрифты, поэтому символы вне cp1252 заменяются.
func Generate(w io.Writer, r ReportData) error {
	pdf := build(r)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile сохраняет PDF‑отчёт в файл
func WriteFile(filename string, r ReportData) error {
	pdf := build(r)
	if err := pdf.OutputFileAndClose(filename); err != nil {
		return fmt.Errorf("failed to write report %s: %w", filename, err)
	}
	return nil
}

func build(r ReportData) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(html.UnescapeString(s))
	}

	pdf.AddPage()

	// Заголовок
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, "Trivia quiz report", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	info := fmt.Sprintf("Session: %s\nDate: %s\nScore: %d of %d\n",
		r.SessionID, r.GeneratedAt.Format("2006-01-02 15:04"), r.Score, len(r.Questions))
	pdf.MultiCell(0, 8, info, "", "L", false)
	pdf.Ln(4)

	for i, q := range r.Questions {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Question %d:", i+1), "", "L", false)

		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, text(q.Question), "", "L", false)
		pdf.Ln(2)

		answer, ok := r.Answers[q.ID]
		if !ok {
			answer = "(skipped)"
		}
		result := "Wrong"
		if r.Results.IsCorrect(q.ID) {
			result = "Correct"
		}
		pdf.MultiCell(0, 8, fmt.Sprintf("Your answer: %s\nResult: %s\n", text(answer), result), "", "L", false)
		pdf.Ln(4)
	}
	return pdf
}
