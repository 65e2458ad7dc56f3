package model

// SessionErrorKey ключ, который сервис кладёт в results, если не нашёл вопросов своей сессии
const SessionErrorKey = "error"

// CheckAnswersResponse ответ POST /checkanswers: questionID -> правильность ответа
type CheckAnswersResponse struct {
	Results map[string]bool `json:"results"`
}

// IsCorrect возвращает результат по вопросу. Отсутствующий вопрос считается неверным.
func (r CheckAnswersResponse) IsCorrect(questionID string) bool {
	return r.Results[questionID]
}

// SessionLost сообщает, что сервис потерял сессию, в которой выдавал вопросы
func (r CheckAnswersResponse) SessionLost() bool {
	_, ok := r.Results[SessionErrorKey]
	return ok
}
