package model

// Question представляет вопрос викторины в том виде, в каком его отдаёт сервис.
// Правильный вариант клиенту неизвестен.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// HasOption проверяет, входит ли вариант в список вариантов вопроса
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}
