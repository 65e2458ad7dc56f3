package model

// CheckAnswersRequest тело запроса POST /checkanswers: questionID -> выбранный вариант
type CheckAnswersRequest struct {
	UserAnswers map[string]string `json:"userAnswers"`
}
