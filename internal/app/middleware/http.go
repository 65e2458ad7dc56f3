package middleware

import (
	"net/http"

	httpError "github.com/IT-Nick/trivia/pkg/http"
	"github.com/sirupsen/logrus"
)

// Use оборачивает обработчик цепочкой middleware
func Use(handler http.HandlerFunc, mid ...func(http.Handler) http.HandlerFunc) http.HandlerFunc {
	for _, m := range mid {
		handler = m(handler)
	}
	return handler
}

// RecoverAndLog отвечает 500 и пишет в лог, если обработчик запаниковал
func RecoverAndLog(log logrus.FieldLogger) func(http.Handler) http.HandlerFunc {
	return func(handler http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithField("path", r.URL.Path).Error("panic in HTTP handler: ", rec)
					httpError.ErrorResponse(w, http.StatusInternalServerError, "An internal server error occurred")
				}
			}()
			handler.ServeHTTP(w, r)
		}
	}
}
