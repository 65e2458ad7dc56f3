package middleware

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v4"
)

// Recover перехватывает панику в обработчике и вызывает onError.
// Без onError паника записывается в лог.
func Recover(log logrus.FieldLogger, onError ...func(error, tele.Context)) tele.MiddlewareFunc {
	handleError := func(err error, c tele.Context) {
		log.WithError(err).Error("recovered from panic in telegram handler")
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					switch x := r.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = fmt.Errorf("unknown panic: %v", x)
					}
					handleError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}
