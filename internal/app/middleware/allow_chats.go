package middleware

import (
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v4"
)

// AllowChats пропускает обновления только из перечисленных чатов.
// Пустой список разрешает любые чаты.
func AllowChats(log logrus.FieldLogger, ids ...int64) tele.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}
			chat := c.Chat()
			if chat == nil {
				return nil
			}
			if _, ok := allowed[chat.ID]; !ok {
				log.WithField("chat", chat.ID).Warn("update from chat that is not allowed")
				return nil
			}
			return next(c)
		}
	}
}
