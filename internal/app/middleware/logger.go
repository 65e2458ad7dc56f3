package middleware

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v4"
)

// Logger логирует входящие обновления Telegram.
// На уровне Debug в запись попадает все обновление в JSON.
func Logger(log logrus.FieldLogger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			entry := log.WithFields(logrus.Fields{
				"update_id": c.Update().ID,
				"action":    action(c),
			})
			if chat := c.Chat(); chat != nil {
				entry = entry.WithField("chat", chat.ID)
			}
			if logger, ok := log.(*logrus.Logger); ok && logger.IsLevelEnabled(logrus.DebugLevel) {
				data, _ := json.Marshal(c.Update())
				entry = entry.WithField("update", string(data))
			}
			entry.Info("telegram update")

			err := next(c)
			if err != nil {
				entry.WithError(err).Error("telegram handler failed")
			}
			return err
		}
	}
}

// action описывает действие пользователя
func action(c tele.Context) string {
	if cb := c.Callback(); cb != nil {
		return "callback: " + cb.Unique
	}
	if msg := c.Message(); msg != nil {
		return "message: " + msg.Text
	}
	return "unknown"
}
