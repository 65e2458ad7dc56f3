package poller

import (
	"github.com/IT-Nick/trivia/internal/infra/config"
	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"
)

// NewPoller создаёт Poller в зависимости от режима бота
func NewPoller(cfg config.TelegramBot) (tele.Poller, error) {
	switch cfg.Mode {
	case config.WebhookMode:
		if cfg.WebhookURL == "" {
			return nil, errors.New("webhook mode requires WEBHOOK_URL")
		}
		return &tele.Webhook{
			Listen: cfg.ListenAddr,
			Endpoint: &tele.WebhookEndpoint{
				PublicURL: cfg.WebhookURL,
			},
		}, nil
	case config.PollingMode, "":
		return &tele.LongPoller{Timeout: cfg.PollInterval}, nil
	default:
		return nil, errors.Errorf("unknown bot mode %q", cfg.Mode)
	}
}
