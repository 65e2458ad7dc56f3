package poller

import (
	"testing"
	"time"

	"github.com/IT-Nick/trivia/internal/infra/config"
	tele "gopkg.in/telebot.v4"
)

func TestNewPoller(t *testing.T) {
	p, err := NewPoller(config.TelegramBot{Mode: config.PollingMode, PollInterval: 3 * time.Second})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if lp, ok := p.(*tele.LongPoller); !ok || lp.Timeout != 3*time.Second {
		t.Errorf("ожидался LongPoller с таймаутом 3s, получено %#v", p)
	}

	p, err = NewPoller(config.TelegramBot{Mode: config.WebhookMode, WebhookURL: "https://bot.example", ListenAddr: ":8443"})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if wh, ok := p.(*tele.Webhook); !ok || wh.Endpoint.PublicURL != "https://bot.example" || wh.Listen != ":8443" {
		t.Errorf("ожидался Webhook, получено %#v", p)
	}

	if _, err := NewPoller(config.TelegramBot{Mode: config.WebhookMode}); err == nil {
		t.Errorf("webhook без URL должен отклоняться")
	}
	if _, err := NewPoller(config.TelegramBot{Mode: "carrier-pigeon"}); err == nil {
		t.Errorf("неизвестный режим должен отклоняться")
	}
}
