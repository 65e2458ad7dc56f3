package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpError "github.com/IT-Nick/trivia/pkg/http"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	tele "gopkg.in/telebot.v4"
)

func newContext(t *testing.T, chatID int64, text string) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	if err != nil {
		t.Fatalf("не удалось создать бота: %v", err)
	}
	return bot.NewContext(tele.Update{
		ID:      7,
		Message: &tele.Message{Text: text, Chat: &tele.Chat{ID: chatID}},
	})
}

func TestAllowChats(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	calls := 0
	handler := AllowChats(log, 1, 2)(func(tele.Context) error {
		calls++
		return nil
	})

	_ = handler(newContext(t, 1, "/start"))
	_ = handler(newContext(t, 3, "/start"))

	if calls != 1 {
		t.Errorf("ожидался один вызов обработчика, получено %d", calls)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("чужой чат должен логироваться предупреждением")
	}
}

func TestAllowChats_EmptyAllowsAll(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	calls := 0
	handler := AllowChats(log)(func(tele.Context) error {
		calls++
		return nil
	})

	_ = handler(newContext(t, 100, "/start"))
	if calls != 1 {
		t.Errorf("пустой список должен пропускать любой чат")
	}
}

func TestRecover(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	handler := Recover(log)(func(tele.Context) error {
		panic("boom")
	})

	err := handler(newContext(t, 1, "/start"))
	if err == nil || err.Error() != "boom" {
		t.Errorf("паника должна превратиться в ошибку, получено %v", err)
	}
	if len(hook.Entries) != 1 {
		t.Errorf("паника должна логироваться")
	}
}

func TestRecover_CustomHandler(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	var got error
	handler := Recover(log, func(err error, _ tele.Context) { got = err })(func(tele.Context) error {
		panic(errors.New("boom"))
	})

	_ = handler(newContext(t, 1, "/start"))
	if got == nil || got.Error() != "boom" {
		t.Errorf("ожидалась ошибка boom, получено %v", got)
	}
}

func TestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	handler := Logger(log)(func(tele.Context) error {
		return errors.New("failed")
	})

	if err := handler(newContext(t, 5, "/start")); err == nil {
		t.Fatalf("ошибка обработчика должна возвращаться")
	}
	if len(hook.Entries) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(hook.Entries))
	}
	first := hook.Entries[0]
	if first.Data["chat"] != int64(5) || first.Data["action"] != "message: /start" {
		t.Errorf("неожиданные поля записи: %v", first.Data)
	}
	if hook.LastEntry().Level != logrus.ErrorLevel {
		t.Errorf("ошибка обработчика должна логироваться уровнем Error")
	}
}

func TestRecoverAndLog(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	handler := Use(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}, RecoverAndLog(log))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("ожидался статус 500, получено %d", rec.Code)
	}
	var body httpError.Error
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Status != http.StatusInternalServerError {
		t.Errorf("неожиданное тело ответа: %+v %v", body, err)
	}
	if len(hook.Entries) != 1 {
		t.Errorf("паника должна логироваться")
	}
}
