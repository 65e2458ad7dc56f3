package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/IT-Nick/trivia/internal/app/controller"
	"github.com/IT-Nick/trivia/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/trivia/internal/app/handlers/http/status_handler"
	"github.com/IT-Nick/trivia/internal/app/handlers/telegram/select_option_handler"
	"github.com/IT-Nick/trivia/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/trivia/internal/app/handlers/telegram/submit_handler"
	"github.com/IT-Nick/trivia/internal/app/middleware"
	"github.com/IT-Nick/trivia/internal/app/surface/telegram"
	"github.com/IT-Nick/trivia/internal/app/surface/terminal"
	"github.com/IT-Nick/trivia/internal/domain/quiz/repository"
	"github.com/IT-Nick/trivia/internal/domain/quiz/service"
	"github.com/IT-Nick/trivia/internal/infra/config"
	"github.com/IT-Nick/trivia/internal/infra/fetcher"
	"github.com/IT-Nick/trivia/internal/infra/httpclient"
	"github.com/IT-Nick/trivia/internal/infra/poller"
	"github.com/IT-Nick/trivia/internal/infra/report"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

const shutdownTimeout = 5 * time.Second

type Services struct {
	breaker     *httpclient.Breaker
	quizRepo    *repository.QuizRepository
	quizService *service.QuizService
	controller  *controller.Controller
}

type App struct {
	config *config.Config
	log    *logrus.Logger
	bot    *telebot.Bot
	server *http.Server

	Services
}

func NewApp(configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}
	return newApp(configImpl, configImpl.GetLogger())
}

func newApp(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{
		config: cfg,
		log:    log,
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return app, nil
}

func (app *App) Logger() *logrus.Logger {
	return app.log
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() error {
	client, err := httpclient.New(app.config.Trivia.Timeout)
	if err != nil {
		return err
	}

	// Исходящие запросы: предохранитель, затем X-Request-ID
	app.breaker = httpclient.NewBreaker(client, httpclient.BreakerSettings{
		Name:                "trivia",
		MaxRequests:         app.config.Breaker.MaxRequests,
		Interval:            app.config.Breaker.Interval,
		Timeout:             app.config.Breaker.Timeout,
		ConsecutiveFailures: app.config.Breaker.ConsecutiveFailures,
	})
	doer := httpclient.WithRequestID(app.breaker)

	app.quizRepo = repository.NewQuizRepository(doer, app.config.Trivia.BaseURL, fetcher.Config{
		MaxAttempts: app.config.Trivia.MaxAttempts,
		Delay:       app.config.Trivia.RetryDelay,
	}, app.log)
	app.quizService = service.NewQuizService(app.quizRepo, app.config.Trivia.ShuffleOptions, app.log)
	app.controller = controller.NewController(app.quizService, app.log)
	return nil
}

// Play проводит викторину в терминале. Если reportPath не пуст, сохраняет PDF-отчёт.
func (app *App) Play(ctx context.Context, in io.Reader, out io.Writer, reportPath string) error {
	term := terminal.New(in, out)

	session, err := app.controller.Load(ctx, term)
	if err != nil {
		return err
	}
	if err := term.Ask(ctx, session); err != nil {
		return err
	}

	results, err := app.controller.Submit(ctx, term)
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := report.WriteFile(reportPath, report.NewReportData(session, results)); err != nil {
			return err
		}
		app.log.WithField("file", reportPath).Info("report saved")
	}
	return nil
}

// Fetch загружает вопросы и печатает их в JSON
func (app *App) Fetch(ctx context.Context, out io.Writer) error {
	questions, err := app.quizRepo.GetQuestions(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}

// ListenAndServeTelegram запускает Telegram бота
func (app *App) ListenAndServeTelegram() error {
	if err := app.config.ValidateTelegram(); err != nil {
		return err
	}

	p, err := poller.NewPoller(app.config.TelegramBot)
	if err != nil {
		return fmt.Errorf("poller.NewPoller: %w", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: p,
		OnError: func(err error, c telebot.Context) {
			app.log.WithError(err).Error("telegram bot error")
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	app.log.WithField("mode", app.config.TelegramBot.Mode).Info("starting telegram bot")
	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(
		middleware.Recover(app.log),
		middleware.Logger(app.log),
		middleware.AllowChats(app.log, app.config.TelegramBot.AllowedChatIDs...),
	)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.controller, app.log).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: telegram.OptionUnique}, select_option_handler.NewSelectOptionHandler(app.controller, app.log).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: telegram.SubmitUnique}, submit_handler.NewSubmitHandler(app.controller, app.log).GetHandlerFunc())
}

// Router маршруты HTTP сервера статуса
func (app *App) Router() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	v1Router := router.PathPrefix("/v1").Subrouter()
	v1Router.Handle("/", health_handler.NewHealthHandler()).Methods(http.MethodGet)
	v1Router.Handle("/status", status_handler.NewStatusHandler(app.config.Trivia.BaseURL, app.breaker, app.controller)).Methods(http.MethodGet)

	return middleware.Use(router.ServeHTTP, middleware.RecoverAndLog(app.log))
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	if app.server == nil {
		app.server = &http.Server{
			Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
			Handler: handlers.CombinedLoggingHandler(os.Stdout, app.Router()),
		}
	}

	app.log.WithField("addr", app.server.Addr).Info("starting HTTP server")
	return app.server.ListenAndServe()
}

// ListenAndServe запускает оба сервера (Telegram и HTTP) и останавливает их при отмене ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	// Запускаем Telegram сервер
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	// Запускаем HTTP сервер
	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: handlers.CombinedLoggingHandler(os.Stdout, app.Router()),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.ListenAndServeHTTP()
	}()

	select {
	case err := <-errCh:
		app.bot.Stop()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-ctx.Done():
	}

	app.log.Info("shutting down")
	app.bot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
