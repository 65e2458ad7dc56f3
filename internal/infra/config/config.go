package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DebugMode      = "debug"
	ProductionMode = "production"

	PollingMode = "polling"
	WebhookMode = "webhook"
)

// Trivia настройки клиента сервиса викторины
type Trivia struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxAttempts    int           `yaml:"max_attempts"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	ShuffleOptions bool          `yaml:"shuffle_options"`
}

// Breaker настройки предохранителя исходящих запросов
type Breaker struct {
	MaxRequests         uint32        `yaml:"max_requests"`
	Interval            time.Duration `yaml:"interval"`
	Timeout             time.Duration `yaml:"timeout"`
	ConsecutiveFailures uint32        `yaml:"consecutive_failures"`
}

// Server адрес HTTP сервера статуса
type Server struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// TelegramBot настройки бота
type TelegramBot struct {
	Token          string        `yaml:"token"`
	Mode           string        `yaml:"mode"`
	WebhookURL     string        `yaml:"webhook_url"`
	ListenAddr     string        `yaml:"listen_addr"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	AllowedChatIDs []int64       `yaml:"allowed_chat_ids"`
}

type Config struct {
	// debug или production
	Mode        string      `yaml:"mode"`
	Trivia      Trivia      `yaml:"trivia"`
	Breaker     Breaker     `yaml:"breaker"`
	Server      Server      `yaml:"server"`
	TelegramBot TelegramBot `yaml:"telegram_bot"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Mode: ProductionMode,
		Trivia: Trivia{
			BaseURL:        "http://localhost:8080",
			Timeout:        10 * time.Second,
			MaxAttempts:    3,
			RetryDelay:     5000 * time.Millisecond,
			ShuffleOptions: true,
		},
		Breaker: Breaker{
			MaxRequests:         1,
			Interval:            time.Minute,
			Timeout:             30 * time.Second,
			ConsecutiveFailures: 5,
		},
		Server: Server{
			Host: "0.0.0.0",
			Port: "8081",
		},
		TelegramBot: TelegramBot{
			Mode:         PollingMode,
			ListenAddr:   ":8443",
			PollInterval: 10 * time.Second,
		},
	}
}

// LoadConfig читает YAML-файл поверх значений по умолчанию и применяет переменные окружения
// (в том числе из .env). Пустое имя файла означает только значения по умолчанию и окружение.
func LoadConfig(filename string) (*Config, error) {
	config := Default()

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}

		defer func(f *os.File) {
			err := f.Close()
			if err != nil {
				fmt.Println("f.Close() failed ", err)
			}
		}(f)

		// пустой файл оставляет значения по умолчанию
		if err := yaml.NewDecoder(f).Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv переопределяет значения переменными окружения
func (cfg *Config) applyEnv() error {
	if v := os.Getenv("TRIVIA_BASE_URL"); v != "" {
		cfg.Trivia.BaseURL = v
	}
	if v := os.Getenv("TRIVIA_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramBot.Token = v
	}
	if v := os.Getenv("BOT_MODE"); v != "" {
		cfg.TelegramBot.Mode = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.TelegramBot.WebhookURL = v
	}
	if v := os.Getenv("TRIVIA_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid TRIVIA_MAX_ATTEMPTS %q", v)
		}
		cfg.Trivia.MaxAttempts = n
	}
	if v := os.Getenv("TRIVIA_RETRY_DELAY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid TRIVIA_RETRY_DELAY_MS %q", v)
		}
		cfg.Trivia.RetryDelay = time.Duration(n) * time.Millisecond
	}
	if v := os.Getenv("TRIVIA_SHUFFLE_OPTIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid TRIVIA_SHUFFLE_OPTIONS %q", v)
		}
		cfg.Trivia.ShuffleOptions = b
	}
	// Список Telegram ID чатов, разделенных запятой
	if v := os.Getenv("TRIVIA_ALLOWED_CHAT_IDS"); v != "" {
		var ids []int64
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid chat id %q in TRIVIA_ALLOWED_CHAT_IDS", s)
			}
			ids = append(ids, id)
		}
		cfg.TelegramBot.AllowedChatIDs = ids
	}
	return nil
}

// Validate проверяет значения, общие для всех команд
func (cfg *Config) Validate() error {
	if !cfg.IsDebugMode() && !cfg.IsProductionMode() {
		return errors.Errorf("invalid mode %q, it must be either `debug` or `production`", cfg.Mode)
	}
	if cfg.Trivia.BaseURL == "" {
		return errors.New("trivia.base_url is required")
	}
	if cfg.Trivia.MaxAttempts < 1 {
		return errors.Errorf("trivia.max_attempts must be at least 1, got %d", cfg.Trivia.MaxAttempts)
	}
	if cfg.Trivia.RetryDelay < 0 {
		return errors.Errorf("trivia.retry_delay must not be negative, got %s", cfg.Trivia.RetryDelay)
	}
	return nil
}

// ValidateTelegram проверяет настройки бота, нужные только команде bot
func (cfg *Config) ValidateTelegram() error {
	bot := cfg.TelegramBot
	if bot.Token == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	switch bot.Mode {
	case PollingMode:
	case WebhookMode:
		if bot.WebhookURL == "" {
			return errors.New("webhook mode requires WEBHOOK_URL")
		}
	default:
		return errors.Errorf("invalid telegram_bot.mode %q", bot.Mode)
	}
	return nil
}

// GetLogger логгер с уровнем по режиму работы
func (cfg *Config) GetLogger() *logrus.Logger {
	logLvl := logrus.InfoLevel
	if cfg.IsDebugMode() {
		logLvl = logrus.DebugLevel
	}
	return &logrus.Logger{
		Out:       os.Stderr,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logLvl,
	}
}

func (cfg *Config) IsDebugMode() bool {
	return cfg.Mode == DebugMode
}

func (cfg *Config) IsProductionMode() bool {
	return cfg.Mode == ProductionMode
}
