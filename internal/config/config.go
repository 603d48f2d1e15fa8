package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr     string `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:""`
	ProcessorAddr  string `env:"CP_API_ADDRESS" envDefault:"https://api.cloudpayments.ru/"`
	PublicID       string `env:"CP_PUBLIC_ID" envDefault:""`
	APISecret      string `env:"CP_API_SECRET" envDefault:""`
	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`
	Delay          int    `env:"CHECK_DELAY" envDefault:"3"`
	MaxAttempts    int    `env:"CHECK_MAX_ATTEMPTS" envDefault:"100"`
	TaxID          string `env:"TAX_INN" envDefault:""`
	TaxationSystem int    `env:"TAXATION_SYSTEM" envDefault:"0"`
	Vat            int    `env:"VAT" envDefault:"0"`
}

// ServerConfig - настройки HTTP-сервера вебхуков
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	DatabaseDSN string
}

// ProcessorConfig - настройки доступа к CloudPayments
type ProcessorConfig struct {
	Addr      string
	PublicID  string
	APISecret string
}

// ReconcileConfig - настройки опроса платежа.
// Итоговое время ожидания = Delay * MaxAttempts.
type ReconcileConfig struct {
	Delay       time.Duration
	MaxAttempts int
}

// ReceiptConfig - реквизиты для формирования чеков
type ReceiptConfig struct {
	TaxID          string
	TaxationSystem int
	Vat            int
}

// Config - модель настроек сервиса
type Config struct {
	Server    ServerConfig
	Processor ProcessorConfig
	Reconcile ReconcileConfig
	Receipt   ReceiptConfig
	Telegram  string
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server      = pflag.StringP("server", "a", args.ListenAddr, "Webhook server listen address in a form host:port.")
		logLevel    = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN         = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		processor   = pflag.StringP("processor", "r", args.ProcessorAddr, "CloudPayments API base URL.")
		token       = pflag.StringP("token", "t", args.TelegramToken, "Telegram bot token.")
		delay       = pflag.IntP("delay", "w", args.Delay, "Delay between payment checks, seconds.")
		maxAttempts = pflag.IntP("max_attempts", "m", args.MaxAttempts, "Payment check attempts budget.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
		},
		Processor: ProcessorConfig{
			Addr:      *processor,
			PublicID:  args.PublicID,
			APISecret: args.APISecret,
		},
		Reconcile: ReconcileConfig{
			Delay:       time.Duration(*delay) * time.Second,
			MaxAttempts: clampAttempts(*maxAttempts),
		},
		Receipt: ReceiptConfig{
			TaxID:          args.TaxID,
			TaxationSystem: args.TaxationSystem,
			Vat:            args.Vat,
		},
		Telegram: *token,
	}
}

// бюджет меньше одной попытки смысла не имеет
func clampAttempts(attempts int) int {
	if attempts < 1 {
		return 1
	}
	return attempts
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
		},
		Processor: ProcessorConfig{
			Addr: "https://api.cloudpayments.ru/",
		},
		Reconcile: ReconcileConfig{
			Delay:       3 * time.Second,
			MaxAttempts: 100,
		},
	}
}
