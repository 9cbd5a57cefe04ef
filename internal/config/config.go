package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string         `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string         `mapstructure:"DB_DSN"`
	Environment    string         `mapstructure:"ENV"`
	BackendURL     string         `mapstructure:"BACKEND_URL"`
	MigrationsPath string         `mapstructure:"MIGRATIONS_PATH"`
	Location       *time.Location `mapstructure:"TIMEZONE"`

	// Отображение слотов и цен
	SlotTimeLayout string `mapstructure:"SLOT_TIME_LAYOUT"`
	CurrencySymbol string `mapstructure:"CURRENCY_SYMBOL"`

	// Фоновое обновление врачей и лимит запросов
	DoctorsRefreshInterval time.Duration `mapstructure:"DOCTORS_REFRESH_INTERVAL"`
	RateLimitPerMinute     int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	// Оплата (Stripe). Без ключа онлайн-оплата выключена
	StripeSecretKey   string `mapstructure:"STRIPE_SECRET_KEY"`
	Currency          string `mapstructure:"CURRENCY"`
	PaymentSuccessURL string `mapstructure:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL  string `mapstructure:"PAYMENT_CANCEL_URL"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:     getenv("TELEGRAM_TOKEN"),
		DBDSN:             getenv("DB_DSN"),
		Environment:       getenv("ENV"),
		BackendURL:        strings.TrimSuffix(getenv("BACKEND_URL"), "/"),
		MigrationsPath:    getenv("MIGRATIONS_PATH"),
		SlotTimeLayout:    getenv("SLOT_TIME_LAYOUT"),
		CurrencySymbol:    getenv("CURRENCY_SYMBOL"),
		StripeSecretKey:   getenv("STRIPE_SECRET_KEY"),
		Currency:          getenv("CURRENCY"),
		PaymentSuccessURL: getenv("PAYMENT_SUCCESS_URL"),
		PaymentCancelURL:  getenv("PAYMENT_CANCEL_URL"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.SlotTimeLayout == "" {
		cfg.SlotTimeLayout = "03:04 PM"
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required but not set")
	}

	loc, err := loadLocation(getenv("TIMEZONE"))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	cfg.DoctorsRefreshInterval, err = durationOr(getenv("DOCTORS_REFRESH_INTERVAL"), 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("DOCTORS_REFRESH_INTERVAL: %w", err)
	}

	cfg.RateLimitPerMinute, err = intOr(getenv("RATE_LIMIT_PER_MINUTE"), 60)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
	}

	if cfg.StripeSecretKey != "" && (cfg.PaymentSuccessURL == "" || cfg.PaymentCancelURL == "") {
		return nil, fmt.Errorf("PAYMENT_SUCCESS_URL and PAYMENT_CANCEL_URL are required when STRIPE_SECRET_KEY is set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// PaymentsEnabled проверяет, настроена ли онлайн-оплата
func (c *Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}

func durationOr(value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return d, nil
}

func intOr(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
