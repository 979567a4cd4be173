package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`
	DBDSN    string `envconfig:"DATABASE_DSN" default:"user:password@tcp(localhost:3306)/foodparadise?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB  bool   `envconfig:"RESET_DB" default:"false"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	RedisPass string `envconfig:"REDIS_PASSWORD"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"1h"`

	PaymentProvider  string `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	PaymentCurrency  string `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	StripeSecretKey  string `envconfig:"STRIPE_SECRET_KEY"`
	OmisePublicKey   string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey   string `envconfig:"OMISE_SECRET_KEY"`
	OmiseSourceType  string `envconfig:"OMISE_SOURCE_TYPE" default:"promptpay"`
	SettlementAtomic bool   `envconfig:"SETTLEMENT_ATOMIC" default:"false"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"foodparadise.events"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Environment  string `envconfig:"ENV" default:"dev"`
}

// Load reads an optional .env file and then builds Config from the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("load config: JWT_SECRET must not be empty")
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	cfg.PaymentProvider = strings.ToLower(cfg.PaymentProvider)
	return &cfg, nil
}

// SlogLevel converts LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
