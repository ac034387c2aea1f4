package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Env       string `env:"APP_ENV" env-default:"development"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	HTTP      HTTPConfig
	Stripe    StripeConfig
	CORS      CORSConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type HTTPConfig struct {
	Port            string        `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type StripeConfig struct {
	SecretKey string        `env:"STRIPE_SECRET_KEY"`
	Timeout   time.Duration `env:"STRIPE_TIMEOUT" env-default:"30s"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type RedisConfig struct {
	// Addr is optional; when empty the rate limiter uses its in-memory store.
	Addr string `env:"REDIS_ADDR"`
}

type RateLimitConfig struct {
	GeneralWindow time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"15m"`
	GeneralLimit  int           `env:"RATE_LIMIT_MAX" env-default:"100"`
	FailedWindow  time.Duration `env:"FAILED_ATTEMPTS_WINDOW" env-default:"1h"`
	FailedLimit   int           `env:"FAILED_ATTEMPTS_MAX" env-default:"5"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if cfg.Stripe.SecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is required")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
