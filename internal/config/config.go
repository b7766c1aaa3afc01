package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	// Identity provider (GoTrue-style REST API).
	ProviderURL     string `env:"PROVIDER_URL,notEmpty"`
	ProviderAnonKey string `env:"PROVIDER_ANON_KEY,notEmpty"`

	// Remote backend session endpoint. Empty means auth-bridge issues
	// sessions itself against its own store.
	SessionEndpointURL string `env:"SESSION_ENDPOINT_URL"`

	// Session store. Empty RedisAddr falls back to the in-memory store.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	VerifySessionToken bool          `env:"VERIFY_SESSION_TOKEN" envDefault:"false"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
