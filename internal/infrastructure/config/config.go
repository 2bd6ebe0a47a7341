package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// LoginURL is where route guards send unauthenticated requests;
	// DashboardURL is where role mismatches land.
	LoginURL     string `env:"LOGIN_URL,     default=/login"`
	DashboardURL string `env:"DASHBOARD_URL, default=/dashboard"`

	Session  SessionConfig
	Throttle ThrottleConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type SessionConfig struct {
	// Lifetime bounds how long a session may stay idle; the cookie Max-Age
	// matches it. Rotation extends expiry in place once less than half the
	// lifetime remains.
	Lifetime time.Duration `env:"SESSION_LIFETIME, default=168h"`
	// CookieSecure should only be disabled for local plain-HTTP development.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE, default=true"`
}

type ThrottleConfig struct {
	MaxFailures  int           `env:"LOGIN_MAX_FAILURES,  default=5"`
	Window       time.Duration `env:"LOGIN_FAIL_WINDOW,   default=15m"`
	LockDuration time.Duration `env:"LOGIN_LOCK_DURATION, default=10m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=job_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
