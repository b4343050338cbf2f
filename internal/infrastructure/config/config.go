package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all environment-driven settings for the taskdesk client
// and the fixture dev server.
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL, default=http://localhost:8000"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=0"`

	Theme ThemeConfig
	State StateConfig
	Dev   DevServerConfig
}

// ThemeConfig controls the compile-time fallback for the UI theme.
type ThemeConfig struct {
	Default string `env:"THEME_DEFAULT, default=light"`
}

// StateConfig selects where tokens and the theme are persisted.
type StateConfig struct {
	// Backend is "file" (default) or "redis".
	Backend string `env:"STATE_BACKEND, default=file"`
	// Dir is the file backend's directory; empty means the user config dir.
	Dir string `env:"STATE_DIR"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// DevServerConfig applies only to cmd/devserver.
type DevServerConfig struct {
	Port      string        `env:"PORT,       default=8000"`
	JWTSecret string        `env:"JWT_SECRET, default=devserver-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
