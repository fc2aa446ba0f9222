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

	JWT      JWTConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Uploads  UploadsConfig
}

type JWTConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,  default=24h"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL, default=720h"`
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=host=localhost user=postgres password=postgres dbname=job_board port=5432 sslmode=disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type UploadsConfig struct {
	Dir     string `env:"UPLOAD_DIR,      default=uploads"`
	BaseURL string `env:"UPLOAD_BASE_URL, default=/uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
