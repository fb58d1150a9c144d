// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"user"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"password"`
	DBName     string `envconfig:"DB_NAME" default:"flashchatdb"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// JWTSecret підписує access-токени. Обов'язковий для сервера;
	// admin CLI його не потребує.
	JWTSecret string        `envconfig:"MOBILE_SECRET_CODE"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`

	// Timezone керує межами доби для статистики переглядів карток.
	Timezone string `envconfig:"TIMEZONE" default:"Europe/Moscow"`
}

// Load читає .env (якщо є) та збирає конфігурацію з середовища.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}
	return &cfg, nil
}

// DSN збирає рядок підключення до PostgreSQL.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Location повертає часову зону статистики; падає назад на UTC,
// якщо назву зони не вдалося розпізнати.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("WARNING: unknown timezone %q, falling back to UTC", c.Timezone)
		return time.UTC
	}
	return loc
}
