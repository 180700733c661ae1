// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"airplane-seating-cli/model"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"
	StoreMySQL = "mysql"
)

// Config holds every SEATING_* setting. Zero values mean "use the default".
type Config struct {
	Store         string
	StatePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
	MySQLDSN      string
	AMQPURL       string
	AMQPQueue     string
	HTTPAddr      string
	ServerURL     string
	MaxFirst      int
	MaxEconomy    int
	LogFile       string
}

// Load reads .env from the working directory when present, then the process
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Store:         strings.ToLower(envOr("SEATING_STORE", StoreFile)),
		StatePath:     env("SEATING_STATE_PATH"),
		RedisAddr:     envOr("SEATING_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("SEATING_REDIS_PASSWORD"),
		RedisKey:      env("SEATING_REDIS_KEY"),
		MySQLDSN:      env("SEATING_MYSQL_DSN"),
		AMQPURL:       env("SEATING_AMQP_URL"),
		AMQPQueue:     env("SEATING_AMQP_QUEUE"),
		HTTPAddr:      envOr("SEATING_HTTP_ADDR", ":8080"),
		ServerURL:     env("SEATING_SERVER_URL"),
		LogFile:       env("SEATING_LOG_FILE"),
	}

	var err error
	if cfg.RedisDB, err = envInt("SEATING_REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxFirst, err = envInt("SEATING_MAX_FIRST", model.DefaultMaxFirst); err != nil {
		return Config{}, err
	}
	if cfg.MaxEconomy, err = envInt("SEATING_MAX_ECONOMY", model.DefaultMaxEconomy); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreRedis:
	case StoreMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("SEATING_MYSQL_DSN is required when SEATING_STORE=mysql")
		}
	default:
		return fmt.Errorf("unknown SEATING_STORE %q (want file, redis or mysql)", c.Store)
	}
	if c.MaxFirst < 1 || c.MaxEconomy < 1 {
		return fmt.Errorf("per-booking seat limits must be at least 1")
	}
	return nil
}

// Policy returns the per-request seat limits.
func (c Config) Policy() model.Policy {
	return model.Policy{MaxPerBooking: map[model.FareClass]int{
		model.First:   c.MaxFirst,
		model.Economy: c.MaxEconomy,
	}}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOr(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	s := env(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, s)
	}
	return n, nil
}
