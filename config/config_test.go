package config

import (
	"os"
	"path/filepath"
	"testing"

	"airplane-seating-cli/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SEATING_STORE", "SEATING_STATE_PATH", "SEATING_REDIS_ADDR", "SEATING_REDIS_PASSWORD",
		"SEATING_REDIS_DB", "SEATING_REDIS_KEY", "SEATING_MYSQL_DSN", "SEATING_AMQP_URL",
		"SEATING_AMQP_QUEUE", "SEATING_HTTP_ADDR", "SEATING_SERVER_URL", "SEATING_MAX_FIRST",
		"SEATING_MAX_ECONOMY", "SEATING_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Store != StoreFile || cfg.HTTPAddr != ":8080" || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	policy := cfg.Policy()
	if policy.Limit(model.First) != 2 || policy.Limit(model.Economy) != 3 {
		t.Fatalf("unexpected policy: %+v", policy)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEATING_STORE", "Redis")
	t.Setenv("SEATING_REDIS_DB", "4")
	t.Setenv("SEATING_MAX_ECONOMY", "6")
	t.Setenv("SEATING_SERVER_URL", "http://seats.local")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Store != StoreRedis || cfg.RedisDB != 4 || cfg.MaxEconomy != 6 || cfg.ServerURL != "http://seats.local" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad int":       {"SEATING_MAX_FIRST": "two"},
		"zero limit":    {"SEATING_MAX_ECONOMY": "0"},
		"unknown store": {"SEATING_STORE": "s3"},
		"mysql no dsn":  {"SEATING_STORE": "mysql"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := FromEnv(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SEATING_HTTP_ADDR")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SEATING_HTTP_ADDR=:9090\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090 from .env, got %s", cfg.HTTPAddr)
	}
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if _, err := Load(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
