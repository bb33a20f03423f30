// Package config loads client settings from the environment and an optional
// .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the CLI needs to reach the backend and to keep
// its local session.
type Config struct {
	AppEnv        string
	LogLevel      string
	APIURL        string
	Home          string // directory holding session.db and session.key
	HTTPTimeout   time.Duration
	LoginRedirect time.Duration // delay before jumping to /login after a 401
}

// SessionPath is the SQLite file holding the sealed token and the journal.
func (c *Config) SessionPath() string { return filepath.Join(c.Home, "session.db") }

// KeyPath is the secretbox key used to seal the stored token.
func (c *Config) KeyPath() string { return filepath.Join(c.Home, "session.key") }

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	home, err := defaultHome()
	if err != nil {
		return nil, err
	}

	timeout, err := getEnvInt("OKUYORUM_HTTP_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	redirect, err := getEnvInt("OKUYORUM_LOGIN_REDIRECT_SECONDS", 2)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "production"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		APIURL:        strings.TrimRight(getEnv("OKUYORUM_API_URL", "http://localhost:8080"), "/"),
		Home:          getEnv("OKUYORUM_HOME", home),
		HTTPTimeout:   time.Duration(timeout) * time.Second,
		LoginRedirect: time.Duration(redirect) * time.Second,
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("OKUYORUM_HTTP_TIMEOUT_SECONDS must be positive")
	}
	return cfg, nil
}

func defaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(dir, ".okuyorum"), nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}
