// internal/config/config.go
//
// Process configuration from the environment.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MinCodeLength = 4
	MaxCodeLength = 8
)

// Config holds every tunable of the bot process.
type Config struct {
	BotToken        string
	Port            string
	LogLevel        string
	LogFormat       string // "json" or "console"
	DBPath          string // empty disables the stats ledger
	DefaultLives    int
	CodeLength      int
	SendImages      bool
	ImageCacheSize  int
	TelegramTimeout time.Duration
}

// Load reads .env (if any) and the environment, then validates.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment without touching .env.
func FromEnv() (Config, error) {
	var errs []error
	c := Config{
		BotToken:  strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		Port:      getEnv("PORT", "8000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		DBPath:    os.Getenv("DB_PATH"),
	}
	c.DefaultLives = envInt("DEFAULT_LIVES", 6, &errs)
	c.CodeLength = envInt("CODE_LENGTH", 5, &errs)
	c.SendImages = envBool("SEND_IMAGES", true, &errs)
	c.ImageCacheSize = envInt("IMAGE_CACHE_SIZE", 64, &errs)
	c.TelegramTimeout = time.Duration(envInt("TELEGRAM_TIMEOUT", 60, &errs)) * time.Second

	if c.BotToken == "" {
		errs = append(errs, errors.New("BOT_TOKEN is required"))
	}
	if c.DefaultLives < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_LIVES must be at least 1, got %d", c.DefaultLives))
	}
	if c.CodeLength < MinCodeLength || c.CodeLength > MaxCodeLength {
		errs = append(errs, fmt.Errorf("CODE_LENGTH must be within %d..%d, got %d", MinCodeLength, MaxCodeLength, c.CodeLength))
	}
	if c.ImageCacheSize < 1 {
		errs = append(errs, fmt.Errorf("IMAGE_CACHE_SIZE must be positive, got %d", c.ImageCacheSize))
	}
	if c.TelegramTimeout < 0 {
		errs = append(errs, errors.New("TELEGRAM_TIMEOUT must not be negative"))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	return c, errors.Join(errs...)
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return ":" + c.Port }

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int, errs *[]error) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}

func envBool(k string, def bool, errs *[]error) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return b
}
