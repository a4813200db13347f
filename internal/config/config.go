// Package config loads client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	DefaultAPIURL   = "http://localhost:8080/api"
	DefaultLogLevel = "info"
	DefaultLogFile  = "items.log"
	DefaultTheme    = "classic"
)

// Environment variable names.
const (
	EnvAPIURL   = "ITEMS_API_URL"
	EnvLogLevel = "ITEMS_LOG_LEVEL"
	EnvLogFile  = "ITEMS_LOG_FILE"
	EnvTheme    = "ITEMS_THEME"
)

// Config holds the client configuration.
type Config struct {
	APIURL   string // collaborator base, including the /api prefix
	LogLevel string
	LogFile  string // where the interactive view logs; "stderr" is allowed
	Theme    string
}

// Validation errors.
var (
	ErrInvalidAPIURL   = errors.New("api url must be an absolute http(s) URL")
	ErrInvalidLogLevel = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidLogFile  = errors.New("log file cannot be empty")
	ErrInvalidTheme    = errors.New("theme must be one of: classic, neon, mono")
)

// Load reads an optional .env file, then environment variables over defaults.
// The result is not validated: callers apply their overrides, then call Validate.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored;
// variables already set in the environment win over the file.
func LoadFile(dotenv string) (*Config, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", dotenv, err)
	}

	cfg := &Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogFile,
		Theme:    DefaultTheme,
	}
	cfg.loadFromEnv()
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = strings.ToLower(v)
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIURL
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if strings.TrimSpace(c.LogFile) == "" {
		return ErrInvalidLogFile
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return ErrInvalidTheme
	}
	return nil
}
