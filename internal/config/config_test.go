package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvLogLevel, EnvLogFile, EnvTheme} {
		t.Setenv(k, "")
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestLoadFile_Environment(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvAPIURL, "https://shop.example.com/api")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFile, "stderr")
	t.Setenv(EnvTheme, "neon")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "stderr", cfg.LogFile)
	assert.Equal(t, "neon", cfg.Theme)
}

func TestLoadFile_DotEnv(t *testing.T) {
	clearEnvVars(t)
	// godotenv does not override variables that are set, even to "".
	require.NoError(t, os.Unsetenv(EnvAPIURL))
	require.NoError(t, os.Unsetenv(EnvTheme))
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvAPIURL)
		_ = os.Unsetenv(EnvTheme)
	})

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ITEMS_API_URL=http://backend-dev:8000\nITEMS_THEME=mono\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend-dev:8000", cfg.APIURL)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoadFile_LeavesValidationToCaller(t *testing.T) {
	clearEnvVars(t)
	t.Setenv(EnvLogLevel, "verbose")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.LogLevel)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)

	cfg.LogLevel = "debug"
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{APIURL: DefaultAPIURL, LogLevel: "info", LogFile: "x.log", Theme: "classic"}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.APIURL = "/api" }, wantErr: ErrInvalidAPIURL},
		{name: "ftp url", mutate: func(c *Config) { c.APIURL = "ftp://host/api" }, wantErr: ErrInvalidAPIURL},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: ErrInvalidLogLevel},
		{name: "empty log file", mutate: func(c *Config) { c.LogFile = " " }, wantErr: ErrInvalidLogFile},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "pink" }, wantErr: ErrInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
