package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/trickle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := loadConfig("", false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Suggestions, 3)
	assert.Equal(t, defaultGreeting, cfg.Greeting)
}

func TestLoadConfig_MissingDefaultFileIsTolerated(t *testing.T) {
	t.Parallel()
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	t.Parallel()
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
base_url = "https://salon.example.com"
renderer = "glamour"
glamour_style = "light"
greeting = "Welcome!"
suggestions = ["one", "two"]
request_timeout = "5s"
log_level = "debug"
code_style = "dracula"
`)
	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "https://salon.example.com", cfg.BaseURL)
	assert.Equal(t, rendererGlamour, cfg.Renderer)
	assert.Equal(t, "light", cfg.GlamourStyle)
	assert.Equal(t, "Welcome!", cfg.Greeting)
	assert.Equal(t, []string{"one", "two"}, cfg.Suggestions)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "dracula", cfg.CodeStyle)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `log_level = "warn"`)
	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, defaultConfig().BaseURL, cfg.BaseURL)
	assert.Equal(t, defaultConfig().Suggestions, cfg.Suggestions)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `colour = "blue"`)
	_, err := loadConfig(path, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, trickle.ErrValidation)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `base_url = `)
	_, err := loadConfig(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestConfig_Apply(t *testing.T) {
	t.Parallel()

	t.Run("env overrides file", func(t *testing.T) {
		t.Parallel()
		cfg := defaultConfig().apply(overrides{envBaseURL: "http://env:1"})
		assert.Equal(t, "http://env:1", cfg.BaseURL)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Parallel()
		cfg := defaultConfig().apply(overrides{envBaseURL: "http://env:1", baseURL: "http://flag:2"})
		assert.Equal(t, "http://flag:2", cfg.BaseURL)
	})

	t.Run("empty overrides keep file values", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, defaultConfig(), defaultConfig().apply(overrides{}))
	})

	t.Run("flags set remaining fields", func(t *testing.T) {
		t.Parallel()
		cfg := defaultConfig().apply(overrides{
			renderer:     rendererGlamour,
			logFile:      "/tmp/trickle.log",
			logLevel:     "error",
			codeStyle:    "github",
			glamourStyle: "ascii",
		})
		assert.Equal(t, rendererGlamour, cfg.Renderer)
		assert.Equal(t, "/tmp/trickle.log", cfg.LogFile)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "github", cfg.CodeStyle)
		assert.Equal(t, "ascii", cfg.GlamourStyle)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"relative URL", func(c *Config) { c.BaseURL = "/api" }, "base_url"},
		{"unsupported scheme", func(c *Config) { c.BaseURL = "ftp://host" }, "base_url"},
		{"unknown renderer", func(c *Config) { c.Renderer = "pandoc" }, "renderer"},
		{"unknown glamour style", func(c *Config) { c.GlamourStyle = "neon" }, "glamour_style"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"unknown code style", func(c *Config) { c.CodeStyle = "no-such-style" }, "code_style"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, "request_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, trickle.ErrValidation)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Theme(t *testing.T) {
	t.Parallel()
	cfg := defaultConfig()
	cfg.CodeStyle = "dracula"
	theme := cfg.theme()
	assert.Equal(t, "dracula", theme.CodeStyle)
	assert.Equal(t, trickle.DefaultTheme().UserMsg, theme.UserMsg)
}
