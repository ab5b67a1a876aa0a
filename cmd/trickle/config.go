package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/glamour"
)

const (
	rendererGoldmark = "goldmark"
	rendererGlamour  = "glamour"

	defaultGreeting = "Hello! I'm your AI hair service booking agent. I can help you find available hair services, available slots for booking, and creating appointments."
)

// Config is the contents of the config file after defaults and overrides.
type Config struct {
	BaseURL        string        `toml:"base_url"`
	Renderer       string        `toml:"renderer"`
	GlamourStyle   string        `toml:"glamour_style"`
	Greeting       string        `toml:"greeting"`
	Suggestions    []string      `toml:"suggestions"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	LogFile        string        `toml:"log_file"`
	LogLevel       string        `toml:"log_level"`
	CodeStyle      string        `toml:"code_style"`
}

// overrides holds values from the environment and flags. Empty fields are
// unset.
type overrides struct {
	envBaseURL   string
	baseURL      string
	renderer     string
	logFile      string
	logLevel     string
	codeStyle    string
	glamourStyle string
}

func defaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:8000",
		Renderer:     rendererGoldmark,
		GlamourStyle: glamour.StyleDark,
		Greeting:     defaultGreeting,
		Suggestions: []string{
			"What are the available hair services?",
			"When can I book a hair service appointment?",
			"I want to create a hair service appointment booking.",
		},
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
		CodeStyle:      trickle.DefaultTheme().CodeStyle,
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/trickle/config.toml, or "" when
// no config directory can be determined.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trickle", "config.toml")
}

// loadConfig reads the config file at path on top of the defaults. A missing
// file is tolerated unless it was named explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return defaultConfig(), nil
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q: %w", path, undecoded[0].String(), trickle.ErrValidation)
	}
	return cfg, nil
}

// apply layers environment and flag values over the file. The environment
// overrides the file and flags override both.
func (c Config) apply(o overrides) Config {
	if o.envBaseURL != "" {
		c.BaseURL = o.envBaseURL
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.BaseURL, o.baseURL)
	set(&c.Renderer, o.renderer)
	set(&c.LogFile, o.logFile)
	set(&c.LogLevel, o.logLevel)
	set(&c.CodeStyle, o.codeStyle)
	set(&c.GlamourStyle, o.glamourStyle)
	return c
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q: must be an http(s) URL: %w", c.BaseURL, trickle.ErrValidation)
	}
	switch c.Renderer {
	case rendererGoldmark, rendererGlamour:
	default:
		return fmt.Errorf("renderer %q: must be %q or %q: %w", c.Renderer, rendererGoldmark, rendererGlamour, trickle.ErrValidation)
	}
	switch c.GlamourStyle {
	case glamour.StyleDark, glamour.StyleLight, glamour.StyleNoTTY, glamour.StyleASCII:
	default:
		return fmt.Errorf("glamour_style %q: %w", c.GlamourStyle, trickle.ErrValidation)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if _, ok := styles.Registry[c.CodeStyle]; !ok {
		return fmt.Errorf("code_style %q: unknown chroma style: %w", c.CodeStyle, trickle.ErrValidation)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout %s: must not be negative: %w", c.RequestTimeout, trickle.ErrValidation)
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, trickle.ErrValidation)
	}
	return lvl, nil
}

func (c Config) theme() trickle.Theme {
	theme := trickle.DefaultTheme()
	theme.CodeStyle = c.CodeStyle
	return theme
}
