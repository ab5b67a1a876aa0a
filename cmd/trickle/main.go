// Command trickle is a terminal client for a streaming chat backend.
//
// Usage:
//
//	trickle [flags]
//	TRICKLE_BASE_URL=http://host:8000 trickle -p "What services do you offer?"
//
// Flags:
//
//	-config string     Path to config file (default: $XDG_CONFIG_HOME/trickle/config.toml)
//	-base-url string   Backend base URL (overrides TRICKLE_BASE_URL and the config file)
//	-p string          Send one prompt, print the reply and exit
//	-sync              With -p, use the non-streaming chat endpoint
//	-health            Print the backend health status and exit
//	-format string     Print mode output: text, ansi, html (default: ansi on a terminal, text otherwise)
//	-renderer string   Markdown renderer: goldmark, glamour
//	-style string      Glamour style: dark, light, notty, ascii
//	-code-style string Chroma style for fenced code blocks
//	-log string        Append JSON logs to this file
//	-log-level string  Log level: debug, info, warn, error
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/agent"
	"github.com/fwojciec/trickle/api"
	bt "github.com/fwojciec/trickle/bubbletea"
	"golang.org/x/term"
)

const defaultWidth = 80

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trickle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "Path to config file")
		baseURL    = flag.String("base-url", "", "Backend base URL")
		prompt     = flag.String("p", "", "Send one prompt, print the reply and exit")
		syncChat   = flag.Bool("sync", false, "With -p, use the non-streaming chat endpoint")
		healthFlag = flag.Bool("health", false, "Print the backend health status and exit")
		format     = flag.String("format", "", "Print mode output: text, ansi, html")
		renderer   = flag.String("renderer", "", "Markdown renderer: goldmark, glamour")
		style      = flag.String("style", "", "Glamour style: dark, light, notty, ascii")
		codeStyle  = flag.String("code-style", "", "Chroma style for fenced code blocks")
		logPath    = flag.String("log", "", "Append JSON logs to this file")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, explicit := *configPath, *configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	cfg = cfg.apply(overrides{
		envBaseURL:   os.Getenv("TRICKLE_BASE_URL"),
		baseURL:      *baseURL,
		renderer:     *renderer,
		logFile:      *logPath,
		logLevel:     *logLevel,
		codeStyle:    *codeStyle,
		glamourStyle: *style,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if *format == "" {
		*format = formatText
		if stdoutTTY {
			*format = formatANSI
		}
	}
	if err := validateFormat(*format); err != nil {
		return err
	}
	if *syncChat && *prompt == "" {
		return fmt.Errorf("-sync requires -p: %w", trickle.ErrValidation)
	}

	// Set up logging.
	level, _ := cfg.level()
	f, err := openLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	var logW io.Writer
	if f != nil {
		defer f.Close()
		logW = f
	}
	tui := *prompt == "" && !*healthFlag
	logger := newLogger(level, logW, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), tui)

	client := api.New(
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	)
	loop := agent.New(client, agent.WithLogger(logger))

	theme := cfg.theme()
	render, err := newRenderFunc(cfg, theme, logger)
	if err != nil {
		return err
	}

	if *healthFlag {
		return health(ctx, os.Stdout, client)
	}

	if *prompt != "" {
		p := printer{w: os.Stdout, format: *format, render: render, width: terminalWidth(stdoutTTY)}
		if *syncChat {
			return p.chat(ctx, client, *prompt)
		}
		return p.stream(ctx, loop, *prompt)
	}

	// Build agent function closure for the TUI.
	agentFn := func(ctx context.Context, prompt string, onEvent func(trickle.Event)) error {
		return loop.Run(ctx, prompt, agent.WithEventHandler(onEvent))
	}

	conv := trickle.NewConversation(trickle.WithGreeting(cfg.Greeting))
	model := bt.New(agentFn, conv, bt.Config{
		Theme:       theme,
		Render:      render,
		Suggestions: cfg.Suggestions,
		Logger:      logger,
	})
	logger.Info("starting", "base_url", cfg.BaseURL, "renderer", cfg.Renderer)

	if err := bt.Run(ctx, model); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// terminalWidth returns stdout's width, or defaultWidth when it is not a
// terminal.
func terminalWidth(tty bool) int {
	if !tty {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
