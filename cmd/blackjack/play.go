package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/client"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/runid"
	"github.com/lox/blackjack/internal/session"
	"github.com/lox/blackjack/internal/tui"
)

const title = " ♠ ♥ Blackjack ♦ ♣ "

// PlayCmd runs an interactive session
type PlayCmd struct {
	Config  string `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`
	Name    string `short:"n" help:"Player name (overrides config, skips the name prompt)"`
	Tokens  int    `short:"t" help:"Starting tokens (overrides config)"`
	Seed    *int64 `help:"Deterministic RNG seed (overrides config)"`
	TUI     bool   `help:"Use the full-screen terminal UI"`
	NoColor bool   `help:"Disable colored output"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	// Apply command line overrides
	if c.Name != "" {
		cfg.Game.PlayerName = c.Name
	}
	if c.Tokens != 0 {
		cfg.Game.StartingTokens = c.Tokens
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.NoColor {
		cfg.SetColor(false)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	clock := quartz.NewReal()
	logger := newLogger(logFile, cfg.LogLevel(), "blackjack").
		With("session", runid.NewGenerator(clock, nil).New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := session.Options{
		PlayerName:     cfg.Game.PlayerName,
		StartingTokens: cfg.Game.StartingTokens,
		DealerName:     cfg.Game.DealerName,
		Seed:           cfg.Game.Seed,
		Logger:         logger,
		Clock:          clock,
	}

	if c.TUI {
		m := tui.NewModel(logger)
		d := display.New(m.Transcript(), cfg.ColorEnabled())
		d.Title(title)
		opts.Display = d

		s := session.New(opts)
		logger.Info("Starting session", "mode", "tui", "seed", s.Seed(), "tokens", s.Tokens())
		m.SetSession(s)
		return tui.Run(ctx, m)
	}

	d := display.New(os.Stdout, cfg.ColorEnabled())
	d.Title(title)
	opts.Display = d

	s := session.New(opts)
	logger.Info("Starting session", "mode", "line", "seed", s.Seed(), "tokens", s.Tokens())
	return client.New(s, d, os.Stdin, logger).Run(ctx)
}
