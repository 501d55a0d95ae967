package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays rounds automatically and reports the house edge
type SimulateCmd struct {
	Config  string `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`
	Rounds  int    `help:"Number of rounds to simulate (overrides config)"`
	Workers int    `help:"Parallel workers (overrides config)"`
	Bet     int    `help:"Tokens bet each round (overrides config)"`
	StandOn int    `help:"Player stands on this total or higher (overrides config)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Output  string `short:"o" help:"Write a JSON report to this file"`
	Verbose bool   `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	if c.Rounds != 0 {
		cfg.Simulation.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Bet != 0 {
		cfg.Simulation.Bet = c.Bet
	}
	if c.StandOn != 0 {
		cfg.Simulation.StandOn = c.StandOn
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level, "simulate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds:  cfg.Simulation.Rounds,
		Workers: cfg.Simulation.Workers,
		Bet:     cfg.Simulation.Bet,
		StandOn: cfg.Simulation.StandOn,
		Seed:    c.Seed,
		Logger:  logger,
		Clock:   quartz.NewReal(),
	})

	fmt.Printf("Starting simulation: %d rounds, %d workers, standing on %d\n",
		cfg.Simulation.Rounds, cfg.Simulation.Workers, cfg.Simulation.StandOn)

	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Printf("Run: %s (seed: %d)\n", sim.RunID(), sim.Seed())
	simulator.PrintSummary(os.Stdout, stats, cfg.Simulation.StandOn)

	if c.Output != "" {
		if err := simulator.WriteReport(c.Output, sim.Report(stats)); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", c.Output)
	}
	return nil
}
