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
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays bot-only tables and reports the results. Flags override
// the simulation block of the config file.
type SimulateCmd struct {
	Rounds   int    `short:"n" help:"Rounds per table"`
	Tables   int    `short:"t" help:"Tables to run in parallel"`
	Players  int    `short:"p" help:"Bots per table (1-7)"`
	Strategy string `short:"s" help:"Bot strategy: basic, dealer, random, threshold:N"`
	Timeout  string `help:"Stop after this long, e.g. 30s"`
	Report   string `short:"o" help:"Write a JSON report to this file" type:"path"`
	Quiet    bool   `short:"q" help:"Hide the progress bar"`
}

func (cmd *SimulateCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	cmd.apply(cfg.Simulation)
	if cli.Seed != 0 {
		cfg.Simulation.Seed = cli.Seed
	}
	// Flags bypass the file validation, so check again
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid simulation settings: %w", err)
	}
	timeout, err := cfg.Simulation.TimeoutDuration()
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "SIM",
		Level:           level,
	})

	clock := quartz.NewReal()
	sim := cfg.Simulation
	simCfg := simulator.Config{
		Tables:       sim.Tables,
		Rounds:       sim.Rounds,
		Players:      sim.Players,
		Strategy:     sim.Strategy,
		Seed:         randutil.Seed(sim.Seed),
		Decks:        cfg.Table.Decks,
		StartingBank: cfg.Table.StartingBank,
		Bet:          cfg.Table.DefaultBet,
		DealerBank:   cfg.Table.DealerBank,
		DealerStand:  cfg.Table.DealerStand,
		Timeout:      timeout,
		Clock:        clock,
		Logger:       logger,
	}

	var progress *progressMonitor
	if !cmd.Quiet {
		progress = newProgressMonitor(os.Stderr, clock, sim.Tables, sim.Rounds)
		simCfg.Progress = progress.OnRound
	}

	s, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack Simulation ♦ ♣ "))
	if progress != nil {
		progress.Start(sim.Tables, sim.Rounds)
	}
	report, err := s.Run(ctx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Print(report.String())

	if sim.Report != "" {
		if err := report.WriteJSON(sim.Report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", sim.Report)
	}
	return nil
}

func (cmd *SimulateCmd) apply(sim *config.SimulationSettings) {
	if cmd.Rounds != 0 {
		sim.Rounds = cmd.Rounds
	}
	if cmd.Tables != 0 {
		sim.Tables = cmd.Tables
	}
	if cmd.Players != 0 {
		sim.Players = cmd.Players
	}
	if cmd.Strategy != "" {
		sim.Strategy = cmd.Strategy
	}
	if cmd.Timeout != "" {
		sim.Timeout = cmd.Timeout
	}
	if cmd.Report != "" {
		sim.Report = cmd.Report
	}
}
