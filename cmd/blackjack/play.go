package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive table in the terminal
type PlayCmd struct {
	HistoryDir string `help:"Write a text history of every round to this directory"`
	LogFile    string `help:"Override the configured log file"`
}

func (cmd *PlayCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if cmd.LogFile != "" {
		cfg.Log.File = cmd.LogFile
	}
	if cmd.HistoryDir != "" {
		cfg.Log.HistoryDir = cmd.HistoryDir
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
		Level:           level,
	})

	seed := randutil.Seed(cli.Seed)
	logger.Info("Starting table", "seed", seed, "decks", cfg.Table.Decks, "seats", len(cfg.Seats))

	opts := append(cfg.TableOptions(), game.WithLogger(logger))
	g := game.NewGame(randutil.New(seed), opts...)

	var history *game.RoundHistory
	if cfg.Log.HistoryDir != "" {
		history = game.NewRoundHistory(game.NewFileRoundHistoryWriter(cfg.Log.HistoryDir), seed)
		g.EventBus().Subscribe(history)
	}

	seats, err := tableSeats(cfg, seed, logger)
	if err != nil {
		return err
	}

	model, err := tui.New(g, seats, logger)
	if err != nil {
		return fmt.Errorf("failed to seat players: %w", err)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Printf("Played %d rounds (seed %d)\n", g.Round(), seed)

	if history != nil {
		if err := history.Err(); err != nil {
			return fmt.Errorf("failed to write round history: %w", err)
		}
	}
	return nil
}

// tableSeats turns configured seats into TUI seats. Seats with a bot are
// played by the computer, each with its own derived RNG.
func tableSeats(cfg *config.Config, seed int64, logger *log.Logger) ([]tui.Seat, error) {
	seats := make([]tui.Seat, 0, len(cfg.Seats))
	for i, sc := range cfg.Seats {
		seat := tui.Seat{Name: sc.Name, Bet: sc.Bet}
		if sc.Bot != "" {
			agent, err := bot.New(sc.Bot, randutil.Derive(seed, i+1), logger)
			if err != nil {
				return nil, fmt.Errorf("seat %q: %w", sc.Name, err)
			}
			seat.Agent = agent
		}
		seats = append(seats, seat)
	}
	return seats, nil
}
