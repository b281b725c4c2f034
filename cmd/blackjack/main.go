package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
)

var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// CLI is the top-level command line
type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version information"`
	Config   string           `short:"c" default:"${config_file}" help:"HCL configuration file" type:"path"`
	Seed     int64            `help:"RNG seed (0 for time-based)"`
	LogLevel string           `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool             `help:"Disable colored output"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play at a local blackjack table"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-only tables and report statistics"`
}

// loadConfig reads and validates the configuration, applying global flags
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.Config, err)
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Multi-player blackjack against the house"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
		kong.Bind(&cli),
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ctx.FatalIfErrorf(ctx.Run())
}
