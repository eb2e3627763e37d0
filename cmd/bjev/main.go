package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/bjev/cmd/bjev/shared"
	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug   bool     `help:"Enable debug logging"`
	NoColor bool     `name:"no-color" help:"Disable colored output"`
	Config  string   `short:"c" default:"bjev.hcl" env:"BJEV_CONFIG" help:"Rules file (HCL); missing means defaults"`
	Decks   *int     `short:"d" help:"Override the deck count (-1 for an infinite shoe)"`
	Allow   []string `sep:"," help:"Override the allowed actions, e.g. stand,hit,double"`
	H17     bool     `name:"h17" help:"Dealer hits soft 17"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Compute the EV of every action for one hand"`
	Chart   ChartCmd         `cmd:"" help:"Solve or print a full strategy chart"`
	Edge    EdgeCmd          `cmd:"" help:"Compute the player's expected return over every deal"`
	Deal    DealCmd          `cmd:"" help:"Deal random rounds and play them by the numbers"`
	Serve   ServeCmd         `cmd:"" help:"Serve the EV engine over HTTP"`
}

// setup builds the logger and the effective configuration.
func (g *Globals) setup() (*log.Logger, rules.Config, error) {
	logger := shared.SetupLogger(g.Debug)
	if g.NoColor {
		shared.DisableColor(logger)
	}

	cfg, err := rules.LoadConfig(g.Config)
	if err != nil {
		return logger, cfg, err
	}
	if g.Decks != nil {
		cfg.Decks = *g.Decks
	}
	if len(g.Allow) > 0 {
		set, err := rules.ParseActionSet(g.Allow)
		if err != nil {
			return logger, cfg, err
		}
		cfg.Rules.Allowed = set
	}
	if g.H17 {
		cfg.Rules.DealerHitsSoft17 = true
	}
	if err := cfg.Validate(); err != nil {
		return logger, cfg, fmt.Errorf("%s: %w", g.Config, err)
	}

	logger.Debug("Configuration loaded",
		"file", g.Config,
		"decks", cfg.Decks,
		"allowed", cfg.Rules.Allowed,
		"h17", cfg.Rules.DealerHitsSoft17)
	return logger, cfg, nil
}

// loadStrategy returns the chart strategy selected by a command's flags, or
// the optimal strategy when none is.
func loadStrategy(path string, basic bool) (chart.Strategy, error) {
	switch {
	case path != "":
		c, err := chart.LoadFile(path)
		if err != nil {
			return chart.Strategy{}, err
		}
		return chart.Follow(c), nil
	case basic:
		return chart.Follow(chart.Basic()), nil
	default:
		return chart.Optimal(), nil
	}
}

func decksLabel(decks int) string {
	if decks == shoe.Infinite {
		return "infinite"
	}
	return fmt.Sprintf("%d", decks)
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjev"),
		kong.Description("Exact blackjack expected values"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
