package main

import (
	"fmt"
	"strings"

	"github.com/coder/quartz"

	"github.com/lox/bjev/cmd/bjev/shared"
	"github.com/lox/bjev/internal/play"
	"github.com/lox/bjev/internal/randutil"
)

// DealCmd deals random rounds and plays each by the engine's decisions.
type DealCmd struct {
	Rounds int    `short:"n" default:"10" help:"Number of rounds to deal"`
	Seed   *int64 `help:"Deterministic RNG seed (optional)"`
	Chart  string `type:"existingfile" help:"Follow this chart instead of searching"`
	Basic  bool   `help:"Follow the built-in basic strategy chart"`
}

func (c *DealCmd) Run(g *Globals) error {
	logger, cfg, err := g.setup()
	if err != nil {
		return err
	}
	strategy, err := loadStrategy(c.Chart, c.Basic)
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed, quartz.NewReal())
	logger.Info("Dealing", "rounds", c.Rounds, "seed", seed)

	sim := play.New(play.Config{
		Rules:    cfg.Rules,
		Strategy: strategy,
		Decks:    cfg.Decks,
		Rounds:   c.Rounds,
		Seed:     seed,
		Logger:   logger,
	})
	rounds, sum, err := sim.Run(shared.SetupSignalHandler(logger))
	if err != nil {
		return err
	}

	for i, round := range rounds {
		actions := make([]string, len(round.Actions))
		for j, a := range round.Actions {
			actions[j] = a.String()
		}
		fmt.Printf("%3d  %-16s vs %-2s  %-24s dealer %-10s ev %+.3f  net %s\n",
			i+1, round.Opening, round.Up, strings.Join(actions, ","),
			round.Dealer, round.Expected, renderNet(round.Net))
	}
	fmt.Printf("%s %s over %d rounds (expected %+.3f)\n",
		headerStyle.Render("Net:"), renderNet(sum.Net), sum.Rounds, sum.Expected)
	return nil
}
