package main

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/bjev/cmd/bjev/shared"
	"github.com/lox/bjev/internal/ev"
)

// EdgeCmd computes the expected return of a whole round.
type EdgeCmd struct {
	Chart string `type:"existingfile" help:"Follow this chart instead of searching"`
	Basic bool   `help:"Follow the built-in basic strategy chart"`
}

func (c *EdgeCmd) Run(g *Globals) error {
	logger, cfg, err := g.setup()
	if err != nil {
		return err
	}
	strategy, err := loadStrategy(c.Chart, c.Basic)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	clock := quartz.NewReal()
	start := clock.Now()
	logger.Info("Computing expectation", "decks", decksLabel(cfg.Decks), "optimal", strategy.Optimal)

	got, err := ev.Expectation(ctx, cfg.Rules, strategy, cfg.Decks)
	if err != nil {
		return err
	}
	logger.Info("Expectation computed", "elapsed", clock.Since(start))

	fmt.Printf("%s %s\n", headerStyle.Render("Player expectation:"), renderPercent(got))
	return nil
}
