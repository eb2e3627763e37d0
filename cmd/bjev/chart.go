package main

import (
	"context"
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/bjev/cmd/bjev/shared"
	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/ev"
)

// ChartCmd solves a full strategy chart, or prints an existing one.
type ChartCmd struct {
	Basic   bool   `help:"Print the built-in basic strategy chart instead of solving"`
	Compare string `type:"existingfile" help:"Underline cells that differ from this chart"`
	Output  string `short:"o" type:"path" help:"Write the chart to this file"`
}

func (c *ChartCmd) Run(g *Globals) error {
	logger, cfg, err := g.setup()
	if err != nil {
		return err
	}

	var compare *chart.Chart
	if c.Compare != "" {
		other, err := chart.LoadFile(c.Compare)
		if err != nil {
			return err
		}
		compare = &other
	}

	var result chart.Chart
	if c.Basic {
		result = chart.Basic()
	} else {
		ctx := shared.SetupSignalHandler(logger)
		table, err := ev.NewBuilder(ev.BuildConfig{
			Rules:  cfg.Rules,
			Decks:  cfg.Decks,
			Logger: logger,
			Clock:  quartz.NewReal(),
		}).Build(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return context.Canceled
			}
			return err
		}
		result = table.Chart
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Strategy, %s decks, allowed %s", decksLabel(cfg.Decks), cfg.Rules.Allowed)))
	fmt.Print(renderChart(result, compare))

	if c.Output != "" {
		if err := result.WriteFile(c.Output); err != nil {
			return err
		}
		logger.Info("Chart written", "path", c.Output)
	}
	return nil
}
