package main

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/bjev/internal/ev"
	"github.com/lox/bjev/internal/shoe"
)

// EvalCmd computes the EV of every action for one position.
type EvalCmd struct {
	Player  string `arg:"" help:"Player cards, e.g. 'T6', '10,6' or 'A A'"`
	Dealer  string `arg:"" help:"Dealer cards, usually just the up-card"`
	Removed string `short:"r" help:"Other cards already seen, removed from the shoe"`
	Chart   string `type:"existingfile" help:"Follow this chart instead of searching"`
	Basic   bool   `help:"Follow the built-in basic strategy chart"`
	NoMemo  bool   `name:"no-memo" help:"Disable result caching"`
}

func (c *EvalCmd) Run(g *Globals) error {
	logger, cfg, err := g.setup()
	if err != nil {
		return err
	}

	player, err := shoe.ParseRanks(c.Player)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	dealer, err := shoe.ParseRanks(c.Dealer)
	if err != nil {
		return fmt.Errorf("dealer: %w", err)
	}
	var removed []shoe.Rank
	if c.Removed != "" {
		if removed, err = shoe.ParseRanks(c.Removed); err != nil {
			return fmt.Errorf("removed: %w", err)
		}
	}

	strategy, err := loadStrategy(c.Chart, c.Basic)
	if err != nil {
		return err
	}
	pos, err := ev.NewPosition(cfg.Decks, player, dealer, removed)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	start := clock.Now()
	solver := ev.NewSolver(cfg.Rules, strategy, ev.WithMemo(!c.NoMemo))
	res := pos.Evaluate(solver)
	stats := solver.Stats()
	logger.Debug("Evaluated",
		"decisions", stats.Decisions,
		"dealer_nodes", stats.DealerNodes,
		"memo_hits", stats.MemoHits,
		"elapsed", clock.Since(start))

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s vs dealer %s, %s decks", pos.Hand, pos.Dealer, decksLabel(cfg.Decks))))
	fmt.Print(renderResult(res, ev.Legal(pos.Hand, pos.Dealer, cfg.Rules)))
	return nil
}
