package ev

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// Expectation returns the player's expected return per unit bet over every
// opening deal from a fresh shoe: the dealer's up-card first, then the
// player's two cards, each drawn from the depleting shoe. Each up-card is
// solved on its own goroutine with its own Solver.
func Expectation(ctx context.Context, r rules.Rules, strategy chart.Strategy, decks int, opts ...Option) (float64, error) {
	parts := make([]float64, shoe.NumRanks)

	g, ctx := errgroup.WithContext(ctx)
	for i, up := range shoe.Ranks {
		g.Go(func() error {
			solver := NewSolver(r, strategy, opts...)
			ev, err := upCardExpectation(ctx, solver, decks, up)
			if err != nil {
				return err
			}
			parts[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0.0
	for _, ev := range parts {
		total += ev
	}
	return total, nil
}

func upCardExpectation(ctx context.Context, solver *Solver, decks int, up shoe.Rank) (float64, error) {
	sh := shoe.NewShoe(decks)
	var dealer shoe.Hand
	pd := sh.DealTo(&dealer, up)
	if pd == 0 {
		return 0, nil
	}

	total := 0.0
	for _, first := range shoe.Ranks {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		s0 := sh
		var hand shoe.Hand
		p0 := s0.DealTo(&hand, first)
		if p0 == 0 {
			continue
		}
		for _, second := range shoe.Ranks {
			s1 := s0
			h := hand
			p1 := s1.DealTo(&h, second)
			if p1 == 0 {
				continue
			}
			total += pd * p0 * p1 * solver.Evaluate(1, h, dealer, s1).BestEV()
		}
	}
	return total, nil
}
