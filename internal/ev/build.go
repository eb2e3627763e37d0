package ev

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// Table is a solved strategy chart with the EV of every action in every cell.
type Table struct {
	Chart chart.Chart
	EV    [chart.DealerRows][chart.PlayerCols][rules.NumActions]float64
}

// BuildConfig holds configuration for solving a full chart.
type BuildConfig struct {
	Rules   rules.Rules
	Decks   int
	Options []Option
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Builder solves every cell of a strategy chart with the optimal strategy.
type Builder struct {
	config BuildConfig
}

// NewBuilder creates a builder. A nil logger discards output and a nil clock
// uses the real clock.
func NewBuilder(config BuildConfig) *Builder {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Builder{config: config}
}

// Build solves the chart. Each dealer up-card is solved on its own goroutine.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	start := b.config.Clock.Now()
	b.config.Logger.Info("Solving chart", "decks", b.config.Decks, "allowed", b.config.Rules.Allowed)

	table := &Table{}
	stats := make([]Stats, chart.DealerRows)

	g, ctx := errgroup.WithContext(ctx)
	for row, up := range shoe.Ranks {
		g.Go(func() error {
			rowStart := b.config.Clock.Now()
			solver := NewSolver(b.config.Rules, chart.Optimal(), b.config.Options...)
			for col := 0; col < chart.PlayerCols; col++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				pos, err := CellDeal(col, up, b.config.Decks)
				if err != nil {
					return err
				}
				res := solver.Evaluate(1, pos.Hand, pos.Dealer, pos.Shoe)
				table.Chart.Set(row, col, res.Best)
				table.EV[row][col] = res.EV
			}
			stats[row] = solver.Stats()
			b.config.Logger.Debug("Solved dealer card",
				"dealer", up,
				"decisions", stats[row].Decisions,
				"dealer_nodes", stats[row].DealerNodes,
				"memo_hits", stats[row].MemoHits,
				"elapsed", b.config.Clock.Since(rowStart))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total Stats
	for _, st := range stats {
		total.Decisions += st.Decisions
		total.DealerNodes += st.DealerNodes
		total.MemoHits += st.MemoHits
	}
	b.config.Logger.Info("Chart solved",
		"decisions", total.Decisions,
		"dealer_nodes", total.DealerNodes,
		"elapsed", b.config.Clock.Since(start))
	return table, nil
}

// CellDeal returns the position for a chart cell: the representative
// two-card hand for the column against the up-card, dealt from a fresh shoe.
func CellDeal(col int, up shoe.Rank, decks int) (Position, error) {
	cards, err := cellCards(col)
	if err != nil {
		return Position{}, err
	}
	pos, err := NewPosition(decks, cards, []shoe.Rank{up}, nil)
	if err != nil {
		return Position{}, fmt.Errorf("deal %s: %w", chart.Label(col), err)
	}
	return pos, nil
}

func cellCards(col int) ([]shoe.Rank, error) {
	switch {
	case col < 0 || col >= chart.PlayerCols:
		return nil, fmt.Errorf("column %d out of range", col)
	case col < chart.FirstSoft:
		total := 19 - col
		if total <= 12 {
			return []shoe.Rank{shoe.Two, shoe.Rank(total - 2)}, nil
		}
		return []shoe.Rank{shoe.Rank(total - 10), shoe.Ten}, nil
	case col < chart.FirstPair:
		return []shoe.Rank{shoe.Ace, shoe.Rank(36 - col - 11)}, nil
	default:
		r := shoe.Rank(35 - col)
		return []shoe.Rank{r, r}, nil
	}
}
