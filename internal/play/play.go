// Package play deals random rounds and plays them with the EV engine's
// decisions, to show what the numbers mean at the table.
package play

import (
	"context"
	"errors"
	"fmt"
	"io"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/ev"
	"github.com/lox/bjev/internal/randutil"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// ErrShoeExhausted is returned when a finite shoe runs out mid-round.
var ErrShoeExhausted = errors.New("shoe exhausted")

// Config holds configuration for dealing rounds.
type Config struct {
	Rules    rules.Rules
	Strategy chart.Strategy
	Decks    int
	Rounds   int
	Seed     int64
	Logger   *log.Logger
}

// Seat is one finished player hand. A split produces several.
type Seat struct {
	Hand        shoe.Hand
	Bet         float64
	Surrendered bool
	Net         float64
}

// Round is the record of one dealt round.
type Round struct {
	Up       shoe.Rank
	Opening  shoe.Hand
	Dealer   shoe.Hand
	Actions  []rules.Action
	Seats    []Seat
	Expected float64
	Net      float64
}

// Summary totals a run.
type Summary struct {
	Rounds   int
	Net      float64
	Expected float64
}

// Simulator deals and plays rounds.
type Simulator struct {
	config Config
	rng    *rand.Rand
}

// New creates a simulator. Rounds are reproducible for a given seed.
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, rng: randutil.New(config.Seed)}
}

// Run plays the configured number of rounds, each from a fresh shoe.
func (s *Simulator) Run(ctx context.Context) ([]Round, Summary, error) {
	var rounds []Round
	var sum Summary
	for i := 0; i < s.config.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			return rounds, sum, err
		}
		round, err := s.PlayRound()
		if err != nil {
			return rounds, sum, fmt.Errorf("round %d: %w", i+1, err)
		}
		rounds = append(rounds, round)
		sum.Rounds++
		sum.Net += round.Net
		sum.Expected += round.Expected

		s.config.Logger.Debug("Round played",
			"round", i+1,
			"up", round.Up,
			"player", round.Opening,
			"actions", round.Actions,
			"net", round.Net)
	}
	return rounds, sum, nil
}

// PlayRound deals one round: up-card, two player cards, the player's
// decisions, then the dealer's hand.
func (s *Simulator) PlayRound() (Round, error) {
	sh := shoe.NewShoe(s.config.Decks)
	solver := ev.NewSolver(s.config.Rules, s.config.Strategy)

	var round Round
	var dealer, hand shoe.Hand
	up, ok := sh.Deal(s.rng, &dealer)
	if !ok {
		return round, ErrShoeExhausted
	}
	for range 2 {
		if _, ok := sh.Deal(s.rng, &hand); !ok {
			return round, ErrShoeExhausted
		}
	}
	round.Up = up
	round.Opening = hand
	round.Expected = solver.Evaluate(1, hand, dealer, sh).BestEV()

	seats, err := s.playHand(solver, &sh, hand, dealer, s.config.Rules, 1, &round.Actions)
	if err != nil {
		return round, err
	}

	dealer, err = s.playDealer(&sh, dealer)
	if err != nil {
		return round, err
	}
	round.Dealer = dealer

	for i := range seats {
		seats[i].Net = settle(seats[i], dealer)
		round.Net += seats[i].Net
	}
	round.Seats = seats
	return round, nil
}

func (s *Simulator) playHand(solver *ev.Solver, sh *shoe.Shoe, hand, dealer shoe.Hand, r rules.Rules, bet float64, actions *[]rules.Action) ([]Seat, error) {
	for {
		if hand.IsBust() {
			return []Seat{{Hand: hand.Normalized(), Bet: bet}}, nil
		}
		res := solver.Decide(1, hand, dealer, *sh, r.Allowed)
		*actions = append(*actions, res.Best)

		switch res.Best {
		case rules.Hit:
			if _, ok := sh.Deal(s.rng, &hand); !ok {
				return nil, ErrShoeExhausted
			}
			r = r.AfterHit()
		case rules.Double:
			if _, ok := sh.Deal(s.rng, &hand); !ok {
				return nil, ErrShoeExhausted
			}
			return []Seat{{Hand: hand.Normalized(), Bet: 2 * bet}}, nil
		case rules.Split:
			half := hand.Split()
			sr := r.AfterSplit(hand.PairRank() == shoe.Ace)
			// The second half gets its card only once the first is finished.
			h0, h1 := half, half
			if _, ok := sh.Deal(s.rng, &h0); !ok {
				return nil, ErrShoeExhausted
			}
			first, err := s.playHand(solver, sh, h0, dealer, sr, bet, actions)
			if err != nil {
				return nil, err
			}
			if _, ok := sh.Deal(s.rng, &h1); !ok {
				return nil, ErrShoeExhausted
			}
			second, err := s.playHand(solver, sh, h1, dealer, sr, bet, actions)
			if err != nil {
				return nil, err
			}
			return append(first, second...), nil
		case rules.Surrender:
			return []Seat{{Hand: hand.Normalized(), Bet: bet, Surrendered: true}}, nil
		default:
			return []Seat{{Hand: hand.Normalized(), Bet: bet}}, nil
		}
	}
}

func (s *Simulator) playDealer(sh *shoe.Shoe, dealer shoe.Hand) (shoe.Hand, error) {
	for ev.DealerHits(dealer, s.config.Rules) {
		if _, ok := sh.Deal(s.rng, &dealer); !ok {
			return dealer, ErrShoeExhausted
		}
		dealer = dealer.Normalized()
	}
	return dealer, nil
}

// settle pays a finished hand the way the EV search scores it.
func settle(seat Seat, dealer shoe.Hand) float64 {
	hand := seat.Hand
	switch {
	case seat.Surrendered:
		return -0.5 * seat.Bet
	case hand.IsBust():
		return -seat.Bet
	case dealer.IsBlackjack():
		if hand.IsBlackjack() || hand.IsSplitTo21() {
			return 0
		}
		return -seat.Bet
	case hand.IsBlackjack():
		return 1.5 * seat.Bet
	case hand.IsSplitTo21():
		return seat.Bet
	case dealer.IsBust():
		return seat.Bet
	case hand.Points > dealer.Points:
		return seat.Bet
	case hand.Points < dealer.Points:
		return -seat.Bet
	default:
		return 0
	}
}
