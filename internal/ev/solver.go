// Package ev computes exact blackjack expected values by exhaustive search
// over the game tree.
//
// A Solver evaluates one decision at a time: Stand resolves the dealer's
// hand against a finished player hand, and Evaluate returns the EV of every
// legal action together with the action chosen either by maximising EV or by
// following a strategy chart. Every branch works on its own copies of the
// hand and shoe, so sibling branches never observe each other's draws.
//
// # Pruning and memoisation
//
// Branches whose probability-weighted bet falls below the rules' error
// tolerance contribute nothing and are not explored. With memoisation on
// (the default), results are cached per unit bet together with the bet they
// were computed at; a cached result is only reused for bets no larger than
// that, so a subtree that was heavily pruned is never scaled up.
//
// A Solver is not safe for concurrent use. Expectation and Builder run one
// solver per goroutine.
package ev

import (
	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// disallowedEV is the per-unit EV given to actions that are not legal so
// they are never chosen.
const disallowedEV = -1000.0

// Result is the outcome of one decision.
type Result struct {
	EV   [rules.NumActions]float64
	Best rules.Action
}

// BestEV returns the EV of the chosen action.
func (r Result) BestEV() float64 {
	return r.EV[r.Best]
}

// Stats counts the work a solver has done.
type Stats struct {
	Decisions   int64
	DealerNodes int64
	MemoHits    int64
}

// Option configures a Solver.
type Option func(*Solver)

// WithMemo enables or disables result caching.
func WithMemo(enabled bool) Option {
	return func(s *Solver) {
		s.memo = enabled
	}
}

// Solver runs the EV search under one rule set and strategy.
type Solver struct {
	rules    rules.Rules
	strategy chart.Strategy
	memo     bool

	standCache map[standKey]standEntry
	evalCache  map[evalKey]evalEntry
	stats      Stats
}

type standKey struct {
	hand   shoe.Hand
	dealer shoe.Hand
	shoe   shoe.Shoe
}

type standEntry struct {
	unit float64
	bet  float64
}

type evalKey struct {
	hand    shoe.Hand
	dealer  shoe.Hand
	shoe    shoe.Shoe
	allowed rules.ActionSet
}

type evalEntry struct {
	unit Result
	bet  float64
}

// NewSolver creates a solver. Only the Allowed set of r changes as the
// search descends; the other fields apply to the whole search.
func NewSolver(r rules.Rules, strategy chart.Strategy, opts ...Option) *Solver {
	s := &Solver{
		rules:    r,
		strategy: strategy,
		memo:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.memo {
		s.standCache = make(map[standKey]standEntry)
		s.evalCache = make(map[evalKey]evalEntry)
	}
	return s
}

// Rules returns the rules the solver was created with.
func (s *Solver) Rules() rules.Rules {
	return s.rules
}

// Stats returns counters accumulated since the solver was created.
func (s *Solver) Stats() Stats {
	return s.stats
}

// Reset drops cached results and counters.
func (s *Solver) Reset() {
	s.stats = Stats{}
	if s.memo {
		clear(s.standCache)
		clear(s.evalCache)
	}
}

// Stand returns the player's expected winnings for standing on hand with
// bet at risk, given the dealer's current hand and the remaining shoe.
func (s *Solver) Stand(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe) float64 {
	return s.stand(bet, hand.Normalized(), dealer, sh)
}

// Evaluate returns the EV of every action for hand and the action chosen by
// the solver's strategy. The solver's Allowed set is the legal set at this
// decision.
func (s *Solver) Evaluate(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe) Result {
	return s.evaluate(bet, hand, dealer, sh, s.rules)
}

// Decide is Evaluate with a different legal set, e.g. after the player has
// already hit or split. The cache is shared with Evaluate.
func (s *Solver) Decide(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe, allowed rules.ActionSet) Result {
	r := s.rules
	r.Allowed = allowed
	return s.evaluate(bet, hand, dealer, sh, r)
}
