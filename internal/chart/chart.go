// Package chart holds fixed basic-strategy tables: the mapping from a hand
// and dealer up-card to a cell, the fallback applied when the suggested
// action is not legal, and the plain-text chart file format.
package chart

import (
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// Table dimensions. Columns run hard 19..5, then soft 21..13, then pairs
// A,A..2,2; rows run dealer 2..A.
const (
	DealerRows = 10
	PlayerCols = 34

	HardCols  = 15
	SoftCols  = 9
	PairCols  = 10
	FirstSoft = HardCols
	FirstPair = HardCols + SoftCols
)

// Chart is a strategy table indexed [dealer][player].
type Chart struct {
	Actions [DealerRows][PlayerCols]rules.Action
}

// Strategy selects between exhaustive search and following a chart.
type Strategy struct {
	Optimal bool
	Chart   Chart
}

// Optimal returns the strategy that searches for the best action.
func Optimal() Strategy {
	return Strategy{Optimal: true}
}

// Follow returns a strategy that plays the given chart.
func Follow(c Chart) Strategy {
	return Strategy{Chart: c}
}

// Index maps a player hand and dealer hand to a chart cell. ok is false when
// the hand has no cell (hard totals above 19 or below 5).
func Index(hand, dealer shoe.Hand) (row, col int, ok bool) {
	switch {
	case hand.Pair:
		col = 35 - hand.Points/2
	case hand.Soft > 0:
		col = 36 - hand.Points
	default:
		col = 19 - hand.Points
	}
	row = dealer.Points - 2

	if row < 0 || row >= DealerRows || col < 0 || col >= PlayerCols {
		return row, col, false
	}
	// A soft total outside 13..21 lands in the wrong section.
	if !hand.Pair && hand.Soft > 0 && (col < FirstSoft || col >= FirstPair) {
		return row, col, false
	}
	if !hand.Pair && hand.Soft == 0 && col >= FirstSoft {
		return row, col, false
	}
	return row, col, true
}

// Lookup returns the chart's suggestion for the hand.
func (c *Chart) Lookup(hand, dealer shoe.Hand) (rules.Action, bool) {
	row, col, ok := Index(hand, dealer)
	if !ok {
		return rules.Stand, false
	}
	return c.Actions[row][col], true
}

// Set stores an action in a cell.
func (c *Chart) Set(row, col int, a rules.Action) {
	c.Actions[row][col] = a
}

// Degrade walks the fallback chain from a until it reaches an allowed
// action: surrender falls back to stand on 17 or more and hit otherwise,
// double and split fall back to hit, hit falls back to stand. Stand is the
// end of every chain.
func Degrade(a rules.Action, hand shoe.Hand, allowed rules.ActionSet) rules.Action {
	for i := 0; i < rules.NumActions && !allowed.Has(a); i++ {
		switch a {
		case rules.Surrender:
			if hand.Points >= 17 {
				a = rules.Stand
			} else {
				a = rules.Hit
			}
		case rules.Double, rules.Split:
			a = rules.Hit
		case rules.Hit:
			a = rules.Stand
		default:
			return rules.Stand
		}
	}
	return a
}
