// Package rules describes the table rules an EV search runs under: which
// actions are legal at the current decision, how far hands may be split, and
// the dealer's soft-17 behaviour.
package rules

import "errors"

// DefaultErrorTolerance is the probability-weighted bet below which a branch
// is treated as worthless and not explored.
const DefaultErrorTolerance = 1e-10

// Rules is copied into every branch of the search, which narrows Allowed as
// the hand progresses (no doubling after a hit, and so on).
type Rules struct {
	// Allowed holds the actions legal at this decision.
	Allowed ActionSet

	// MaxSplitDepth bounds re-splitting. A hand may split while its lineage
	// depth is below 2+MaxSplitDepth.
	MaxSplitDepth int

	// DoubleAfterSplit allows doubling on hands created by a split.
	DoubleAfterSplit bool

	// DealerHitsSoft17 makes the dealer draw on soft 17.
	DealerHitsSoft17 bool

	// CanHitSplitAces lets split aces take more than one card.
	CanHitSplitAces bool

	// ErrorTolerance is the weighted-bet pruning floor.
	ErrorTolerance float64
}

// Default returns the common Las Vegas rule set: dealer stands on soft 17,
// double after split, split twice, one card to split aces, late surrender.
func Default() Rules {
	return Rules{
		Allowed:          NewActionSet(Stand, Hit, Double, Split, Surrender),
		MaxSplitDepth:    2,
		DoubleAfterSplit: true,
		DealerHitsSoft17: false,
		CanHitSplitAces:  false,
		ErrorTolerance:   DefaultErrorTolerance,
	}
}

// AfterHit returns the rules for the decision following a hit: only hit and
// stand remain.
func (r Rules) AfterHit() Rules {
	r.Allowed = r.Allowed.Without(Split, Double, Surrender, Insurance)
	return r
}

// AfterSplit returns the rules for the two hands created by splitting a pair.
func (r Rules) AfterSplit(aces bool) Rules {
	if aces && !r.CanHitSplitAces {
		r.Allowed = r.Allowed.Without(Hit, Double)
		return r
	}
	if !r.DoubleAfterSplit {
		r.Allowed = r.Allowed.Without(Double)
	}
	return r
}

// CanSplitAt reports whether a pair with the given lineage depth may split.
func (r Rules) CanSplitAt(depth int) bool {
	return depth < 2+r.MaxSplitDepth
}

// Validate checks the settings that would make a search meaningless. The
// engine itself never validates; callers building rules from input should.
func (r Rules) Validate() error {
	if !r.Allowed.Has(Stand) {
		return errors.New("stand must be allowed")
	}
	if r.MaxSplitDepth < 0 {
		return errors.New("max split depth cannot be negative")
	}
	if r.ErrorTolerance <= 0 {
		return errors.New("error tolerance must be > 0")
	}
	return nil
}
