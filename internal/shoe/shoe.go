package shoe

import (
	"fmt"
	"strings"
)

// Infinite is the deck count of a shoe that is reshuffled after every card.
// Draws from it never change its composition.
const Infinite = -1

// Shoe is the remaining card composition. It is a plain value: copying a Shoe
// snapshots it, so each branch of a search owns its own depletion.
type Shoe struct {
	counts [NumRanks]int
	total  int
	decks  int
}

// NewShoe builds a fresh shoe of the given number of decks. A negative count
// builds an infinite shoe with single-deck proportions.
func NewShoe(decks int) Shoe {
	s := Shoe{decks: decks}
	n := decks
	if decks < 0 {
		s.decks = Infinite
		n = 1
	}
	for _, r := range Ranks {
		switch r {
		case Ten:
			s.counts[r.index()] = 16 * n
		default:
			s.counts[r.index()] = 4 * n
		}
		s.total += s.counts[r.index()]
	}
	return s
}

// Decks returns the deck count, or Infinite.
func (s Shoe) Decks() int { return s.decks }

// IsInfinite reports whether draws leave the composition unchanged.
func (s Shoe) IsInfinite() bool { return s.decks < 0 }

// Total returns the number of cards remaining.
func (s Shoe) Total() int { return s.total }

// Count returns how many cards of rank r remain.
func (s Shoe) Count(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return s.counts[r.index()]
}

// Probability returns the chance that the next card is r, without drawing it.
func (s Shoe) Probability(r Rank) float64 {
	n := s.Count(r)
	if n == 0 || s.total == 0 {
		return 0
	}
	return float64(n) / float64(s.total)
}

// Draw removes a card of rank r and returns the probability it was the next
// card, measured before removal. It returns 0 and leaves the shoe untouched
// when no card of that rank remains. Infinite shoes are never depleted.
func (s *Shoe) Draw(r Rank) float64 {
	p := s.Probability(r)
	if p == 0 {
		return 0
	}
	if !s.IsInfinite() {
		s.counts[r.index()]--
		s.total--
	}
	return p
}

// DealTo draws rank r into h and returns the draw probability. The hand is
// left untouched when the rank is exhausted.
func (s *Shoe) DealTo(h *Hand, r Rank) float64 {
	p := s.Draw(r)
	if p > 0 {
		h.Add(r)
	}
	return p
}

// Remove takes a known card out of the shoe, e.g. one already on the table.
func (s *Shoe) Remove(r Rank) error {
	if !r.Valid() {
		return fmt.Errorf("invalid rank: %d", int(r))
	}
	if s.IsInfinite() {
		return nil
	}
	if s.counts[r.index()] == 0 {
		return fmt.Errorf("no %s left in shoe", r)
	}
	s.counts[r.index()]--
	s.total--
	return nil
}

func (s Shoe) String() string {
	var b strings.Builder
	if s.IsInfinite() {
		b.WriteString("infinite shoe [")
	} else {
		fmt.Fprintf(&b, "%d-deck shoe [", s.decks)
	}
	for i, r := range Ranks {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%d", r, s.Count(r))
	}
	b.WriteByte(']')
	return b.String()
}
