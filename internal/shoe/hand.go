package shoe

import "fmt"

// Hand is a player or dealer hand reduced to what the game tree needs.
//
// Depth counts every card dealt along the hand's lineage. A hand created by a
// split keeps the depth of the pair it came from, so a split hand that reaches
// two cards has Depth > 2 and is never a natural.
type Hand struct {
	Points int  // total, aces counted as 11 where that does not bust
	Soft   int  // aces still counted as 11
	Cards  int  // cards in this hand
	Depth  int  // cards dealt along this hand's lineage
	Pair   bool // exactly two cards of equal value
}

// NewHand deals the given ranks into an empty hand.
func NewHand(ranks ...Rank) Hand {
	var h Hand
	for _, r := range ranks {
		h.Add(r)
	}
	return h
}

// Add deals one card into the hand. While the hand is a pair its raw total is
// kept (A,A stays 22) so that Split can halve it back into two single aces.
func (h *Hand) Add(r Rank) {
	h.Pair = h.Cards == 1 && r.Points() == h.Points

	h.Points += r.Points()
	if r == Ace {
		h.Soft++
	}
	h.Cards++
	h.Depth++

	if !h.Pair {
		h.reduce()
	}
}

func (h *Hand) reduce() {
	for h.Soft > 0 && h.Points > 21 {
		h.Points -= 10
		h.Soft--
	}
}

// Normalized returns the hand with soft aces reduced regardless of the pair
// flag, i.e. the total the hand would actually stand on.
func (h Hand) Normalized() Hand {
	h.reduce()
	return h
}

// Split returns one half of a pair. Depth is carried over, not reset.
func (h Hand) Split() Hand {
	h.Points /= 2
	h.Soft /= 2
	h.Cards /= 2
	h.Pair = false
	return h
}

// IsBlackjack reports a natural: the first two cards of an unsplit hand
// totalling 21.
func (h Hand) IsBlackjack() bool {
	return h.Depth == 2 && h.Cards == 2 && h.Points == 21
}

// IsSplitTo21 reports a two-card 21 made after a split. It pays even money.
func (h Hand) IsSplitTo21() bool {
	return h.Depth > 2 && h.Cards == 2 && h.Points == 21
}

// IsBust reports a total over 21 after soft reduction.
func (h Hand) IsBust() bool {
	return h.Normalized().Points > 21
}

// PairRank returns the rank of each card in a pair.
func (h Hand) PairRank() Rank {
	return Rank(h.Points / 2)
}

func (h Hand) String() string {
	switch {
	case h.Pair:
		return fmt.Sprintf("Pair of %ss", h.PairRank())
	case h.IsBlackjack():
		return "Blackjack"
	case h.Points > 21:
		return "Bust"
	case h.Soft > 0:
		return fmt.Sprintf("Soft %d", h.Points)
	default:
		return fmt.Sprintf("Hard %d", h.Points)
	}
}
