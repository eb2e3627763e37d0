package ev

import (
	"errors"
	"fmt"

	"github.com/lox/bjev/internal/shoe"
)

// Position is a decision point: the player's hand, the dealer's hand and
// what is left in the shoe.
type Position struct {
	Hand   shoe.Hand
	Dealer shoe.Hand
	Shoe   shoe.Shoe
}

// NewPosition deals the given cards from a fresh shoe. Cards on the table and
// any extra removed cards are taken out of the shoe.
func NewPosition(decks int, player, dealer, removed []shoe.Rank) (Position, error) {
	if len(player) == 0 {
		return Position{}, errors.New("player needs at least one card")
	}
	if len(dealer) == 0 {
		return Position{}, errors.New("dealer needs at least one card")
	}
	if decks == 0 || decks < shoe.Infinite {
		return Position{}, fmt.Errorf("invalid deck count %d", decks)
	}

	pos := Position{
		Hand:   shoe.NewHand(player...),
		Dealer: shoe.NewHand(dealer...).Normalized(),
		Shoe:   shoe.NewShoe(decks),
	}
	for _, group := range [][]shoe.Rank{dealer, player, removed} {
		for _, r := range group {
			if err := pos.Shoe.Remove(r); err != nil {
				return Position{}, err
			}
		}
	}
	return pos, nil
}

// Evaluate runs the solver on the position with a unit bet.
func (p Position) Evaluate(s *Solver) Result {
	return s.Evaluate(1, p.Hand, p.Dealer, p.Shoe)
}
