package ev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

func TestNewPosition(t *testing.T) {
	pos, err := NewPosition(1,
		[]shoe.Rank{shoe.Ten, shoe.Six},
		[]shoe.Rank{shoe.Ten},
		[]shoe.Rank{shoe.Five, shoe.Five})
	require.NoError(t, err)

	assert.Equal(t, 16, pos.Hand.Points)
	assert.Equal(t, 10, pos.Dealer.Points)
	assert.Equal(t, 47, pos.Shoe.Total())
	assert.Equal(t, 14, pos.Shoe.Count(shoe.Ten))
	assert.Equal(t, 2, pos.Shoe.Count(shoe.Five))

	res := pos.Evaluate(NewSolver(rules.Default(), chart.Optimal()))
	assert.Equal(t, rules.Surrender, res.Best)
}

func TestNewPositionDealerAces(t *testing.T) {
	pos, err := NewPosition(shoe.Infinite, []shoe.Rank{shoe.Ten, shoe.Eight}, []shoe.Rank{shoe.Ace, shoe.Ace}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, pos.Dealer.Points)
}

func TestNewPositionErrors(t *testing.T) {
	tens := []shoe.Rank{shoe.Ten}
	fiveAces := []shoe.Rank{shoe.Ace, shoe.Ace, shoe.Ace, shoe.Ace, shoe.Ace}

	tests := map[string]func() error{
		"no player cards": func() error { _, err := NewPosition(1, nil, tens, nil); return err },
		"no dealer cards": func() error { _, err := NewPosition(1, tens, nil, nil); return err },
		"zero decks":      func() error { _, err := NewPosition(0, tens, tens, nil); return err },
		"too many aces":   func() error { _, err := NewPosition(1, tens, tens, fiveAces); return err },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, fn())
		})
	}
}
