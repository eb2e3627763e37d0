package play

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/ev"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

func testConfig(seed int64) Config {
	return Config{
		Rules:    rules.Default(),
		Strategy: chart.Optimal(),
		Decks:    shoe.Infinite,
		Rounds:   25,
		Seed:     seed,
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, sumA, err := New(testConfig(42)).Run(context.Background())
	require.NoError(t, err)
	b, sumB, err := New(testConfig(42)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, sumA, sumB)
	assert.Equal(t, 25, sumA.Rounds)
}

func TestRoundsAreConsistent(t *testing.T) {
	rounds, sum, err := New(testConfig(7)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 25)

	net := 0.0
	for _, round := range rounds {
		require.NotEmpty(t, round.Seats)
		require.NotEmpty(t, round.Actions)
		assert.Equal(t, 2, round.Opening.Cards)
		assert.GreaterOrEqual(t, round.Expected, -1.0)
		assert.LessOrEqual(t, round.Expected, 1.5)

		seatNet := 0.0
		for _, seat := range round.Seats {
			assert.LessOrEqual(t, seat.Net, 1.5*seat.Bet)
			assert.GreaterOrEqual(t, seat.Net, -seat.Bet)
			seatNet += seat.Net
		}
		assert.InDelta(t, round.Net, seatNet, 1e-12)
		net += round.Net
	}
	assert.InDelta(t, sum.Net, net, 1e-9)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rounds, _, err := New(testConfig(1)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rounds)
}

func TestSplitDealsSecondHalfAfterFirst(t *testing.T) {
	// One ten left: the first half takes it and stands before the second
	// half asks for a card.
	sh := shoe.NewShoe(1)
	for _, r := range shoe.Ranks {
		keep := 0
		if r == shoe.Ten {
			keep = 1
		}
		for sh.Count(r) > keep {
			require.NoError(t, sh.Remove(r))
		}
	}
	require.Equal(t, 1, sh.Total())

	config := testConfig(3)
	config.Strategy = chart.Follow(chart.Basic())
	sim := New(config)
	solver := ev.NewSolver(config.Rules, config.Strategy)

	var actions []rules.Action
	hand := shoe.NewHand(shoe.Eight, shoe.Eight)
	_, err := sim.playHand(solver, &sh, hand, shoe.NewHand(shoe.Six), config.Rules, 1, &actions)

	assert.ErrorIs(t, err, ErrShoeExhausted)
	assert.Equal(t, []rules.Action{rules.Split, rules.Stand}, actions)
	assert.Zero(t, sh.Total())
}

func TestSettle(t *testing.T) {
	h := shoe.NewHand
	splitTwentyOne := h(shoe.Ace, shoe.Ace).Split()
	splitTwentyOne.Add(shoe.Ten)

	tests := []struct {
		name   string
		seat   Seat
		dealer shoe.Hand
		want   float64
	}{
		{name: "natural", seat: Seat{Hand: h(shoe.Ace, shoe.Ten), Bet: 1}, dealer: h(shoe.Ten, shoe.Seven), want: 1.5},
		{name: "natural against natural", seat: Seat{Hand: h(shoe.Ace, shoe.Ten), Bet: 1}, dealer: h(shoe.Ten, shoe.Ace), want: 0},
		{name: "dealer natural", seat: Seat{Hand: h(shoe.Ten, shoe.Nine), Bet: 2}, dealer: h(shoe.Ace, shoe.Ten), want: -2},
		{name: "split 21 pays even money", seat: Seat{Hand: splitTwentyOne, Bet: 1}, dealer: h(shoe.Ten, shoe.Seven), want: 1},
		{name: "split 21 pushes a natural", seat: Seat{Hand: splitTwentyOne, Bet: 1}, dealer: h(shoe.Ten, shoe.Ace), want: 0},
		{name: "surrender", seat: Seat{Hand: h(shoe.Ten, shoe.Six), Bet: 1, Surrendered: true}, dealer: h(shoe.Ten), want: -0.5},
		{name: "player bust", seat: Seat{Hand: h(shoe.Ten, shoe.Six, shoe.Nine), Bet: 1}, dealer: h(shoe.Ten, shoe.Six, shoe.Nine), want: -1},
		{name: "dealer bust", seat: Seat{Hand: h(shoe.Ten, shoe.Two), Bet: 2}, dealer: h(shoe.Ten, shoe.Six, shoe.Nine), want: 2},
		{name: "higher total", seat: Seat{Hand: h(shoe.Ten, shoe.Nine), Bet: 1}, dealer: h(shoe.Ten, shoe.Eight), want: 1},
		{name: "lower total", seat: Seat{Hand: h(shoe.Ten, shoe.Seven), Bet: 1}, dealer: h(shoe.Ten, shoe.Eight), want: -1},
		{name: "push", seat: Seat{Hand: h(shoe.Ten, shoe.Eight), Bet: 1}, dealer: h(shoe.Nine, shoe.Nine), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, settle(tt.seat, tt.dealer), 1e-12)
		})
	}
}
