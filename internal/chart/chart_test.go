package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		name   string
		hand   shoe.Hand
		dealer shoe.Rank
		row    int
		col    int
	}{
		{name: "hard 19 vs 2", hand: shoe.NewHand(shoe.Ten, shoe.Nine), dealer: shoe.Two, row: 0, col: 0},
		{name: "hard 16 vs 10", hand: shoe.NewHand(shoe.Ten, shoe.Six), dealer: shoe.Ten, row: 8, col: 3},
		{name: "hard 5 vs A", hand: shoe.NewHand(shoe.Two, shoe.Three), dealer: shoe.Ace, row: 9, col: 14},
		{name: "soft 21", hand: shoe.NewHand(shoe.Ace, shoe.Ten), dealer: shoe.Six, row: 4, col: 15},
		{name: "soft 13", hand: shoe.NewHand(shoe.Ace, shoe.Two), dealer: shoe.Six, row: 4, col: 23},
		{name: "aces", hand: shoe.NewHand(shoe.Ace, shoe.Ace), dealer: shoe.Seven, row: 5, col: 24},
		{name: "tens", hand: shoe.NewHand(shoe.Ten, shoe.Ten), dealer: shoe.Seven, row: 5, col: 25},
		{name: "twos", hand: shoe.NewHand(shoe.Two, shoe.Two), dealer: shoe.Seven, row: 5, col: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := Index(tt.hand, shoe.NewHand(tt.dealer))
			require.True(t, ok)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}

	_, _, ok := Index(shoe.NewHand(shoe.Ten, shoe.Ten, shoe.Ace), shoe.NewHand(shoe.Ten))
	assert.False(t, ok, "hard 21 has no cell")
}

func TestLabelsRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for col := 0; col < PlayerCols; col++ {
		label := Label(col)
		assert.False(t, seen[label], "duplicate label %s", label)
		seen[label] = true

		got, ok := columnForLabel(label)
		require.True(t, ok)
		assert.Equal(t, col, got)
	}
	assert.Equal(t, "H19", Label(0))
	assert.Equal(t, "S21", Label(FirstSoft))
	assert.Equal(t, "PA", Label(FirstPair))
	assert.Equal(t, "P2", Label(PlayerCols-1))
}

func TestDegrade(t *testing.T) {
	standHit := rules.NewActionSet(rules.Stand, rules.Hit)
	standOnly := rules.NewActionSet(rules.Stand)
	hard16 := shoe.NewHand(shoe.Ten, shoe.Six)
	hard17 := shoe.NewHand(shoe.Ten, shoe.Seven)

	tests := []struct {
		name    string
		action  rules.Action
		hand    shoe.Hand
		allowed rules.ActionSet
		want    rules.Action
	}{
		{name: "allowed action is kept", action: rules.Double, hand: hard16, allowed: rules.Default().Allowed, want: rules.Double},
		{name: "split falls back to hit", action: rules.Split, hand: shoe.NewHand(shoe.Eight, shoe.Eight), allowed: standHit, want: rules.Hit},
		{name: "double falls back to hit", action: rules.Double, hand: hard16, allowed: standHit, want: rules.Hit},
		{name: "surrender on 16 falls back to hit", action: rules.Surrender, hand: hard16, allowed: standHit, want: rules.Hit},
		{name: "surrender on 17 falls back to stand", action: rules.Surrender, hand: hard17, allowed: standHit, want: rules.Stand},
		{name: "hit falls back to stand", action: rules.Hit, hand: hard16, allowed: standOnly, want: rules.Stand},
		{name: "split chains through hit to stand", action: rules.Split, hand: hard16, allowed: standOnly, want: rules.Stand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Degrade(tt.action, tt.hand, tt.allowed))
		})
	}
}

func TestBasicChart(t *testing.T) {
	c := Basic()

	lookup := func(player []shoe.Rank, dealer shoe.Rank) rules.Action {
		a, ok := c.Lookup(shoe.NewHand(player...), shoe.NewHand(dealer))
		require.True(t, ok)
		return a
	}

	assert.Equal(t, rules.Split, lookup([]shoe.Rank{shoe.Eight, shoe.Eight}, shoe.Ten))
	assert.Equal(t, rules.Stand, lookup([]shoe.Rank{shoe.Ten, shoe.Ten}, shoe.Six))
	assert.Equal(t, rules.Double, lookup([]shoe.Rank{shoe.Six, shoe.Five}, shoe.Six))
	assert.Equal(t, rules.Surrender, lookup([]shoe.Rank{shoe.Ten, shoe.Six}, shoe.Ten))
	assert.Equal(t, rules.Hit, lookup([]shoe.Rank{shoe.Ten, shoe.Two}, shoe.Two))
	assert.Equal(t, rules.Double, lookup([]shoe.Rank{shoe.Ace, shoe.Seven}, shoe.Three))
}

func TestFormatParseRoundTrip(t *testing.T) {
	c := Basic()

	var buf bytes.Buffer
	require.NoError(t, c.Format(&buf))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestParseErrors(t *testing.T) {
	var buf bytes.Buffer
	basic := Basic()
	require.NoError(t, basic.Format(&buf))
	full := buf.String()

	tests := map[string]string{
		"unknown hand":  strings.Replace(full, "H19 ", "H23 ", 1),
		"bad letter":    strings.Replace(full, "PA   P P", "PA   P X", 1),
		"short row":     strings.Replace(full, "P2   P P P P P P H H H H", "P2   P P P", 1),
		"missing row":   strings.Replace(full, "P2   P P P P P P H H H H", "", 1),
		"duplicate row": full + "H19 S S S S S S S S S S\n",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.txt")

	c := Basic()
	c.Set(0, 0, rules.Hit)
	require.NoError(t, c.WriteFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be renamed away")
}
