package shoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjev/internal/randutil"
)

func TestNewShoeComposition(t *testing.T) {
	tests := []struct {
		name  string
		decks int
		total int
		tens  int
		aces  int
	}{
		{name: "single deck", decks: 1, total: 52, tens: 16, aces: 4},
		{name: "six decks", decks: 6, total: 312, tens: 96, aces: 24},
		{name: "infinite", decks: Infinite, total: 52, tens: 16, aces: 4},
		{name: "empty", decks: 0, total: 0, tens: 0, aces: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShoe(tt.decks)
			assert.Equal(t, tt.total, s.Total())
			assert.Equal(t, tt.tens, s.Count(Ten))
			assert.Equal(t, tt.aces, s.Count(Ace))

			sum := 0
			for _, r := range Ranks {
				sum += s.Count(r)
			}
			assert.Equal(t, s.Total(), sum, "per-rank counts must add up to the total")
		})
	}
}

func TestDrawProbabilitiesSumToOne(t *testing.T) {
	s := NewShoe(2)
	require.NoError(t, s.Remove(Ten))
	require.NoError(t, s.Remove(Ace))
	require.NoError(t, s.Remove(Five))

	for _, decks := range []int{1, 2, 6, Infinite} {
		shoes := []Shoe{NewShoe(decks)}
		if decks == 2 {
			shoes = append(shoes, s)
		}
		for _, base := range shoes {
			sum := 0.0
			for _, r := range Ranks {
				if base.Count(r) == 0 {
					continue
				}
				branch := base
				sum += branch.Draw(r)
			}
			assert.InDelta(t, 1.0, sum, 1e-12, base.String())
		}
	}
}

func TestDrawDepletesFiniteShoe(t *testing.T) {
	s := NewShoe(1)
	p := s.Draw(Ace)
	assert.InDelta(t, 4.0/52.0, p, 1e-15)
	assert.Equal(t, 3, s.Count(Ace))
	assert.Equal(t, 51, s.Total())

	for i := 0; i < 3; i++ {
		require.Greater(t, s.Draw(Ace), 0.0)
	}
	before := s
	assert.Zero(t, s.Draw(Ace), "exhausted rank has zero probability")
	assert.Equal(t, before, s, "zero-probability draw must not mutate")
}

func TestDrawInfiniteShoeIsUnchanged(t *testing.T) {
	s := NewShoe(Infinite)
	before := s
	for i := 0; i < 100; i++ {
		assert.InDelta(t, 16.0/52.0, s.Draw(Ten), 1e-15)
	}
	assert.Equal(t, before, s)
}

func TestBranchCopiesAreIsolated(t *testing.T) {
	root := NewShoe(1)
	left := root
	right := root
	left.Draw(Two)
	right.Draw(Three)

	assert.Equal(t, 4, root.Count(Two))
	assert.Equal(t, 3, left.Count(Two))
	assert.Equal(t, 4, right.Count(Two))
	assert.Equal(t, 3, right.Count(Three))
}

func TestRemove(t *testing.T) {
	s := NewShoe(1)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Remove(Nine))
	}
	assert.Error(t, s.Remove(Nine))
	assert.Error(t, s.Remove(Rank(1)))

	inf := NewShoe(Infinite)
	require.NoError(t, inf.Remove(Nine))
	assert.Equal(t, 4, inf.Count(Nine))
}

func TestDealToSkipsExhaustedRank(t *testing.T) {
	s := NewShoe(0)
	var h Hand
	assert.Zero(t, s.DealTo(&h, Ten))
	assert.Equal(t, Hand{}, h)
}

func TestDrawRandomIsDeterministicForSeed(t *testing.T) {
	deal := func(seed int64) []Rank {
		rng := randutil.New(seed)
		s := NewShoe(1)
		var out []Rank
		for {
			r, ok := s.DrawRandom(rng)
			if !ok {
				break
			}
			out = append(out, r)
		}
		return out
	}

	a := deal(42)
	b := deal(42)
	require.Len(t, a, 52)
	assert.Equal(t, a, b)

	counts := map[Rank]int{}
	for _, r := range a {
		counts[r]++
	}
	assert.Equal(t, 16, counts[Ten])
	assert.Equal(t, 4, counts[Ace])
}

func TestDrawRandomInfiniteNeverEmpties(t *testing.T) {
	rng := randutil.New(7)
	s := NewShoe(Infinite)
	var h Hand
	for i := 0; i < 1000; i++ {
		r, ok := s.Deal(rng, &h)
		require.True(t, ok)
		require.True(t, r.Valid())
	}
	assert.Equal(t, 52, s.Total())
	assert.Equal(t, 1000, h.Depth)
}

func TestParseRanks(t *testing.T) {
	tests := []struct {
		input   string
		want    []Rank
		wantErr bool
	}{
		{input: "10,6", want: []Rank{Ten, Six}},
		{input: "A 7", want: []Rank{Ace, Seven}},
		{input: "T6", want: []Rank{Ten, Six}},
		{input: "kq", want: []Rank{Ten, Ten}},
		{input: "11", want: []Rank{Ace}},
		{input: "10", want: []Rank{Ten}},
		{input: "8", want: []Rank{Eight}},
		{input: "1", wantErr: true},
		{input: "X5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRanks(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
