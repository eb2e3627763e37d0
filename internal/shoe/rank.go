package shoe

import (
	"fmt"
	"strings"
)

// Rank is a blackjack card value. Tens and faces share Ten; Ace is 11.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Ace
)

// NumRanks is the number of distinct blackjack card values.
const NumRanks = int(Ace-Two) + 1

// Ranks lists every rank in draw order, Two through Ace.
var Ranks = [NumRanks]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Ace}

// Valid reports whether r is a real card value.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Points is the value the card adds to a hand before any soft reduction.
func (r Rank) Points() int {
	return int(r)
}

func (r Rank) index() int {
	return int(r - Two)
}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r.Valid():
		return fmt.Sprintf("%d", int(r))
	default:
		return "?"
	}
}

// ParseRank parses a single card value: 2-9, 10/T/J/Q/K, or A/11.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T", "J", "Q", "K":
		return Ten, nil
	case "A", "11":
		return Ace, nil
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}

// ParseRanks parses a list of ranks separated by commas or spaces ("10,6",
// "A 7"). A single token without separators is read one card per character
// ("T6", "A7"), except for the two-digit forms 10 and 11.
func ParseRanks(s string) ([]Rank, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 1 && len(fields[0]) > 1 && fields[0] != "10" && fields[0] != "11" {
		token := fields[0]
		fields = fields[:0]
		for _, c := range token {
			fields = append(fields, string(c))
		}
	}

	ranks := make([]Rank, 0, len(fields))
	for _, f := range fields {
		r, err := ParseRank(f)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}
