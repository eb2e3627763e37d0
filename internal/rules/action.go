package rules

import (
	"fmt"
	"strings"
)

// Action is a player decision. The numeric order is the tie-break order used
// when two actions have exactly the same expected value.
type Action int

const (
	Stand Action = iota
	Hit
	Double
	Split
	Surrender
	Insurance
)

// NumActions is the number of player actions.
const NumActions = int(Insurance) + 1

// Actions lists every action in tie-break order.
var Actions = [NumActions]Action{Stand, Hit, Double, Split, Surrender, Insurance}

func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	case Insurance:
		return "insurance"
	default:
		return "unknown"
	}
}

// Letter is the single-character chart code for the action.
func (a Action) Letter() byte {
	switch a {
	case Stand:
		return 'S'
	case Hit:
		return 'H'
	case Double:
		return 'D'
	case Split:
		return 'P'
	case Surrender:
		return 'R'
	case Insurance:
		return 'I'
	default:
		return '?'
	}
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	return a >= Stand && a <= Insurance
}

// ParseAction accepts full action names or chart letters, case-insensitively.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stand", "s":
		return Stand, nil
	case "hit", "h":
		return Hit, nil
	case "double", "d":
		return Double, nil
	case "split", "p":
		return Split, nil
	case "surrender", "r":
		return Surrender, nil
	case "insurance", "i":
		return Insurance, nil
	}
	return 0, fmt.Errorf("invalid action: %q", s)
}

// ActionSet records which actions are currently legal.
type ActionSet [NumActions]bool

// NewActionSet returns a set holding exactly the given actions.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s[a] = true
	}
	return s
}

// ParseActionSet builds a set from action names.
func ParseActionSet(names []string) (ActionSet, error) {
	var s ActionSet
	for _, name := range names {
		a, err := ParseAction(name)
		if err != nil {
			return ActionSet{}, err
		}
		s[a] = true
	}
	return s, nil
}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	return a.Valid() && s[a]
}

// With returns a copy of the set with a added.
func (s ActionSet) With(a Action) ActionSet {
	s[a] = true
	return s
}

// Without returns a copy of the set with the given actions removed.
func (s ActionSet) Without(actions ...Action) ActionSet {
	for _, a := range actions {
		s[a] = false
	}
	return s
}

// List returns the members in tie-break order.
func (s ActionSet) List() []Action {
	var out []Action
	for _, a := range Actions {
		if s[a] {
			out = append(out, a)
		}
	}
	return out
}

func (s ActionSet) String() string {
	names := make([]string, 0, NumActions)
	for _, a := range s.List() {
		names = append(names, a.String())
	}
	return strings.Join(names, ",")
}
