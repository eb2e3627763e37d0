package ev

import (
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// DealerHits reports whether the dealer must draw to the hand.
func DealerHits(dealer shoe.Hand, r rules.Rules) bool {
	return dealer.Points < 17 ||
		(r.DealerHitsSoft17 && dealer.Points == 17 && dealer.Soft > 0)
}

// stand plays out the dealer's hand. hand must already be soft-reduced.
func (s *Solver) stand(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe) float64 {
	if bet < s.rules.ErrorTolerance {
		return 0
	}
	s.stats.DealerNodes++

	if !DealerHits(dealer, s.rules) {
		switch {
		case dealer.Points < hand.Points:
			return bet
		case dealer.Points > hand.Points:
			return -bet
		default:
			return 0
		}
	}

	key := standKey{hand: hand, dealer: dealer, shoe: sh}
	if s.memo {
		if e, ok := s.standCache[key]; ok && e.bet >= bet {
			s.stats.MemoHits++
			return e.unit * bet
		}
	}

	ev := 0.0
	for _, r := range shoe.Ranks {
		if sh.Count(r) == 0 {
			continue
		}
		next := sh
		d := dealer
		p := next.DealTo(&d, r)
		// Pairs mean nothing to the dealer; A,A is 12, not 22.
		d = d.Normalized()

		switch {
		case d.IsBlackjack():
			if !hand.IsBlackjack() && !hand.IsSplitTo21() {
				ev -= p * bet
			}
		case hand.IsBlackjack():
			ev += 1.5 * p * bet
		case hand.IsSplitTo21():
			ev += p * bet
		case d.Points > 21:
			ev += p * bet
		default:
			ev += s.stand(p*bet, hand, d, next)
		}
	}

	if s.memo {
		s.standCache[key] = standEntry{unit: ev / bet, bet: bet}
	}
	return ev
}
