package ev

import (
	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

// Legal narrows the configured action set to what the hand may do right now.
func Legal(hand, dealer shoe.Hand, r rules.Rules) rules.ActionSet {
	allowed := r.Allowed
	if !hand.Pair || !r.CanSplitAt(hand.Depth) {
		allowed = allowed.Without(rules.Split)
	}
	if hand.Depth > 2 || dealer.Depth != 1 {
		allowed = allowed.Without(rules.Surrender)
	}
	// Insurance is never evaluated.
	return allowed.Without(rules.Insurance)
}

func (s *Solver) evaluate(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe, r rules.Rules) Result {
	var res Result
	if bet < s.rules.ErrorTolerance {
		res.Best = rules.Stand
		return res
	}
	s.stats.Decisions++

	key := evalKey{hand: hand, dealer: dealer, shoe: sh, allowed: r.Allowed}
	if s.memo {
		if e, ok := s.evalCache[key]; ok && e.bet >= bet {
			s.stats.MemoHits++
			res.Best = e.unit.Best
			for i, v := range e.unit.EV {
				res.EV[i] = v * bet
			}
			return res
		}
	}

	allowed := Legal(hand, dealer, r)
	for _, a := range rules.Actions {
		if !allowed.Has(a) {
			res.EV[a] = disallowedEV * bet
			continue
		}
		switch a {
		case rules.Stand:
			res.EV[a] = s.stand(bet, hand.Normalized(), dealer, sh)
		case rules.Hit:
			res.EV[a] = s.hit(bet, hand, dealer, sh, r.AfterHit())
		case rules.Double:
			res.EV[a] = s.double(bet, hand, dealer, sh)
		case rules.Split:
			res.EV[a] = s.split(bet, hand, dealer, sh, r)
		case rules.Surrender:
			res.EV[a] = -0.5 * bet
		}
	}
	res.Best = s.choose(res.EV, hand, dealer, allowed)

	if s.memo {
		unit := Result{Best: res.Best}
		for i, v := range res.EV {
			unit.EV[i] = v / bet
		}
		s.evalCache[key] = evalEntry{unit: unit, bet: bet}
	}
	return res
}

func (s *Solver) choose(evs [rules.NumActions]float64, hand, dealer shoe.Hand, allowed rules.ActionSet) rules.Action {
	if s.strategy.Optimal {
		best := rules.Stand
		for _, a := range rules.Actions {
			if evs[a] > evs[best] {
				best = a
			}
		}
		return best
	}

	if hand.Points > 19 && hand.Soft == 0 {
		return rules.Stand
	}
	a, ok := s.strategy.Chart.Lookup(hand, dealer)
	if !ok {
		return rules.Stand
	}
	return chart.Degrade(a, hand, allowed)
}

func (s *Solver) hit(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe, r rules.Rules) float64 {
	ev := 0.0
	for _, rank := range shoe.Ranks {
		if sh.Count(rank) == 0 {
			continue
		}
		next := sh
		h := hand
		p := next.DealTo(&h, rank)
		if h.IsBust() {
			ev -= p * bet
			continue
		}
		ev += s.evaluate(p*bet, h, dealer, next, r).BestEV()
	}
	return ev
}

func (s *Solver) double(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe) float64 {
	ev := 0.0
	for _, rank := range shoe.Ranks {
		if sh.Count(rank) == 0 {
			continue
		}
		next := sh
		h := hand
		p := next.DealTo(&h, rank)
		if h.IsBust() {
			ev -= 2 * p * bet
			continue
		}
		ev += s.stand(2*p*bet, h.Normalized(), dealer, next)
	}
	return ev
}

// split enumerates the ordered pair of cards dealt to the two halves. The
// first half plays from the shoe with only its own card removed; the second
// half draws after it and plays from the shoe with both removed.
func (s *Solver) split(bet float64, hand, dealer shoe.Hand, sh shoe.Shoe, r rules.Rules) float64 {
	half := hand.Split()
	sr := r.AfterSplit(hand.PairRank() == shoe.Ace)

	ev := 0.0
	for _, c0 := range shoe.Ranks {
		if sh.Count(c0) == 0 {
			continue
		}
		s0 := sh
		h0 := half
		p0 := s0.DealTo(&h0, c0)

		for _, c1 := range shoe.Ranks {
			if s0.Count(c1) == 0 {
				continue
			}
			s1 := s0
			h1 := half
			p1 := s1.DealTo(&h1, c1)

			w := p0 * p1 * bet
			ev += s.evaluate(w, h0, dealer, s0, sr).BestEV()
			ev += s.evaluate(w, h1, dealer, s1, sr).BestEV()
		}
	}
	return ev
}
