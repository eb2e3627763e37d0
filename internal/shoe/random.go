package shoe

import rand "math/rand/v2"

// DrawRandom samples the next card from the shoe's composition and removes
// it (finite shoes only). It is for dealing real hands; the EV search never
// calls it. ok is false when the shoe is empty.
func (s *Shoe) DrawRandom(rng *rand.Rand) (r Rank, ok bool) {
	if s.total == 0 {
		return 0, false
	}

	x := rng.Float64()
	cdf := 0.0
	r = 0
	for _, candidate := range Ranks {
		n := s.Count(candidate)
		if n == 0 {
			continue
		}
		r = candidate
		cdf += float64(n) / float64(s.total)
		if x < cdf {
			break
		}
	}

	s.Draw(r)
	return r, true
}

// Deal draws a random card into h.
func (s *Shoe) Deal(rng *rand.Rand, h *Hand) (Rank, bool) {
	r, ok := s.DrawRandom(rng)
	if ok {
		h.Add(r)
	}
	return r, ok
}
