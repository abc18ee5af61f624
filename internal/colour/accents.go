package colour

import (
	"math"
	"slices"
)

// GoldenAngle is the hue step, in degrees, between synthesized accents.
const GoldenAngle = 137.507764

// Synthesized accents are pulled into this saturation/value range so that
// rotating a neutral base still yields visible colour.
const (
	minSynthSaturation = 0.6
	minSynthValue      = 0.4
	maxSynthValue      = 0.8
)

// accents fills accent-1..N. Unconsumed chromatic clusters are preferred;
// consumed ones are only considered once those run out, and any remaining
// slots are synthesized by golden-angle hue rotation.
func (s *mapping) accents() {
	chromatic := func(c candidate) bool { return !IsGrayscale(c.centre, s.t.Grayscale) }
	fresh := s.unconsumed(chromatic)
	used := filter(s.all, func(c candidate) bool { return s.consumed[c.index] && chromatic(c) })

	chosen := selectDiverse(nil, fresh, AccentCount, s.t.MinAccentDistance)
	chosen = selectDiverse(chosen, used, AccentCount, s.t.MinAccentDistance)

	for i, c := range chosen {
		s.out.set(AccentRole(i), c, false)
	}
	for i, c := range synthesizeAccents(chosen, s.all, AccentCount) {
		s.out.set(AccentRole(len(chosen)+i), c, true)
	}
}

// selectDiverse extends chosen from pool with greedy max-min selection until
// it holds n colours or the pool has nothing usable left. With an empty
// chosen set the most saturated candidate goes first; after that each pick
// is the candidate farthest from its nearest chosen colour. Candidates within
// minDistance of the chosen set are dropped as duplicates.
func selectDiverse(chosen []RGB, pool []candidate, n int, minDistance float64) []RGB {
	remaining := slices.Clone(pool)
	for len(chosen) < n && len(remaining) > 0 {
		if len(chosen) == 0 {
			first, _ := argBest(remaining, func(c candidate) float64 { return c.metrics.Saturation })
			chosen = append(chosen, first.centre)
			remaining = slices.DeleteFunc(remaining, func(c candidate) bool { return c.index == first.index })
			continue
		}

		remaining = slices.DeleteFunc(remaining, func(c candidate) bool {
			return nearestDistance(c.centre, chosen) < minDistance
		})
		next, ok := argBest(remaining, func(c candidate) float64 {
			return nearestDistance(c.centre, chosen)
		})
		if !ok {
			break
		}
		chosen = append(chosen, next.centre)
		remaining = slices.DeleteFunc(remaining, func(c candidate) bool { return c.index == next.index })
	}
	return chosen
}

// nearestDistance is the perceptual distance from c to the closest colour in set.
func nearestDistance(c RGB, set []RGB) float64 {
	nearest := math.Inf(1)
	for _, s := range set {
		nearest = math.Min(nearest, PerceptualDistance(c, s))
	}
	return nearest
}

// synthesizeAccents produces the n-len(chosen) missing accents by rotating
// the first chosen accent (or the most saturated cluster) by multiples of
// the golden angle.
func synthesizeAccents(chosen []RGB, all []candidate, n int) []RGB {
	missing := n - len(chosen)
	if missing <= 0 {
		return nil
	}

	var base RGB
	if len(chosen) > 0 {
		base = chosen[0]
	} else if c, ok := argBest(all, func(c candidate) float64 { return c.metrics.Saturation }); ok {
		base = c.centre
	}

	h, sat, v := ToHSV(base)
	sat = math.Max(minSynthSaturation, sat)
	v = math.Max(minSynthValue, math.Min(maxSynthValue, v))

	out := make([]RGB, missing)
	for j := range missing {
		out[j] = FromHSV(h+float64(j+1)*GoldenAngle, sat, v)
	}
	return out
}
