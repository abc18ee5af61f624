package colour

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// Thresholds are the calibration constants of the palette mapper.
type Thresholds struct {
	// BlackFloor rejects near-black clusters (letterboxing) as background.
	BlackFloor float64
	// MidBandLow and MidBandHigh bound the medium-brightness text band.
	MidBandLow  float64
	MidBandHigh float64
	// BandWidenStep widens the band on each readability retry.
	BandWidenStep float64
	BandRetries   int
	// Grayscale is the saturation below which a colour is neutral.
	Grayscale float64
	// BorderMaxSaturation and BorderMinBrightness describe a border tone.
	BorderMaxSaturation float64
	BorderMinBrightness float64
	// MinReadableDistance is the minimum background-dark/background-mid
	// perceptual distance.
	MinReadableDistance float64
	// MinAccentDistance treats closer accent candidates as duplicates.
	MinAccentDistance float64
}

// DefaultThresholds returns the built-in calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BlackFloor:          0.05,
		MidBandLow:          0.40,
		MidBandHigh:         0.70,
		BandWidenStep:       0.15,
		BandRetries:         2,
		Grayscale:           0.15,
		BorderMaxSaturation: 0.25,
		BorderMinBrightness: 0.30,
		MinReadableDistance: 0.25,
		MinAccentDistance:   0.02,
	}
}

// Validate checks that thresholds are within range and consistent.
func (t Thresholds) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"black floor", t.BlackFloor},
		{"mid band low", t.MidBandLow},
		{"mid band high", t.MidBandHigh},
		{"band widen step", t.BandWidenStep},
		{"grayscale", t.Grayscale},
		{"border max saturation", t.BorderMaxSaturation},
		{"border min brightness", t.BorderMinBrightness},
	}
	for _, u := range unit {
		if u.value < 0 || u.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", u.name, u.value)
		}
	}
	if t.MidBandLow >= t.MidBandHigh {
		return fmt.Errorf("mid band low (%g) must be below mid band high (%g)", t.MidBandLow, t.MidBandHigh)
	}
	if t.BandRetries < 0 {
		return fmt.Errorf("band retries cannot be negative, got %d", t.BandRetries)
	}
	if t.MinReadableDistance < 0 || t.MinAccentDistance < 0 {
		return fmt.Errorf("distances cannot be negative")
	}
	return nil
}

// Readability is the result of the background-dark / background-mid
// contrast check. Warning is set when Distance stayed below the threshold.
type Readability struct {
	Distance float64
	Warning  bool
}

// Assignment is the mapper output: one colour per role.
type Assignment struct {
	colours     [roleCount]RGB
	filled      [roleCount]bool
	synthesized [roleCount]bool

	Readability Readability
}

// Colour returns the colour assigned to r.
func (a Assignment) Colour(r Role) (RGB, bool) {
	if !r.Valid() || !a.filled[r] {
		return RGB{}, false
	}
	return a.colours[r], true
}

// Synthesized reports whether r was derived rather than taken from a cluster.
func (a Assignment) Synthesized(r Role) bool {
	return r.Valid() && a.synthesized[r]
}

func (a *Assignment) set(r Role, c RGB, synthesized bool) {
	a.colours[r] = c
	a.filled[r] = true
	a.synthesized[r] = synthesized
}

// Mapper assigns palette roles to clusters.
type Mapper struct {
	thresholds Thresholds
}

// NewMapper creates a Mapper with the given thresholds.
func NewMapper(t Thresholds) *Mapper {
	return &Mapper{thresholds: t}
}

// candidate is a cluster with its metrics and position in the input list.
type candidate struct {
	index   int
	centre  RGB
	metrics Metrics
}

// mapping is the state of one Map call.
type mapping struct {
	t        Thresholds
	all      []candidate
	consumed []bool
	out      Assignment
}

// Map assigns every role from the clusters. The result depends only on the
// clusters and thresholds; ties resolve to the earlier cluster.
func (m *Mapper) Map(clusters []Cluster) (Assignment, error) {
	if len(clusters) == 0 {
		return Assignment{}, &IncompletePaletteError{Missing: AllRoles()}
	}

	st := &mapping{
		t:        m.thresholds,
		all:      make([]candidate, len(clusters)),
		consumed: make([]bool, len(clusters)),
	}
	for i, c := range clusters {
		st.all[i] = candidate{index: i, centre: c.Centre, metrics: Analyse(c.Centre)}
	}

	dark := st.backgroundDark()
	st.out.set(RoleBackgroundDark, dark.centre, false)
	st.out.set(RoleBackgroundDarkOverlay, dark.centre, false)

	mid := st.backgroundMid(dark)
	st.out.set(RoleBackgroundMid, mid.centre, false)

	st.textSecondary(dark, mid)
	st.border()
	st.lights(mid)
	st.accents()

	return st.out, nil
}

func (s *mapping) consume(c candidate) {
	s.consumed[c.index] = true
}

func (s *mapping) unconsumed(pred func(candidate) bool) []candidate {
	return lo.Filter(s.all, func(c candidate, i int) bool {
		return !s.consumed[i] && pred(c)
	})
}

func (s *mapping) matching(pred func(candidate) bool) []candidate {
	return filter(s.all, pred)
}

// argBest returns the candidate with the highest score; the first wins ties.
func argBest(pool []candidate, score func(candidate) float64) (candidate, bool) {
	if len(pool) == 0 {
		return candidate{}, false
	}
	best, bestScore := pool[0], score(pool[0])
	for _, c := range pool[1:] {
		if sc := score(c); sc > bestScore {
			best, bestScore = c, sc
		}
	}
	return best, true
}

func brightness(c candidate) float64 { return c.metrics.Brightness }

func darkness(c candidate) float64 { return -c.metrics.Brightness }

// backgroundDark picks the darkest cluster above the black floor, falling
// back to the darkest cluster overall.
func (s *mapping) backgroundDark() candidate {
	lit := s.matching(func(c candidate) bool { return c.metrics.Brightness > s.t.BlackFloor })
	dark, ok := argBest(lit, darkness)
	if !ok {
		dark, _ = argBest(s.all, darkness)
	}
	s.consume(dark)
	return dark
}

// backgroundMid picks the text colour and records the readability result.
func (s *mapping) backgroundMid(dark candidate) candidate {
	notDarker := func(c candidate) bool { return c.metrics.Brightness >= dark.metrics.Brightness }
	pool := s.unconsumed(notDarker)
	if len(pool) == 0 {
		pool = s.matching(notDarker)
	}

	distance := func(c candidate) float64 { return PerceptualDistance(c.centre, dark.centre) }
	inBand := func(from, to float64) []candidate {
		return filter(pool, func(c candidate) bool {
			return c.metrics.Brightness >= from && c.metrics.Brightness <= to
		})
	}

	low, high := s.t.MidBandLow, s.t.MidBandHigh
	mid, ok := argBest(inBand(low, high), distance)
	if !ok {
		centre := (low + high) / 2
		mid, _ = argBest(pool, func(c candidate) float64 {
			return -math.Abs(c.metrics.Brightness - centre)
		})
	}

	best := distance(mid)
	for step := 1; best < s.t.MinReadableDistance && step <= s.t.BandRetries; step++ {
		widen := float64(step) * s.t.BandWidenStep
		c, ok := argBest(inBand(math.Max(0, low-widen), math.Min(1, high+widen)), distance)
		if ok && distance(c) > best {
			mid, best = c, distance(c)
		}
	}

	s.out.Readability = Readability{Distance: best, Warning: best < s.t.MinReadableDistance}
	s.consume(mid)
	return mid
}

// textSecondary picks the next colour down from the text colour, or darkens
// the text colour when no cluster qualifies.
func (s *mapping) textSecondary(dark, mid candidate) {
	pool := s.unconsumed(func(c candidate) bool {
		return c.metrics.Brightness < mid.metrics.Brightness && c.centre != dark.centre
	})
	if c, ok := argBest(pool, brightness); ok {
		s.consume(c)
		s.out.set(RoleTextSecondary, c.centre, false)
		return
	}
	h, sat, v := ToHSV(mid.centre)
	s.out.set(RoleTextSecondary, FromHSV(h, sat, darkerValue(v)), true)
}

// darkerValue steps an HSV value down by 0.2, halving it instead once that
// would fall under 0.1. The result is below v for any v > 0.
func darkerValue(v float64) float64 {
	if v-0.2 >= 0.1 {
		return v - 0.2
	}
	return v / 2
}

// border picks a low-saturation, reasonably bright tone.
func (s *mapping) border() {
	lowSat := func(c candidate) bool { return c.metrics.Saturation <= s.t.BorderMaxSaturation }
	if pool := s.unconsumed(func(c candidate) bool {
		return lowSat(c) && c.metrics.Brightness >= s.t.BorderMinBrightness
	}); len(pool) > 0 {
		s.consume(pool[0])
		s.out.set(RoleBorder, pool[0].centre, false)
		return
	}
	if c, ok := argBest(s.unconsumed(lowSat), brightness); ok {
		s.consume(c)
		s.out.set(RoleBorder, c.centre, false)
		return
	}
	if c, ok := argBest(s.unconsumed(func(candidate) bool { return true }), brightness); ok {
		s.consume(c)
		s.out.set(RoleBorder, c.centre, false)
		return
	}
	c, _ := argBest(s.all, brightness)
	s.out.set(RoleBorder, c.centre, false)
}

// lights picks the two brightest tones at least as bright as the text colour.
func (s *mapping) lights(mid candidate) {
	notDarker := func(c candidate) bool { return c.metrics.Brightness >= mid.metrics.Brightness }
	picked := byBrightnessDesc(s.unconsumed(notDarker))
	if len(picked) > 2 {
		picked = picked[:2]
	}
	for _, c := range picked {
		s.consume(c)
	}
	if len(picked) < 2 {
		for _, c := range byBrightnessDesc(s.matching(notDarker)) {
			if len(picked) == 2 {
				break
			}
			if !slices.ContainsFunc(picked, func(p candidate) bool { return p.index == c.index }) {
				picked = append(picked, c)
			}
		}
	}
	for len(picked) < 2 {
		picked = append(picked, picked[len(picked)-1])
	}
	picked = byBrightnessDesc(picked)
	s.out.set(RoleBackgroundLight1, picked[0].centre, false)
	s.out.set(RoleBackgroundLight2, picked[1].centre, false)
}

func byBrightnessDesc(pool []candidate) []candidate {
	sorted := slices.Clone(pool)
	slices.SortStableFunc(sorted, func(a, b candidate) int {
		switch {
		case a.metrics.Brightness > b.metrics.Brightness:
			return -1
		case a.metrics.Brightness < b.metrics.Brightness:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

func filter(pool []candidate, pred func(candidate) bool) []candidate {
	return lo.Filter(pool, func(c candidate, _ int) bool { return pred(c) })
}
