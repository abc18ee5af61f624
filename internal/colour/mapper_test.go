package colour

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func mustMap(t *testing.T, clusters []Cluster) Assignment {
	t.Helper()
	a, err := NewMapper(DefaultThresholds()).Map(clusters)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	return a
}

func mustColour(t *testing.T, a Assignment, r Role) RGB {
	t.Helper()
	c, ok := a.Colour(r)
	if !ok {
		t.Fatalf("role %s not assigned", r)
	}
	return c
}

func TestMapQuadrants(t *testing.T) {
	clusters := []Cluster{
		{Centre: RGB{R: 255}, Weight: 0.25},
		{Centre: RGB{B: 255}, Weight: 0.25},
		{Centre: RGB{R: 255, G: 255, B: 255}, Weight: 0.25},
		{Centre: RGB{}, Weight: 0.25},
	}
	a := mustMap(t, clusters)

	want := map[Role]string{
		RoleBackgroundDark:        "#0000ff",
		RoleBackgroundDarkOverlay: "#0000ff",
		RoleBackgroundMid:         "#ff0000",
		RoleTextSecondary:         "#000000",
		RoleBorder:                "#ffffff",
		RoleBackgroundLight1:      "#ffffff",
		RoleBackgroundLight2:      "#ff0000",
		RoleAccent1:               "#ff0000",
		RoleAccent2:               "#0000ff",
	}
	for role, hex := range want {
		if got := mustColour(t, a, role).Hex(); got != hex {
			t.Errorf("%s = %s, want %s", role, got, hex)
		}
	}
	if a.Readability.Warning {
		t.Errorf("unexpected readability warning, distance %v", a.Readability.Distance)
	}
	for i := 2; i < AccentCount; i++ {
		if !a.Synthesized(AccentRole(i)) {
			t.Errorf("%s should be synthesized", AccentRole(i))
		}
	}
	if a.Synthesized(RoleAccent1) || a.Synthesized(RoleAccent2) {
		t.Error("accents taken from clusters must not be marked synthesized")
	}
}

func TestMapSolidColourWarns(t *testing.T) {
	red := RGB{R: 255}
	clusters := []Cluster{{Centre: red, Weight: 1}, {Centre: red}, {Centre: red}, {Centre: red}}
	a := mustMap(t, clusters)

	if !a.Readability.Warning {
		t.Error("expected readability warning for a single-colour image")
	}
	if a.Readability.Distance != 0 {
		t.Errorf("distance = %v, want 0", a.Readability.Distance)
	}
	if mustColour(t, a, RoleBackgroundDark) != red {
		t.Error("background-dark should be the only colour")
	}
	if !a.Synthesized(RoleTextSecondary) {
		t.Error("text-secondary should be derived when nothing is darker than the text")
	}
	if _, err := NewPalette(a); err != nil {
		t.Errorf("palette should still be complete: %v", err)
	}
}

func TestMapGrayscaleSynthesizesAccents(t *testing.T) {
	var clusters []Cluster
	for _, v := range []uint8{30, 90, 150, 220} {
		clusters = append(clusters, Cluster{Centre: RGB{R: v, G: v, B: v}, Weight: 0.25})
	}
	a := mustMap(t, clusters)

	var hues []float64
	for i := range AccentCount {
		r := AccentRole(i)
		if !a.Synthesized(r) {
			t.Errorf("%s should be synthesized", r)
		}
		c := mustColour(t, a, r)
		if s := Saturation(c); s < minSynthSaturation-0.02 {
			t.Errorf("%s saturation = %v, want >= %v", r, s, minSynthSaturation)
		}
		hues = append(hues, Hue(c))
	}
	for i := 1; i < len(hues); i++ {
		step := math.Mod(hues[i]-hues[i-1]+360, 360)
		if math.Abs(step-GoldenAngle) > 2 {
			t.Errorf("hue step %d = %v, want about %v", i, step, GoldenAngle)
		}
	}
}

func TestMapBlackFloor(t *testing.T) {
	clusters := []Cluster{
		{Centre: RGB{}, Weight: 0.4},
		{Centre: RGB{R: 40, G: 30, B: 60}, Weight: 0.3},
		{Centre: RGB{R: 150, G: 140, B: 120}, Weight: 0.2},
		{Centre: RGB{R: 240, G: 230, B: 210}, Weight: 0.1},
	}
	a := mustMap(t, clusters)
	if got := mustColour(t, a, RoleBackgroundDark); got != clusters[1].Centre {
		t.Errorf("background-dark = %v, want %v (letterbox black skipped)", got, clusters[1].Centre)
	}
}

func TestMapAllBelowBlackFloor(t *testing.T) {
	clusters := []Cluster{
		{Centre: RGB{R: 5, G: 5, B: 5}, Weight: 0.5},
		{Centre: RGB{}, Weight: 0.5},
	}
	a := mustMap(t, clusters)
	if got := mustColour(t, a, RoleBackgroundDark); got != (RGB{}) {
		t.Errorf("background-dark = %v, want darkest overall", got)
	}
}

func TestMapTextSecondaryDarkerOnNearBlack(t *testing.T) {
	clusters := []Cluster{
		{Centre: RGB{}, Weight: 0.5},
		{Centre: RGB{R: 10, G: 10, B: 10}, Weight: 0.5},
	}
	a := mustMap(t, clusters)

	mid := mustColour(t, a, RoleBackgroundMid)
	secondary := mustColour(t, a, RoleTextSecondary)
	if Brightness(secondary) >= Brightness(mid) {
		t.Errorf("text-secondary %v (%v) not darker than background-mid %v (%v)",
			secondary, Brightness(secondary), mid, Brightness(mid))
	}
	if !a.Synthesized(RoleTextSecondary) {
		t.Error("text-secondary should be synthesized")
	}
}

func TestDarkerValue(t *testing.T) {
	for _, v := range []float64{1, 0.5, 0.3, 0.29, 0.1, 0.04, 0.01} {
		if got := darkerValue(v); got >= v || got < 0 {
			t.Errorf("darkerValue(%v) = %v", v, got)
		}
	}
}

func TestMapWidenedBandRecovers(t *testing.T) {
	clusters := []Cluster{
		{Centre: RGB{R: 0x50, G: 0x50, B: 0x50}, Weight: 0.4},
		{Centre: RGB{R: 0x69, G: 0x69, B: 0x69}, Weight: 0.3},
		{Centre: RGB{R: 0xc8, G: 0xc8, B: 0xc8}, Weight: 0.3},
	}
	a := mustMap(t, clusters)

	if got := mustColour(t, a, RoleBackgroundMid); got != clusters[2].Centre {
		t.Errorf("background-mid = %v, want %v from the widened band", got, clusters[2].Centre)
	}
	if a.Readability.Warning {
		t.Errorf("unexpected readability warning: %+v", a.Readability)
	}
	if a.Readability.Distance < DefaultThresholds().MinReadableDistance {
		t.Errorf("distance %v below the readable minimum", a.Readability.Distance)
	}
}

func TestMapBrightnessOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := range 200 {
		k := 2 + rng.Intn(15)
		clusters := make([]Cluster, k)
		for i := range clusters {
			clusters[i] = Cluster{
				Centre: RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))},
				Weight: 1 / float64(k),
			}
		}
		a := mustMap(t, clusters)

		dark := Brightness(mustColour(t, a, RoleBackgroundDark))
		mid := Brightness(mustColour(t, a, RoleBackgroundMid))
		l1 := Brightness(mustColour(t, a, RoleBackgroundLight1))
		l2 := Brightness(mustColour(t, a, RoleBackgroundLight2))
		if ts := Brightness(mustColour(t, a, RoleTextSecondary)); ts >= mid && mid > 0 {
			t.Fatalf("trial %d: text-secondary (%v) not darker than background-mid (%v)", trial, ts, mid)
		}
		if dark > mid || mid > l1 || mid > l2 {
			t.Fatalf("trial %d: brightness order broken: dark=%v mid=%v light1=%v light2=%v", trial, dark, mid, l1, l2)
		}
		if l1 < l2 {
			t.Fatalf("trial %d: light-1 (%v) darker than light-2 (%v)", trial, l1, l2)
		}
		if _, err := NewPalette(a); err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
	}
}

func TestMapDeterministic(t *testing.T) {
	clusters, err := NewKMeansExtractor(DefaultSeed).Extract(noisySamples(3000, 5), 10)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	first := mustMap(t, clusters)
	for range 3 {
		if again := mustMap(t, clusters); again != first {
			t.Fatal("Map returned different assignments for the same input")
		}
	}
}

func TestMapNoClusters(t *testing.T) {
	_, err := NewMapper(DefaultThresholds()).Map(nil)
	var incomplete *IncompletePaletteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompletePaletteError, got %v", err)
	}
}

func randomCandidates(rng *rand.Rand, n int) []candidate {
	pool := make([]candidate, n)
	for i := range pool {
		c := RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
		pool[i] = candidate{index: i, centre: c, metrics: Analyse(c)}
	}
	return pool
}

func minPairwise(set []RGB) float64 {
	m := math.Inf(1)
	for i := range set {
		for j := i + 1; j < len(set); j++ {
			m = math.Min(m, PerceptualDistance(set[i], set[j]))
		}
	}
	return m
}

func TestSelectDiverseGreedyStep(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for trial := range 50 {
		pool := randomCandidates(rng, 12)
		chosen := selectDiverse(nil, pool, 6, 0)
		if len(chosen) != 6 {
			t.Fatalf("trial %d: chose %d colours, want 6", trial, len(chosen))
		}

		for j := 1; j < len(chosen); j++ {
			picked := nearestDistance(chosen[j], chosen[:j])
			for _, c := range pool {
				if containsColour(chosen[:j+1], c.centre) {
					continue
				}
				if d := nearestDistance(c.centre, chosen[:j]); d > picked+1e-12 {
					t.Fatalf("trial %d step %d: %v is farther (%v) than the pick (%v)", trial, j, c.centre, d, picked)
				}
			}
		}
	}
}

func TestSelectDiverseApproximatesOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	const n, k = 7, 4
	for trial := range 30 {
		pool := randomCandidates(rng, n)
		greedy := minPairwise(selectDiverse(nil, pool, k, 0))

		best := 0.0
		for mask := range 1 << n {
			var set []RGB
			for i := range n {
				if mask&(1<<i) != 0 {
					set = append(set, pool[i].centre)
				}
			}
			if len(set) == k {
				best = math.Max(best, minPairwise(set))
			}
		}
		if greedy*2 < best-1e-9 {
			t.Errorf("trial %d: greedy spread %v is below half the optimum %v", trial, greedy, best)
		}
	}
}

func TestSelectDiverseSkipsDuplicates(t *testing.T) {
	red := RGB{R: 200, G: 20, B: 20}
	pool := []candidate{
		{index: 0, centre: red, metrics: Analyse(red)},
		{index: 1, centre: red, metrics: Analyse(red)},
		{index: 2, centre: RGB{R: 201, G: 20, B: 20}, metrics: Analyse(RGB{R: 201, G: 20, B: 20})},
	}
	chosen := selectDiverse(nil, pool, 8, DefaultThresholds().MinAccentDistance)
	if len(chosen) != 1 {
		t.Errorf("expected near-identical colours to collapse to one accent, got %v", chosen)
	}
}

func containsColour(set []RGB, c RGB) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Thresholds)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Thresholds) {}},
		{name: "band inverted", mutate: func(th *Thresholds) { th.MidBandLow = 0.8 }, wantErr: true},
		{name: "floor out of range", mutate: func(th *Thresholds) { th.BlackFloor = 1.5 }, wantErr: true},
		{name: "negative retries", mutate: func(th *Thresholds) { th.BandRetries = -1 }, wantErr: true},
		{name: "negative distance", mutate: func(th *Thresholds) { th.MinReadableDistance = -0.1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			if err := th.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
