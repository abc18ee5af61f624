package colour

import "testing"

func TestResolveSeed(t *testing.T) {
	samples := quadrantSamples(10)

	t.Run("manual", func(t *testing.T) {
		got, err := ResolveSeed(SeedModeManual, 7, samples)
		if err != nil || got != 7 {
			t.Errorf("ResolveSeed(manual, 7) = %d, %v", got, err)
		}
	})

	t.Run("empty mode is manual", func(t *testing.T) {
		got, err := ResolveSeed("", DefaultSeed, samples)
		if err != nil || got != DefaultSeed {
			t.Errorf("ResolveSeed(\"\", %d) = %d, %v", DefaultSeed, got, err)
		}
	})

	t.Run("content", func(t *testing.T) {
		a, err := ResolveSeed(SeedModeContent, 0, samples)
		if err != nil {
			t.Fatalf("ResolveSeed: %v", err)
		}
		b, _ := ResolveSeed(SeedModeContent, 99, quadrantSamples(10))
		if a != b {
			t.Errorf("content seed depends on more than pixels: %d != %d", a, b)
		}
		if c := ContentSeed(quadrantSamples(12)); c == a {
			t.Error("different content produced the same seed")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := ResolveSeed("sometimes", 0, samples); err == nil {
			t.Error("expected error for unknown mode")
		}
	})
}

func TestIsValidSeedMode(t *testing.T) {
	for _, m := range ValidSeedModes() {
		if !IsValidSeedMode(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	if IsValidSeedMode("weekly") {
		t.Error("unexpected valid mode")
	}
}
