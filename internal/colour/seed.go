package colour

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"slices"
	"time"
)

// SeedMode determines how the k-means seed is chosen.
type SeedMode string

const (
	// SeedModeManual uses the configured seed value (default).
	SeedModeManual SeedMode = "manual"
	// SeedModeContent derives the seed from a hash of the samples.
	SeedModeContent SeedMode = "content"
	// SeedModeRandom uses a non-deterministic seed (varies each run).
	SeedModeRandom SeedMode = "random"
)

// ValidSeedModes returns every accepted seed mode.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedModeManual, SeedModeContent, SeedModeRandom}
}

// ResolveSeed returns the seed for a run.
func ResolveSeed(mode SeedMode, value int64, samples []RGB) (int64, error) {
	switch mode {
	case SeedModeManual, "":
		return value, nil
	case SeedModeContent:
		return ContentSeed(samples), nil
	case SeedModeRandom:
		// #nosec G404 -- Random seed generation is intentionally non-deterministic
		return time.Now().UnixNano() + int64(rand.Intn(1000000)), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s (valid: %v)", mode, ValidSeedModes())
	}
}

// ContentSeed hashes the samples so identical pixel content yields the same
// seed regardless of file name.
func ContentSeed(samples []RGB) int64 {
	hasher := sha256.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(samples)))
	hasher.Write(n[:])
	buf := make([]byte, 0, 3*len(samples))
	for _, s := range samples {
		buf = append(buf, s.R, s.G, s.B)
	}
	hasher.Write(buf)
	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8]))
}

// IsValidSeedMode reports whether mode is accepted.
func IsValidSeedMode(mode SeedMode) bool {
	return slices.Contains(ValidSeedModes(), mode)
}
