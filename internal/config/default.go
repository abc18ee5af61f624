package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/jmylchreest/nightowl/internal/colour"
	"github.com/jmylchreest/nightowl/internal/image"
)

// Configuration keys.
const (
	KeyClusters   = "extract.clusters"
	KeyAlgorithm  = "extract.algorithm"
	KeySeed       = "extract.seed"
	KeySeedMode   = "extract.seed_mode"
	KeySampleSize = "extract.sample_size"
	KeyBackground = "extract.background"

	KeyBlackFloor          = "mapper.black_floor"
	KeyMidBandLow          = "mapper.mid_band_low"
	KeyMidBandHigh         = "mapper.mid_band_high"
	KeyBandWidenStep       = "mapper.band_widen_step"
	KeyBandRetries         = "mapper.band_retries"
	KeyGrayscale           = "mapper.grayscale"
	KeyBorderMaxSaturation = "mapper.border_max_saturation"
	KeyBorderMinBrightness = "mapper.border_min_brightness"
	KeyMinReadableDistance = "mapper.min_readable_distance"
	KeyMinAccentDistance   = "mapper.min_accent_distance"

	KeyOutputDir    = "build.output_dir"
	KeyTemplatesDir = "build.templates_dir"
	KeyReload       = "build.reload"

	KeyLogLevel = "log.level"
)

// FlagKeys maps command-line flag names to the keys they override.
var FlagKeys = map[string]string{
	"clusters":      KeyClusters,
	"algorithm":     KeyAlgorithm,
	"seed":          KeySeed,
	"seed-mode":     KeySeedMode,
	"output-dir":    KeyOutputDir,
	"templates-dir": KeyTemplatesDir,
	"reload":        KeyReload,
	"log-level":     KeyLogLevel,
}

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable name for this field.
func (f Field) Env() string {
	return strings.ToUpper(AppName + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Pretty renders the field with its effective value from v.
func (f Field) Pretty(v *viper.Viper) string {
	return fmt.Sprintf("%s\n  Env:     %s\n  Value:   %v\n  Default: %v\n  %s",
		f.Key, f.Env(), v.Get(f.Key), f.Value, f.Description)
}

var defaults = func() []Field {
	t := colour.DefaultThresholds()
	return []Field{
		{KeyClusters, colour.DefaultClusters, fmt.Sprintf("Number of colour clusters to extract (at least %d)", colour.MinClusters)},
		{KeyAlgorithm, string(colour.AlgorithmKMeans), "Cluster extraction algorithm: kmeans, dominant"},
		{KeySeed, colour.DefaultSeed, "Seed for k-means initialisation when seed_mode is manual"},
		{KeySeedMode, string(colour.SeedModeManual), "How the seed is chosen: manual, content, random"},
		{KeySampleSize, image.DefaultSampleSize, "Edge length images are resized to before sampling"},
		{KeyBackground, "#ffffff", "Colour transparent pixels are flattened onto"},

		{KeyBlackFloor, t.BlackFloor, "background-dark must be brighter than this (skips letterboxing)"},
		{KeyMidBandLow, t.MidBandLow, "Lower brightness bound for the main text colour"},
		{KeyMidBandHigh, t.MidBandHigh, "Upper brightness bound for the main text colour"},
		{KeyBandWidenStep, t.BandWidenStep, "Band widening per readability retry"},
		{KeyBandRetries, t.BandRetries, "Number of readability retries"},
		{KeyGrayscale, t.Grayscale, "Saturation below which a colour cannot be an accent"},
		{KeyBorderMaxSaturation, t.BorderMaxSaturation, "Maximum saturation of the border colour"},
		{KeyBorderMinBrightness, t.BorderMinBrightness, "Minimum brightness of the border colour"},
		{KeyMinReadableDistance, t.MinReadableDistance, "Minimum perceptual distance between background and text"},
		{KeyMinAccentDistance, t.MinAccentDistance, "Accent candidates closer than this are duplicates"},

		{KeyOutputDir, ".", "Directory generated theme files are written to"},
		{KeyTemplatesDir, "", "Directory with custom templates (default ~/.config/nightowl/templates)"},
		{KeyReload, false, "Signal waybar to reload after building"},

		{KeyLogLevel, "", "Log level: trace, debug, info, warn, error, off (default from -v/-q)"},
	}
}()

// Fields returns every configuration field sorted by key.
func Fields() []Field {
	fields := slices.Clone(defaults)
	slices.SortFunc(fields, func(a, b Field) int { return strings.Compare(a.Key, b.Key) })
	return fields
}

// Lookup returns the field for key.
func Lookup(key string) (Field, bool) {
	return lo.Find(defaults, func(f Field) bool { return f.Key == key })
}
