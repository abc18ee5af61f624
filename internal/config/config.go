// Package config resolves nightowl settings from defaults, a TOML config
// file, NIGHTOWL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/nightowl/internal/colour"
	"github.com/jmylchreest/nightowl/internal/pipeline"
)

// AppName is used for the config file name, directory and env prefix.
const AppName = "nightowl"

// EnvKeyReplacer normalises configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the resolved, typed configuration.
type Config struct {
	Clusters   int
	Algorithm  colour.Algorithm
	Seed       int64
	SeedMode   colour.SeedMode
	SampleSize int
	Background colour.RGB
	Thresholds colour.Thresholds

	OutputDir    string
	TemplatesDir string
	Reload       bool

	LogLevel string

	// File is the config file that was read, empty when none was found.
	File string
}

// DefaultDir returns ~/.config/nightowl.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ".config", AppName)
}

// Load resolves the configuration. When path is empty the default config
// file is read if it exists; an explicit path must exist. Flags registered
// in flags under a name from FlagKeys override every other source.
func Load(fs afero.Fs, path string, flags *pflag.FlagSet) (*Config, *viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("toml")

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	v.SetTypeByDefaultValue(true)
	for _, f := range Fields() {
		v.SetDefault(f.Key, f.Value)
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(DefaultDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	bg, err := colour.ParseHex(v.GetString(KeyBackground))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyBackground, err)
	}

	return &Config{
		Clusters:   v.GetInt(KeyClusters),
		Algorithm:  colour.Algorithm(v.GetString(KeyAlgorithm)),
		Seed:       v.GetInt64(KeySeed),
		SeedMode:   colour.SeedMode(v.GetString(KeySeedMode)),
		SampleSize: v.GetInt(KeySampleSize),
		Background: bg,
		Thresholds: colour.Thresholds{
			BlackFloor:          v.GetFloat64(KeyBlackFloor),
			MidBandLow:          v.GetFloat64(KeyMidBandLow),
			MidBandHigh:         v.GetFloat64(KeyMidBandHigh),
			BandWidenStep:       v.GetFloat64(KeyBandWidenStep),
			BandRetries:         v.GetInt(KeyBandRetries),
			Grayscale:           v.GetFloat64(KeyGrayscale),
			BorderMaxSaturation: v.GetFloat64(KeyBorderMaxSaturation),
			BorderMinBrightness: v.GetFloat64(KeyBorderMinBrightness),
			MinReadableDistance: v.GetFloat64(KeyMinReadableDistance),
			MinAccentDistance:   v.GetFloat64(KeyMinAccentDistance),
		},
		OutputDir:    v.GetString(KeyOutputDir),
		TemplatesDir: v.GetString(KeyTemplatesDir),
		Reload:       v.GetBool(KeyReload),
		LogLevel:     v.GetString(KeyLogLevel),
		File:         v.ConfigFileUsed(),
	}, nil
}

// Validate rejects settings the pipeline would refuse anyway, so errors
// surface before any file is read.
func (c *Config) Validate() error {
	if err := c.PipelineOptions().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("invalid configuration: unknown log level %q", c.LogLevel)
	}
	return nil
}

// PipelineOptions converts the extraction settings.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Clusters:   c.Clusters,
		Algorithm:  c.Algorithm,
		Seed:       c.Seed,
		SeedMode:   c.SeedMode,
		SampleSize: c.SampleSize,
		Background: color.RGBA{R: c.Background.R, G: c.Background.G, B: c.Background.B, A: 255},
		Thresholds: c.Thresholds,
	}
}
