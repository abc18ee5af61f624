// Package pipeline runs one image through sampling, clustering, role mapping
// and palette construction.
package pipeline

import (
	"fmt"
	stdimage "image"
	"image/color"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nightowl/internal/colour"
	"github.com/jmylchreest/nightowl/internal/image"
)

// Options configures a Pipeline.
type Options struct {
	Clusters   int
	Algorithm  colour.Algorithm
	Seed       int64
	SeedMode   colour.SeedMode
	SampleSize int
	// Background replaces transparency before sampling. Nil means white.
	Background color.Color
	Thresholds colour.Thresholds
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Clusters:   colour.DefaultClusters,
		Algorithm:  colour.AlgorithmKMeans,
		Seed:       colour.DefaultSeed,
		SeedMode:   colour.SeedModeManual,
		SampleSize: image.DefaultSampleSize,
		Thresholds: colour.DefaultThresholds(),
	}
}

// Validate checks every option that can be rejected before an image is read.
func (o Options) Validate() error {
	if err := colour.ValidateClusterCount(o.Clusters); err != nil {
		return err
	}
	if o.Algorithm != "" && !colour.IsValidAlgorithm(o.Algorithm) {
		return fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", o.Algorithm, colour.ValidAlgorithms())
	}
	if o.SeedMode != "" && !colour.IsValidSeedMode(o.SeedMode) {
		return fmt.Errorf("unknown seed mode: %s (valid: %v)", o.SeedMode, colour.ValidSeedModes())
	}
	if o.SampleSize < 0 {
		return fmt.Errorf("sample size cannot be negative, got %d", o.SampleSize)
	}
	if err := o.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	return nil
}

// Result is the outcome of one successful run.
type Result struct {
	Palette  *colour.Palette
	Clusters []colour.Cluster
	// Seed is the seed actually used, after seed-mode resolution.
	Seed int64
	// Image is the decoded source, kept so callers can save a wallpaper copy.
	Image stdimage.Image
}

// Readability reports the contrast check of the palette.
func (r *Result) Readability() colour.Readability {
	return r.Palette.Readability()
}

// Pipeline holds only immutable configuration, so one value may serve
// concurrent runs on different images.
type Pipeline struct {
	opts   Options
	loader image.Loader
	logger hclog.Logger
}

// New creates a Pipeline. A nil loader reads from the OS filesystem and a
// nil logger discards output.
func New(opts Options, loader image.Loader, logger hclog.Logger) *Pipeline {
	if loader == nil {
		loader = image.NewFileLoader(nil)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pipeline{opts: opts, loader: loader, logger: logger}
}

// Options returns the pipeline configuration.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Run loads the image at path and builds its palette. Options are validated
// before the file is touched.
func (p *Pipeline) Run(path string) (*Result, error) {
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}

	p.logger.Debug("loading image", "path", path)
	img, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	p.logger.Debug("image loaded", "width", b.Dx(), "height", b.Dy())

	return p.RunImage(img)
}

// RunImage builds the palette for an already decoded image.
func (p *Pipeline) RunImage(img stdimage.Image) (*Result, error) {
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}

	sampler := &image.Sampler{Size: p.opts.SampleSize, Background: p.opts.Background}
	samples, err := sampler.Sample(img)
	if err != nil {
		return nil, &image.ImageDecodeError{Err: err}
	}

	seed, err := colour.ResolveSeed(p.opts.SeedMode, p.opts.Seed, samples)
	if err != nil {
		return nil, err
	}

	extractor, err := colour.NewExtractor(p.opts.Algorithm, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	p.logger.Debug("extracting clusters",
		"clusters", p.opts.Clusters,
		"algorithm", p.opts.Algorithm,
		"seed", seed,
		"samples", len(samples))
	clusters, err := extractor.Extract(samples, p.opts.Clusters)
	if err != nil {
		return nil, fmt.Errorf("failed to extract clusters: %w", err)
	}
	for i, c := range clusters {
		p.logger.Trace("cluster", "index", i, "centre", c.Centre.Hex(), "weight", c.Weight)
	}

	assignment, err := colour.NewMapper(p.opts.Thresholds).Map(clusters)
	if err != nil {
		return nil, err
	}
	palette, err := colour.NewPalette(assignment)
	if err != nil {
		return nil, err
	}

	if r := palette.Readability(); r.Warning {
		p.logger.Warn("background and text colours are too similar, try a different cluster count",
			"distance", fmt.Sprintf("%.3f", r.Distance),
			"minimum", p.opts.Thresholds.MinReadableDistance)
	}

	return &Result{
		Palette:  palette,
		Clusters: clusters,
		Seed:     seed,
		Image:    img,
	}, nil
}
