package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nightowl/internal/colour"
	"github.com/jmylchreest/nightowl/internal/image"
	"github.com/jmylchreest/nightowl/internal/pipeline"
	"github.com/jmylchreest/nightowl/internal/version"
)

// DefaultExtractOutput is the colors file written by extract when -o is not given.
const DefaultExtractOutput = "colors_from_image.json"

const sourceTypeLocal = "local_file"

type extractOptions struct {
	output       string
	wallpaperDir string
	preview      bool
	build        bool
}

// newExtractCmd represents the extract command
func newExtractCmd(a *app) *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a theme palette from an image",
		Long: `Extract a theme palette from a wallpaper image.

The image is resized, clustered into a small set of dominant colours and the
clusters are mapped onto theme roles: dark, middle and light backgrounds, a
border colour and eight accents. The result is written as a colors file that
the build command renders into application configs.

Supported image formats: ` + fmt.Sprint(image.SupportedImageExtensions()) + `

Examples:
  # Extract 8 clusters (default) into colors_from_image.json
  nightowl extract wallpaper.jpg

  # Use 12 clusters and a reproducible seed
  nightowl extract -k 12 --seed 7 wallpaper.png

  # Derive the seed from the image itself
  nightowl extract --seed-mode content wallpaper.png

  # Show colour swatches and build every theme file straight away
  nightowl extract --preview --build --output-dir ~/.config/theme wallpaper.jpg

  # Keep a flattened PNG copy next to the generated theme
  nightowl extract --wallpaper-dir ~/.config/theme/backgrounds wallpaper.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", DefaultExtractOutput, "output colors file")
	flags.IntP("clusters", "k", colour.DefaultClusters, fmt.Sprintf("number of colour clusters to extract (at least %d)", colour.MinClusters))
	flags.StringP("algorithm", "a", string(colour.AlgorithmKMeans), fmt.Sprintf("extraction algorithm %v", colour.ValidAlgorithms()))
	flags.Int64("seed", colour.DefaultSeed, "seed for k-means initialisation")
	flags.String("seed-mode", string(colour.SeedModeManual), fmt.Sprintf("seed mode %v", colour.ValidSeedModes()))
	flags.StringVar(&opts.wallpaperDir, "wallpaper-dir", "", "copy the image as "+image.WallpaperFile+" into this directory")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches in the summary")
	flags.BoolVar(&opts.build, "build", false, "build theme files from the extracted palette")
	flags.String("output-dir", ".", "directory for theme files when --build is set")
	flags.String("templates-dir", "", "directory with custom templates")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, path string, opts extractOptions) error {
	if err := image.ValidateImagePath(a.fs, path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extracting colours from: %s\n", path)
	fmt.Fprintf(out, "Using %d colour clusters (%s)\n", a.cfg.Clusters, a.cfg.Algorithm.Method())

	opt := a.cfg.PipelineOptions()
	res, err := pipeline.New(opt, image.NewFileLoader(a.fs), a.logger).Run(path)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	wallpaper := "not copied"
	if opts.wallpaperDir != "" {
		saved, err := image.SaveWallpaper(a.fs, res.Image, opts.wallpaperDir, opt.Background)
		if err != nil {
			a.logger.Warn("could not copy wallpaper", "dir", opts.wallpaperDir, "error", err)
		} else {
			wallpaper = saved
			fmt.Fprintf(out, "Wallpaper copied to: %s\n", saved)
		}
	}

	file := colour.ColorsFile{
		Colors: res.Palette,
		Metadata: colour.Metadata{
			SourceImage:        path,
			SourceType:         sourceTypeLocal,
			WallpaperPath:      wallpaper,
			ExtractionMethod:   a.cfg.Algorithm.Method(),
			Clusters:           a.cfg.Clusters,
			Seed:               res.Seed,
			ReadabilityWarning: res.Readability().Warning,
			GeneratedBy:        version.GeneratedBy(),
		},
	}
	if err := writeColorsFile(a.fs, opts.output, file); err != nil {
		return err
	}
	fmt.Fprintf(out, "Theme colours saved to: %s\n\n", opts.output)

	printPalette(out, res.Palette, opts.preview && isTerminal(out))

	if !opts.build {
		return nil
	}
	fmt.Fprintln(out)
	return a.build(cmd, res.Palette.Specs(), a.cfg.OutputDir)
}

func writeColorsFile(fs afero.Fs, path string, f colour.ColorsFile) error {
	data, err := f.ToJSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write colors file: %w", err)
	}
	return nil
}
