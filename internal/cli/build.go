package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nightowl/internal/colour"
	"github.com/jmylchreest/nightowl/internal/reload"
	"github.com/jmylchreest/nightowl/internal/theme"
)

// newBuildCmd represents the build command
func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [colors.json]",
		Short: "Render theme files from a colors file",
		Long: `Render every application template from a colors file.

Each colour in the file produces a set of placeholder variables
(name_hash, name_0x, name_rgb_array, name_rgba and alpha variants) that are
substituted into the templates. Templates in the custom templates directory
override the built-in ones file by file.

Examples:
  # Build from colors.json into the current directory
  nightowl build

  # Build from an extracted palette into a theme directory
  nightowl build colors_from_image.json -o ~/.config/theme

  # Build and tell waybar to reload its stylesheet
  nightowl build --reload`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := theme.DefaultColorsFile
			if len(args) == 1 {
				path = args[0]
			}
			colors, err := theme.LoadColors(a.fs, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Building theme from %s (%d colours)\n", path, len(colors))
			return a.build(cmd, colors, a.cfg.OutputDir)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output-dir", "o", ".", "directory theme files are written to")
	flags.String("templates-dir", "", "directory with custom templates")
	flags.Bool("reload", false, "signal waybar to reload after building")
	return cmd
}

// build renders every target and prints a per-target summary.
func (a *app) build(cmd *cobra.Command, colors map[string]colour.ColorSpec, outputDir string) error {
	loader := theme.NewLoader(a.fs, a.cfg.TemplatesDir)
	report, err := theme.NewBuilder(a.fs, loader, a.logger).Build(colors, outputDir)
	if err != nil {
		return fmt.Errorf("failed to build theme: %w", err)
	}

	out := cmd.OutOrStdout()
	tb := newTable("TARGET", "STATUS", "PATH")
	for _, res := range report.Results {
		tb.addRow(res.Target.Output, targetStatus(res), res.Path)
		for _, c := range res.Copied {
			tb.addRow("", "copied", c)
		}
	}
	if err := tb.render(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d files written to %s (%d variables)\n", len(report.Written()), outputDir, report.Variables)

	if a.cfg.Reload {
		pids, err := reload.ReloadWaybar()
		if err != nil {
			a.logger.Warn("could not reload waybar", "error", err)
			return nil
		}
		if len(pids) == 0 {
			a.logger.Info("waybar is not running, nothing to reload")
			return nil
		}
		a.logger.Info("reloaded waybar", "pids", pids)
	}
	return nil
}

func targetStatus(res theme.TargetResult) string {
	var parts []string
	switch {
	case res.Missing:
		return "missing template"
	case res.FromCustom:
		parts = append(parts, "custom")
	default:
		parts = append(parts, "ok")
	}
	if n := len(res.Unreplaced); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unreplaced", n))
	}
	return strings.Join(parts, ", ")
}
