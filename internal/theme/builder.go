package theme

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/jmylchreest/nightowl/internal/colour"
)

// Target maps one template to the file it renders.
type Target struct {
	Template string
	Output   string
	// CopySupportFiles copies the non-template files next to the template
	// into the output directory.
	CopySupportFiles bool
}

// DefaultTargets returns the built-in template mapping.
func DefaultTargets() []Target {
	return []Target{
		{Template: "alacritty.toml.template", Output: "alacritty.toml"},
		{Template: "btop.theme.template", Output: "btop.theme"},
		{Template: "chromium-theme/manifest.json.template", Output: "chromium-theme/manifest.json", CopySupportFiles: true},
		{Template: "hyprland.conf.template", Output: "hyprland.conf"},
		{Template: "hyprlock.conf.template", Output: "hyprlock.conf"},
		{Template: "mako.ini.template", Output: "mako.ini"},
		{Template: "neovim.lua.template", Output: "neovim.lua"},
		{Template: "swayosd.css.template", Output: "swayosd.css"},
		{Template: "walker.css.template", Output: "walker.css"},
		{Template: "waybar.css.template", Output: "waybar.css"},
		{Template: "wofi.css.template", Output: "wofi.css"},
	}
}

// TargetResult reports what happened to one target.
type TargetResult struct {
	Target     Target
	Path       string
	Written    bool
	FromCustom bool
	Missing    bool
	Unreplaced []string
	Copied     []string
}

// Report is the outcome of a Build.
type Report struct {
	Variables int
	Results   []TargetResult
}

// Written returns the paths of every generated file.
func (r Report) Written() []string {
	var out []string
	for _, res := range r.Results {
		if res.Written {
			out = append(out, res.Path)
		}
		out = append(out, res.Copied...)
	}
	return out
}

// Builder renders templates into an output directory.
type Builder struct {
	fs      afero.Fs
	loader  *Loader
	targets []Target
	logger  hclog.Logger
}

// NewBuilder creates a Builder writing to fs with the default targets.
func NewBuilder(fs afero.Fs, loader *Loader, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{fs: fs, loader: loader, targets: DefaultTargets(), logger: logger}
}

// WithTargets replaces the template mapping.
func (b *Builder) WithTargets(targets []Target) *Builder {
	b.targets = targets
	return b
}

// Build renders every target for colors into outputDir. A template that
// cannot be found is reported and skipped; write failures abort the build.
func (b *Builder) Build(colors map[string]colour.ColorSpec, outputDir string) (Report, error) {
	vars, err := Vars(colors)
	if err != nil {
		return Report{}, fmt.Errorf("failed to generate colour variables: %w", err)
	}
	b.logger.Debug("generated colour variables", "colours", len(colors), "variables", len(vars))

	if err := b.fs.MkdirAll(outputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	report := Report{Variables: len(vars)}
	for _, t := range b.targets {
		res, err := b.buildTarget(t, vars, outputDir)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (b *Builder) buildTarget(t Target, vars map[string]string, outputDir string) (TargetResult, error) {
	res := TargetResult{Target: t, Path: filepath.Join(outputDir, filepath.FromSlash(t.Output))}

	content, fromCustom, err := b.loader.Load(t.Template)
	if err != nil {
		b.logger.Warn("template not found", "template", t.Template)
		res.Missing = true
		return res, nil
	}
	res.FromCustom = fromCustom

	rendered, unreplaced := Render(string(content), vars)
	if len(unreplaced) > 0 {
		b.logger.Warn("unreplaced placeholders", "template", t.Template, "placeholders", unreplaced)
	}
	res.Unreplaced = unreplaced

	if err := b.write(res.Path, []byte(rendered)); err != nil {
		return res, err
	}
	res.Written = true
	b.logger.Info("generated", "path", res.Path, "custom", fromCustom)

	if t.CopySupportFiles {
		copied, err := b.copySupportFiles(path.Dir(t.Template), filepath.Dir(res.Path))
		if err != nil {
			return res, err
		}
		res.Copied = copied
	}
	return res, nil
}

func (b *Builder) copySupportFiles(dir, dest string) ([]string, error) {
	files, err := b.loader.SupportFiles(dir)
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, f := range files {
		content, _, err := b.loader.Load(f)
		if err != nil {
			return copied, err
		}
		target := filepath.Join(dest, path.Base(f))
		if err := b.write(target, content); err != nil {
			return copied, err
		}
		b.logger.Debug("copied support file", "file", f, "path", target)
		copied = append(copied, target)
	}
	return copied, nil
}

func (b *Builder) write(p string, content []byte) error {
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", p, err)
	}
	if err := afero.WriteFile(b.fs, p, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}
