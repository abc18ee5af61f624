package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// TemplateExt is the suffix of every template file.
const TemplateExt = ".template"

//go:embed templates
var embeddedTemplates embed.FS

// Loader reads templates, preferring a file in the custom directory over the
// embedded default of the same name.
type Loader struct {
	fs        afero.Fs
	embedFS   fs.FS
	customDir string
}

// NewLoader creates a Loader over the embedded templates. Custom templates
// are looked up in customDir on fs; an empty customDir uses
// DefaultTemplatesDir.
func NewLoader(afs afero.Fs, customDir string) *Loader {
	if afs == nil {
		afs = afero.NewOsFs()
	}
	if customDir == "" {
		customDir = DefaultTemplatesDir()
	}
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("embedded templates missing: %v", err))
	}
	return &Loader{fs: afs, embedFS: sub, customDir: customDir}
}

// DefaultTemplatesDir returns ~/.config/nightowl/templates.
func DefaultTemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "" // Fallback to empty if home dir unavailable
	}
	return filepath.Join(home, ".config", "nightowl", "templates")
}

// CustomDir returns the directory custom templates are read from.
func (l *Loader) CustomDir() string {
	return l.customDir
}

// CustomPath returns where a custom copy of name would be located.
func (l *Loader) CustomPath(name string) string {
	return filepath.Join(l.customDir, filepath.FromSlash(name))
}

// HasCustomTemplate checks if a custom file exists for name.
func (l *Loader) HasCustomTemplate(name string) bool {
	info, err := l.fs.Stat(l.CustomPath(name))
	return err == nil && !info.IsDir()
}

// Load reads a template, checking for a custom override first.
// Returns the content and whether it came from the custom directory.
func (l *Loader) Load(name string) (content []byte, fromCustom bool, err error) {
	if content, err := afero.ReadFile(l.fs, l.CustomPath(name)); err == nil {
		return content, true, nil
	}

	content, err = fs.ReadFile(l.embedFS, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", name, err)
	}
	return content, false, nil
}

// ListEmbedded returns every embedded file, templates and support files,
// as slash-separated paths.
func (l *Loader) ListEmbedded() ([]string, error) {
	var files []string
	err := fs.WalkDir(l.embedFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return files, nil
}

// SupportFiles returns the non-template files stored next to a template,
// from both the embedded set and the custom directory. Paths are relative to
// the template root.
func (l *Loader) SupportFiles(dir string) ([]string, error) {
	var files []string

	if entries, err := fs.ReadDir(l.embedFS, dir); err == nil {
		for _, e := range entries {
			if !e.IsDir() && !strings.HasSuffix(e.Name(), TemplateExt) {
				files = append(files, path.Join(dir, e.Name()))
			}
		}
	}

	entries, err := afero.ReadDir(l.fs, l.CustomPath(dir))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read custom template directory: %w", err)
	}
	for _, e := range entries {
		name := path.Join(dir, e.Name())
		if !e.IsDir() && !strings.HasSuffix(e.Name(), TemplateExt) && !slices.Contains(files, name) {
			files = append(files, name)
		}
	}

	slices.Sort(files)
	return files, nil
}

// DumpTemplate writes an embedded file to the custom directory.
// If force is false, it will not overwrite an existing custom file.
func (l *Loader) DumpTemplate(name string, force bool) error {
	content, err := fs.ReadFile(l.embedFS, name)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", name, err)
	}

	outputPath := l.CustomPath(name)
	if !force {
		if _, err := l.fs.Stat(outputPath); err == nil {
			return &TemplateExistsError{Path: outputPath}
		}
	}

	outputDir := filepath.Dir(outputPath)
	if err := l.fs.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", outputDir, err)
	}
	if err := afero.WriteFile(l.fs, outputPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}
	return nil
}

// TemplateExistsError is returned by DumpTemplate when a custom file is
// already present and force is off.
type TemplateExistsError struct {
	Path string
}

func (e *TemplateExistsError) Error() string {
	return fmt.Sprintf("custom template already exists: %s (use --force to overwrite)", e.Path)
}

// DumpAllTemplates writes every embedded file to the custom directory.
// Existing files are skipped unless force is set; the skipped paths are
// reported alongside the dumped ones.
func (l *Loader) DumpAllTemplates(force bool) (dumped, skipped []string, err error) {
	files, err := l.ListEmbedded()
	if err != nil {
		return nil, nil, err
	}

	for _, f := range files {
		if err := l.DumpTemplate(f, force); err != nil {
			var exists *TemplateExistsError
			if errors.As(err, &exists) {
				skipped = append(skipped, exists.Path)
				continue
			}
			return dumped, skipped, err
		}
		dumped = append(dumped, l.CustomPath(f))
	}
	return dumped, skipped, nil
}

// TemplateInfo describes where a template would be loaded from.
type TemplateInfo struct {
	Name           string
	Output         string
	EmbeddedExists bool
	CustomExists   bool
	CustomPath     string
}

// GetInfo returns information about a specific template.
func (l *Loader) GetInfo(name string) TemplateInfo {
	_, embeddedErr := fs.Stat(l.embedFS, name)
	return TemplateInfo{
		Name:           name,
		Output:         strings.TrimSuffix(name, TemplateExt),
		EmbeddedExists: embeddedErr == nil,
		CustomExists:   l.HasCustomTemplate(name),
		CustomPath:     l.CustomPath(name),
	}
}
