package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nightowl/internal/theme"
)

// newTemplatesCmd represents the templates command.
func newTemplatesCmd(a *app) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage theme templates",
		Long: `Manage the templates theme files are rendered from.

Templates can be customised by dumping them to ~/.config/nightowl/templates/
and editing them. A custom file replaces the built-in one of the same name.

Examples:
  nightowl templates list
  nightowl templates dump waybar.css.template
  nightowl templates dump --force
  nightowl templates dump -l ./templates`,
	}
	cmd.PersistentFlags().StringVarP(&location, "location", "l", "", "custom templates directory (default: templates_dir or ~/.config/nightowl/templates)")

	loader := func() (*theme.Loader, error) {
		dir, err := expandHome(lo.CoalesceOrEmpty(location, a.cfg.TemplatesDir))
		if err != nil {
			return nil, err
		}
		return theme.NewLoader(a.fs, dir), nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Long: `List every built-in template and the file it renders.

Templates with a custom override are marked with an asterisk (*).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loader()
			if err != nil {
				return err
			}
			return runTemplatesList(cmd, l)
		},
	}

	var force bool
	dumpCmd := &cobra.Command{
		Use:   "dump [template...]",
		Short: "Dump built-in templates for customisation",
		Long: `Write built-in templates to the custom templates directory.

By default every template and support file is dumped. Existing custom files
are kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loader()
			if err != nil {
				return err
			}
			return runTemplatesDump(cmd, l, args, force)
		},
	}
	dumpCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}

func runTemplatesList(cmd *cobra.Command, l *theme.Loader) error {
	out := cmd.OutOrStdout()
	files, err := l.ListEmbedded()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Custom template directory: %s\n\n", l.CustomDir())

	hasCustom := false
	tb := newTable("TEMPLATE", "OUTPUT")
	for _, f := range files {
		info := l.GetInfo(f)
		name := f
		if info.CustomExists {
			name += "*"
			hasCustom = true
		}
		output := info.Output
		if !strings.HasSuffix(f, theme.TemplateExt) {
			output = "(support file)"
		}
		tb.addRow(name, output)
	}
	if err := tb.render(out); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "To customise a template, use: nightowl templates dump <template>")
	if hasCustom {
		fmt.Fprintln(out, "Templates with active overrides are shown with an asterisk (*).")
	}
	return nil
}

func runTemplatesDump(cmd *cobra.Command, l *theme.Loader, names []string, force bool) error {
	out := cmd.OutOrStdout()

	var dumped, skipped []string
	if len(names) == 0 {
		var err error
		dumped, skipped, err = l.DumpAllTemplates(force)
		if err != nil {
			return fmt.Errorf("failed to dump templates: %w", err)
		}
	} else {
		available, err := l.ListEmbedded()
		if err != nil {
			return err
		}
		for _, name := range names {
			if !slices.Contains(available, name) {
				return fmt.Errorf("unknown template %q (see nightowl templates list)", name)
			}
			if err := l.DumpTemplate(name, force); err != nil {
				if te, ok := lo.ErrorsAs[*theme.TemplateExistsError](err); ok {
					skipped = append(skipped, te.Path)
					continue
				}
				return fmt.Errorf("failed to dump template %s: %w", name, err)
			}
			dumped = append(dumped, l.CustomPath(name))
		}
	}

	for _, p := range dumped {
		fmt.Fprintf(out, "  %s\n", p)
	}
	for _, p := range skipped {
		fmt.Fprintf(out, "  %s (already exists)\n", p)
	}

	if len(dumped) == 0 {
		fmt.Fprintln(out, "No templates were dumped. Custom templates may already exist.")
		fmt.Fprintln(out, "Use --force to overwrite existing templates.")
		return nil
	}
	fmt.Fprintf(out, "\nDumped %d template(s) to %s\n", len(dumped), l.CustomDir())
	return nil
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, p[2:]), nil
}
