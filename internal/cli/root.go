// Package cli provides the command-line interface for nightowl.
package cli

import (
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/nightowl/internal/config"
	"github.com/jmylchreest/nightowl/internal/version"
)

// app carries the state shared by every command of one invocation.
type app struct {
	fs afero.Fs

	configPath string
	verbose    bool
	quiet      bool

	cfg    *config.Config
	viper  *viper.Viper
	logger hclog.Logger
}

// NewRootCmd builds the command tree on the OS filesystem.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "nightowl",
		Short: "Generate a desktop theme from a wallpaper",
		Long: `nightowl extracts a palette from a wallpaper image, maps it onto theme roles
(backgrounds, text, border, accents) and renders it into configuration files
for alacritty, btop, chromium, hyprland, hyprlock, mako, neovim, swayosd,
walker, waybar and wofi.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/nightowl/nightowl.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error, off")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newBuildCmd(a),
		newTemplatesCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup resolves configuration and the logger before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, v, err := config.Load(a.fs, a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.viper = v
	a.logger = newLogger(cmd.ErrOrStderr(), a.logLevel())
	if cfg.File != "" {
		a.logger.Debug("using config file", "path", cfg.File)
	}
	return nil
}

func (a *app) logLevel() hclog.Level {
	if a.cfg != nil && a.cfg.LogLevel != "" {
		return hclog.LevelFromString(strings.ToLower(a.cfg.LogLevel))
	}
	switch {
	case a.verbose:
		return hclog.Debug
	case a.quiet:
		return hclog.Error
	default:
		return hclog.Info
	}
}

func newLogger(out io.Writer, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "nightowl",
		Output: out,
		Level:  level,
	})
}

// newVersionCmd represents the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), version.String()+"\n")
			return err
		},
	}
}
