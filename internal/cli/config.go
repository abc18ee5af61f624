package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nightowl/internal/config"
)

// newConfigCmd represents the config command
func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key...]",
		Short: "Show the effective configuration",
		Long: `Show every setting with the value in effect after applying defaults, the
config file, NIGHTOWL_* environment variables and flags.

Pass one or more keys to see their environment variable, default and
description.

Examples:
  nightowl config
  nightowl config extract.clusters mapper.black_floor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				source := "none"
				if a.cfg.File != "" {
					source = a.cfg.File
				}
				fmt.Fprintf(out, "Config file: %s\n\n", source)

				tb := newTable("KEY", "VALUE", "ENV")
				for _, f := range config.Fields() {
					tb.addRow(f.Key, fmt.Sprint(a.viper.Get(f.Key)), f.Env())
				}
				return tb.render(out)
			}

			for i, key := range args {
				f, ok := config.Lookup(key)
				if !ok {
					return fmt.Errorf("unknown configuration key %q", key)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, f.Pretty(a.viper))
			}
			return nil
		},
	}
}
