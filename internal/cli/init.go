package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/samples"
)

// NewInitCommand creates the command that seeds a new data directory.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data directory with sample users and orders tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.Config()
			if err != nil {
				return err
			}
			seeded, err := samples.Seed(cfg.Data.Dir)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot seed data directory", err)
			}
			if !seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, nothing to do\n", cfg.Data.Dir)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %s\n", cfg.Data.Dir, strings.Join(samples.Names(), ", "))
			return nil
		},
	}
}
