package cli

import (
	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/repl"
)

// NewReplCommand creates the interactive shell command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"shell"},
		Short:   "Start an interactive shell",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.Config()
			if err != nil {
				return err
			}
			c, err := rootOpts.OpenCatalog()
			if err != nil {
				return err
			}
			return repl.Start(cmd.Context(), c, cfg.REPL)
		},
	}
}
