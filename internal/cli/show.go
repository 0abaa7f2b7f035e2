package cli

import (
	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/engine"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [table]",
		Short: "List the tables, or the columns of one table",
		Example: `  gridtable show
  gridtable show users`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statement := "SHOW TABLES"
			if len(args) == 1 {
				statement = "DESCRIBE " + args[0]
			}

			c, err := rootOpts.OpenCatalog()
			if err != nil {
				return err
			}
			res, err := engine.New(c).Execute(cmd.Context(), statement)
			if err != nil {
				return WrapExitError(ExitFailure, "show failed", err)
			}
			format := rootOpts.Format
			if format == "text" {
				format = "table"
			}
			return writeResult(cmd.OutOrStdout(), format, res)
		},
	}
}
