package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/engine"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Out string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <statement>",
		Short: "Run one statement against the tables in the data directory",
		Long: `Run one statement and print its result.

With --out the result table of a SELECT is written to a file in the
delimited text format instead of being printed.`,
		Example: `  gridtable query "SELECT * FROM users"
  gridtable -d data query "SELECT users.username, orders.product FROM users JOIN orders ON users.id = orders.user_id"
  gridtable query --out big.tbl "SELECT * FROM orders WHERE orders.user_id = 1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the result table to this file")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *QueryOptions, statement string) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	c, err := opts.OpenCatalog()
	if err != nil {
		return err
	}
	eng := engine.New(c)
	ctx := cmd.Context()

	if opts.Out != "" || opts.Format == "text" {
		t, err := eng.Query(ctx, statement)
		if err != nil {
			return WrapExitError(ExitFailure, "query failed", err)
		}
		if opts.Out == "" {
			return writeTable(cmd.OutOrStdout(), t, cfg.Interchange)
		}

		f, err := os.Create(opts.Out)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot create output file", err)
		}
		if err := writeTable(f, t, cfg.Interchange); err != nil {
			f.Close()
			return WrapExitError(ExitCommandError, "cannot write output file", err)
		}
		if err := f.Close(); err != nil {
			return WrapExitError(ExitCommandError, "cannot write output file", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", t.RowCount(), opts.Out)
		return nil
	}

	res, err := eng.Execute(ctx, statement)
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return writeResult(cmd.OutOrStdout(), opts.Format, res)
}
