package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/interchange"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Name      string
	NoHeader  bool
	RawValues bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Copy a delimited text file into the data directory as a table",
		Long: `Read a delimited text file and store it as a table in the data directory.

The table is named after the file unless --name is given. Integer, float and
boolean fields are converted unless --raw is given.`,
		Example: `  gridtable -d data import exports/users.csv --delimiter ,
  gridtable -d data import people.txt --name users --no-header`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "table name (default: file name without extension)")
	cmd.Flags().BoolVar(&opts.NoHeader, "no-header", false, "the first line is data, not column titles")
	cmd.Flags().BoolVar(&opts.RawValues, "raw", false, "keep every field as a string")

	return cmd
}

func runImport(cmd *cobra.Command, opts *ImportOptions, path string) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open input file", err)
	}
	defer f.Close()

	r := &interchange.Reader{
		Delimiter:  cfg.Interchange.Delimiter,
		Header:     !opts.NoHeader,
		InferTypes: !opts.RawValues,
	}
	t, err := r.Read(f, name)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot parse input file", err)
	}

	c, err := opts.OpenCatalog()
	if err != nil {
		return err
	}
	if err := c.Put(t); err != nil {
		return WrapExitError(ExitFailure, "cannot register table", err)
	}
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "cannot create data directory", err)
	}
	if err := c.Save(name); err != nil {
		return WrapExitError(ExitCommandError, "cannot save table", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d rows, %d columns\n", name, t.RowCount(), t.ColumnCount())
	return nil
}
