package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/config"
	"github.com/leengari/gridtable/internal/logging"
	"github.com/leengari/gridtable/internal/telemetry"
)

// DefaultConfigFile is read when --config is not given. It may be absent.
const DefaultConfigFile = "gridtable.yaml"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	Delimiter  string
	Format     string // "table" | "json" | "text"
	Trace      bool

	cfg      *config.Config
	shutdown []func()
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"table", "json", "text"}

// NewRootCommand creates the root command for the gridtable CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gridtable",
		Short: "gridtable - in-memory tables with joins",
		Long:  "Load delimited text tables into memory and query them with SELECT, joins and ordering.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			logger, closeLog := logging.Setup(cfg.Log)
			shutdownTracing := telemetry.Setup(cfg.Tracing.Enabled, logger)
			opts.shutdown = append(opts.shutdown,
				func() { _ = shutdownTracing(context.Background()) },
				closeLog,
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.Close()
		},
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./"+DefaultConfigFile+" when present)")
	cmd.PersistentFlags().StringVarP(&opts.DataDir, "data", "d", "", "data directory holding table files")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Delimiter, "delimiter", "", "column delimiter of table files")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "table", "output format (table|json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", false, "log OpenTelemetry spans")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// Config loads the config file once and applies flag overrides.
func (o *RootOptions) Config() (config.Config, error) {
	if o.cfg != nil {
		return *o.cfg, nil
	}

	path, optional := o.ConfigPath, false
	if path == "" {
		path, optional = DefaultConfigFile, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return cfg, NewExitError(ExitCommandError, err.Error())
	}

	if o.DataDir != "" {
		cfg.Data.Dir = o.DataDir
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Delimiter != "" {
		cfg.Interchange.Delimiter = o.Delimiter
	}
	if o.Trace {
		cfg.Tracing.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, NewExitError(ExitCommandError, err.Error())
	}

	o.cfg = &cfg
	return cfg, nil
}

// OpenCatalog creates a catalog over the data directory and loads every table
// file in it. A missing directory yields an empty catalog.
func (o *RootOptions) OpenCatalog() (*catalog.Catalog, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}
	c := catalog.New(cfg.Data.Dir, cfg.Interchange.Delimiter)

	if _, err := os.Stat(cfg.Data.Dir); errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if _, err := c.LoadDir(); err != nil {
		if c.Len() == 0 {
			return nil, WrapExitError(ExitCommandError, "failed to load tables", err)
		}
		// partial loads are usable; the failures were logged
	}
	return c, nil
}

// Close releases logging and tracing resources.
func (o *RootOptions) Close() {
	for _, fn := range o.shutdown {
		fn()
	}
	o.shutdown = nil
}
