package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leengari/gridtable/internal/network"
)

// NewServeCommand creates the TCP server command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve JSON requests over TCP",
		Long: `Accept TCP connections and answer newline separated JSON requests of the
form {"query": "..."} with JSON results. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.Config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			c, err := rootOpts.OpenCatalog()
			if err != nil {
				return err
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := network.Start(ctx, port, c); err != nil {
				return WrapExitError(ExitCommandError, "server failed", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 4444, "TCP port to listen on")

	return cmd
}
