package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seuros/gopher-graph/src/driver"
)

func newPingCommand(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := opts.connectionURL()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			dr, err := driver.NewDriverWithConfig(ctx, url, opts.driverConfig())
			if err != nil {
				return err
			}
			defer func() { _ = dr.Close(context.Background()) }()

			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", dr.Target())
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "connection timeout")
	return cmd
}
