package cli

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/storefront/storefront-admin/internal/di/providers"
)

func newServeCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local admin console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, a *app) error {
				srv, err := do.Invoke[*providers.ConsoleServerHandle](a.injector)
				if err != nil {
					return err
				}

				select {
				case <-ctx.Done():
					a.log.Info("Shutting down console...")
					return nil
				case err := <-srv.Err():
					return err
				}
			})
		},
	}

	cmd.Flags().StringVar(&r.overrides.ConsolePort, "port", "", "Console listen port")

	return cmd
}
