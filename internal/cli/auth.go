package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/storefront/storefront-admin/internal/domain"
)

// passwordEnv lets scripts avoid putting a password on the command line.
const passwordEnv = "STOREFRONT_PASSWORD"

func newLoginCmd(r *runner) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.Password == "" {
				creds.Password = os.Getenv(passwordEnv)
			}
			return r.run(cmd, func(ctx context.Context, a *app) error {
				if err := a.session.Login(ctx, creds); err != nil {
					return err
				}
				st := a.session.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", st.Name(), st.Role())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password (or $"+passwordEnv+")")

	return cmd
}

func newRegisterCmd(r *runner) *cobra.Command {
	var reg domain.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Password == "" {
				reg.Password = os.Getenv(passwordEnv)
			}
			if reg.ConfirmPassword == "" {
				reg.ConfirmPassword = reg.Password
			}
			return r.run(cmd, func(ctx context.Context, a *app) error {
				if err := a.session.Register(ctx, reg); err != nil {
					return err
				}
				st := a.session.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s (%s)\n", st.Name(), st.Role())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Account password (or $"+passwordEnv+")")
	cmd.Flags().StringVar(&reg.ConfirmPassword, "confirm-password", "", "Password confirmation (defaults to --password)")

	return cmd
}

func newLogoutCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, a *app) error {
				if err := a.session.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
				return nil
			})
		},
	}
}

func newWhoamiCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(_ context.Context, a *app) error {
				out := cmd.OutOrStdout()
				st := a.session.Snapshot()
				if !st.IsAuthenticated() {
					fmt.Fprintln(out, "Not signed in.")
					return nil
				}

				fmt.Fprintf(out, "Name:  %s\n", st.Name())
				fmt.Fprintf(out, "Email: %s\n", st.Email())
				fmt.Fprintf(out, "Role:  %s\n", st.Role())
				if exp, ok := a.session.TokenExpiry(); ok {
					status := "valid"
					if time.Now().After(exp) {
						status = "expired"
					}
					fmt.Fprintf(out, "Token: %s until %s\n", status, exp.Local().Format(time.DateTime))
				}
				return nil
			})
		},
	}
}

func newUsersCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every user (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, a *app) error {
				users, err := a.client.ListUsers(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), users)
			})
		},
	}
}
