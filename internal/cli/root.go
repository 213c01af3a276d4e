// Package cli implements the storefront command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/storefront/storefront-admin/internal/client"
	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/di"
	"github.com/storefront/storefront-admin/internal/di/providers"
	"github.com/storefront/storefront-admin/internal/domain"
	domainerrors "github.com/storefront/storefront-admin/internal/errors"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
	"github.com/storefront/storefront-admin/internal/validation"
)

// runner holds the global flags shared by every command.
type runner struct {
	overrides config.Overrides
}

// app is what a command body gets to work with.
type app struct {
	injector *do.RootScope
	session  *session.Store
	catalog  *resource.Catalog
	client   *client.Client
	log      *logger.Logger
}

func newRootCmd(version string) *cobra.Command {
	r := &runner{}

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront admin client",
		Long: `storefront manages a storefront catalog through its REST API.

It keeps a signed-in session between runs and serves a local admin console.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&r.overrides.Environment, "env", "", "Environment (development, staging, production)")
	flags.StringVar(&r.overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&r.overrides.EnvFile, "env-file", "", "Path to a .env file")
	flags.StringVar(&r.overrides.APIBaseURL, "api-url", "", "Storefront API base URL")
	flags.StringVar(&r.overrides.APITimeout, "api-timeout", "", "Storefront API request timeout")
	flags.StringVar(&r.overrides.StorageDriver, "storage", "", "Session storage driver (badger, sqlite, redis, memory)")
	flags.StringVar(&r.overrides.StoragePath, "storage-path", "", "Session storage path")
	flags.StringVar(&r.overrides.RedisAddr, "redis-addr", "", "Redis address for the redis storage driver")

	rootCmd.AddCommand(newLoginCmd(r))
	rootCmd.AddCommand(newRegisterCmd(r))
	rootCmd.AddCommand(newLogoutCmd(r))
	rootCmd.AddCommand(newWhoamiCmd(r))
	rootCmd.AddCommand(newUsersCmd(r))
	rootCmd.AddCommand(newServeCmd(r))

	rootCmd.AddCommand(newResourceCmd(r, "tags", func(c *resource.Catalog) *resource.Store[domain.Tag, domain.TagInput] { return c.Tags }))
	rootCmd.AddCommand(newResourceCmd(r, "categories", func(c *resource.Catalog) *resource.Store[domain.Category, domain.CategoryInput] { return c.Categories }))
	rootCmd.AddCommand(newResourceCmd(r, "article-categories", func(c *resource.Catalog) *resource.Store[domain.Category, domain.CategoryInput] {
		return c.ArticleCategories
	}))
	rootCmd.AddCommand(newResourceCmd(r, "colors", func(c *resource.Catalog) *resource.Store[domain.Color, domain.ColorInput] { return c.Colors }))
	rootCmd.AddCommand(newResourceCmd(r, "brands", func(c *resource.Catalog) *resource.Store[domain.Brand, domain.BrandInput] { return c.Brands }))

	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(version).ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

// run builds the container, rehydrates the session and hands the result to fn.
func (r *runner) run(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	injector := di.NewContainer(r.overrides)
	if err := di.Bootstrap(ctx, injector); err != nil {
		_ = injector.Shutdown()
		return err
	}

	a := &app{
		injector: injector,
		session:  do.MustInvoke[*session.Store](injector),
		catalog:  do.MustInvoke[*resource.Catalog](injector),
		client:   do.MustInvoke[*providers.ClientHandle](injector).Client,
		log:      do.MustInvoke[*logger.Logger](injector),
	}

	defer func() {
		if err := injector.Shutdown(); err != nil {
			a.log.Error("Shutdown error", "error", err)
		}
	}()

	return fn(ctx, a)
}

// printError writes err and, for validation failures, each offending field.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", domainerrors.Message(err))
	for field, msg := range validation.FieldErrors(err) {
		fmt.Fprintf(w, "  %s: %s\n", field, msg)
	}
}
