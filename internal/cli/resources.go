package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/resource"
)

// newResourceCmd builds the list/create/update/delete commands for one catalog resource.
func newResourceCmd[T domain.Entity, I any](r *runner, name string, pick func(*resource.Catalog) *resource.Store[T, I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: "Manage " + strings.ReplaceAll(name, "-", " "),
	}

	var (
		params resource.FetchParams
		parent int
		query  string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if parent > 0 {
				params.ParentID = &parent
			}
			return r.run(cmd, func(ctx context.Context, a *app) error {
				store := pick(a.catalog)
				items, err := store.Fetch(ctx, params)
				if err != nil {
					return err
				}
				if query != "" {
					items = store.Filter(query)
				}
				return printJSON(cmd.OutOrStdout(), items)
			})
		},
	}
	listCmd.Flags().IntVar(&params.Page, "page", 0, "Page number (default 1)")
	listCmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size")
	listCmd.Flags().StringVar(&params.Search, "search", "", "Server-side search")
	listCmd.Flags().IntVar(&parent, "parent", 0, "Only children of this parent")
	listCmd.Flags().BoolVar(&params.FetchAll, "all", false, "Fetch every item")
	listCmd.Flags().StringVar(&query, "filter", "", "Filter the fetched items by name or slug")

	var data string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create one of " + name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readInput[I](cmd.InOrStdin(), data)
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, a *app) error {
				created, err := pick(a.catalog).Create(ctx, input)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}
	createCmd.Flags().StringVar(&data, "data", "-", "JSON body, or - to read stdin")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update one of " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			input, err := readInput[I](cmd.InOrStdin(), data)
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, a *app) error {
				store := pick(a.catalog)
				// The hierarchy checks need the full tree in the cache.
				if _, err := store.Fetch(ctx, resource.FetchParams{FetchAll: true}); err != nil {
					return err
				}
				updated, err := store.Update(ctx, id, input)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}
	updateCmd.Flags().StringVar(&data, "data", "-", "JSON body, or - to read stdin")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, a *app) error {
				store := pick(a.catalog)
				if _, err := store.Fetch(ctx, resource.FetchParams{FetchAll: true}); err != nil {
					return err
				}
				if err := store.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", name, id)
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// readInput decodes a JSON body from data, or from stdin when data is "-".
func readInput[I any](stdin io.Reader, data string) (I, error) {
	var input I

	var src io.Reader = strings.NewReader(data)
	if data == "-" {
		src = stdin
	}

	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("invalid JSON body: %w", err)
	}
	return input, nil
}
