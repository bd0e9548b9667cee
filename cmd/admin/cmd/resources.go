package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/resources"
)

// collection erases the item and payload types of a resources.Service so commands
// can treat every collection alike.
type collection struct {
	page   string
	list   func(ctx context.Context, params domain.ListParams) (any, error)
	get    func(ctx context.Context, id string) (any, error)
	create func(ctx context.Context, payload []byte) (any, error)
	update func(ctx context.Context, id string, payload []byte) (any, error)
	remove func(ctx context.Context, id string) error
}

func bind[T, C, U any](page string, svc resources.Service[T, C, U]) collection {
	return collection{
		page: page,
		list: func(ctx context.Context, params domain.ListParams) (any, error) {
			return svc.List(ctx, params)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return svc.Get(ctx, id)
		},
		create: func(ctx context.Context, payload []byte) (any, error) {
			var input C
			if err := decodePayload(payload, &input); err != nil {
				return nil, err
			}
			return svc.Create(ctx, input)
		},
		update: func(ctx context.Context, id string, payload []byte) (any, error) {
			var input U
			if err := decodePayload(payload, &input); err != nil {
				return nil, err
			}
			return svc.Update(ctx, id, input)
		},
		remove: func(ctx context.Context, id string) error {
			return svc.Delete(ctx, id)
		},
	}
}

func decodePayload(payload []byte, into any) error {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(into); err != nil {
		return fmt.Errorf("invalid --data: %w", err)
	}
	return nil
}

func collections(catalog *resources.Catalog) map[string]collection {
	return map[string]collection{
		"victims":  bind("/victims", catalog.Victims),
		"attempts": bind("/attempts", catalog.Attempts),
		"reports":  bind("/reports", catalog.Reports),
		"rewards":  bind("/rewards", catalog.Rewards),
		"content":  bind("/content", catalog.Content),
		"users":    bind("/users", catalog.Users),
	}
}

var collectionNames = []string{"attempts", "content", "reports", "rewards", "users", "victims"}

// resolve looks up the named collection and checks the session may open its page.
func (e *Environment) resolve(cmd *cobra.Command, name string) (collection, error) {
	c, ok := collections(e.Console().Resources)[name]
	if !ok {
		return collection{}, fmt.Errorf("unknown resource %q (one of %v)", name, collectionNames)
	}
	if err := guardPage(e, cmd, c.page); err != nil {
		return collection{}, err
	}
	return c, nil
}

func newResourceCommands(env *Environment) []*cobra.Command {
	var params domain.ListParams
	list := &cobra.Command{
		Use:       "list <resource>",
		Short:     "List a page of a collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: collectionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			page, err := c.list(commandContext(cmd), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	list.Flags().IntVar(&params.Page, "page", 0, "page number (1-based)")
	list.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	list.Flags().StringVar(&params.DaemonUsername, "daemon", "", "only items owned by this daemon (attempts, rewards)")

	get := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			item, err := c.get(commandContext(cmd), args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}

	var createData string
	create := &cobra.Command{
		Use:   "create <resource> --data <json>",
		Short: "Create an item from a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			item, err := c.create(commandContext(cmd), []byte(createData))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	create.Flags().StringVar(&createData, "data", "", "JSON payload")
	_ = create.MarkFlagRequired("data")

	var updateData string
	update := &cobra.Command{
		Use:   "update <resource> <id> --data <json>",
		Short: "Apply a partial update from a JSON payload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			item, err := c.update(commandContext(cmd), args[1], []byte(updateData))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	update.Flags().StringVar(&updateData, "data", "", "JSON payload")
	_ = update.MarkFlagRequired("data")

	remove := &cobra.Command{
		Use:     "delete <resource> <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if err := c.remove(commandContext(cmd), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", args[0], args[1])
			return nil
		},
	}

	return []*cobra.Command{list, get, create, update, remove}
}
