// Package cmd is the operator CLI over the console session core.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/app"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/observability"
)

// ConfigLoader produces the configuration a command runs with.
type ConfigLoader func() (*config.Config, error)

// Environment carries what commands share: the config source and, once a command runs,
// the assembled console.
type Environment struct {
	Load    ConfigLoader
	Options app.Options

	console *app.Console
}

// NewRootCommand builds the admin CLI. Every subcommand gets a restored console; the
// caller releases it with Environment.Close once the command returns.
func NewRootCommand(env *Environment) *cobra.Command {
	if env.Load == nil {
		env.Load = config.Load
	}

	root := &cobra.Command{
		Use:   "admin",
		Short: "Resistance administration console",
		Long: `Operator console for the resistance backend: sign in, move between pages under the
same guards as the web console and manage victims, attempts, reports, rewards, content
and users.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.open(cmd)
		},
	}

	root.AddCommand(
		newLoginCommand(env),
		newLogoutCommand(env),
		newWhoamiCommand(env),
		newOpenCommand(env),
		newMenuCommand(env),
		newDashboardCommand(env),
		newWatchCommand(env),
	)
	for _, cmd := range newResourceCommands(env) {
		root.AddCommand(cmd)
	}
	return root
}

// Execute runs the CLI against the environment configuration.
func Execute() {
	env := &Environment{}
	err := NewRootCommand(env).Execute()
	if closeErr := env.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "close console:", closeErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func (e *Environment) open(cmd *cobra.Command) error {
	if e.console != nil {
		return nil
	}
	cfg, err := e.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := e.Options
	if opts.Logger == nil {
		logger, err := observability.NewLogger(cfg.Logger)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		opts.Logger = logger
	}
	if opts.Notices == nil {
		opts.Notices = cmd.ErrOrStderr()
	}

	console, err := app.NewConsole(cmd.Context(), *cfg, opts)
	if err != nil {
		return err
	}
	e.console = console
	return nil
}

// Close releases the console opened by the last command.
func (e *Environment) Close() error {
	if e.console == nil {
		return nil
	}
	_ = e.console.Logger.Sync()
	err := e.console.Close()
	e.console = nil
	return err
}

// Console returns the console opened for the running command.
func (e *Environment) Console() *app.Console {
	return e.console
}

var errNotLoggedIn = errors.New("not logged in; run `admin login` first")

func (e *Environment) requireSession() error {
	if !e.console.Session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func logFields(cmd *cobra.Command) []zap.Field {
	return []zap.Field{zap.String("command", cmd.CommandPath())}
}
