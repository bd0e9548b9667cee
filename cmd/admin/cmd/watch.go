package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/resistance-admin/internal/events"
	"github.com/spec-kit/resistance-admin/internal/worker"
)

func newWatchCommand(env *Environment) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay attached to the session until it expires or is interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.requireSession(); err != nil {
				return err
			}
			console := env.Console()

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			console.Dispatcher.Subscribe(events.EventLoggedOut, func(context.Context, events.Event) error {
				cancel()
				return nil
			})

			identity, _ := console.Session.CurrentIdentity()
			fmt.Fprintf(cmd.OutOrStdout(), "Watching session of %s\n", identity.Identifier)
			<-worker.NewSessionWatcher(console.Session, interval, console.Logger).Start(ctx)

			fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", console.Navigator.Location())
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "how often to check the token expiry")
	return cmd
}
