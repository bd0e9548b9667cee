package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/resistance-admin/internal/router"
)

func newOpenCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Navigate to a console page through the route guards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := env.Console().Navigator.Navigate(commandContext(cmd), args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Location: %s\n", result.Location)
			if result.Route.Title != "" {
				fmt.Fprintf(out, "Page:     %s\n", result.Route.Title)
			}
			if result.Notice != "" {
				fmt.Fprintf(out, "Notice:   %s\n", result.Notice)
			}
			return nil
		},
	}
}

func newMenuCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the sidebar entries visible to the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.requireSession(); err != nil {
				return err
			}
			for _, item := range router.Menu(env.Console().Session.HasElevatedRole()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", item.Label, item.Path)
			}
			return nil
		},
	}
}

func newDashboardCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the landing page counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			console := env.Console()
			if result := console.Navigator.Navigate(ctx, router.LandingPath); result.Location != router.LandingPath {
				return errNotLoggedIn
			}
			stats, err := console.Dashboard.Stats(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}

// guardPage moves to path and fails when a guard sends the console elsewhere.
func guardPage(env *Environment, cmd *cobra.Command, path string) error {
	result := env.Console().Navigator.Navigate(commandContext(cmd), path)
	if result.Location == path {
		return nil
	}
	if result.Notice != "" {
		return fmt.Errorf("%s", result.Notice)
	}
	if result.Route.Path == router.LoginPath {
		return errNotLoggedIn
	}
	return fmt.Errorf("redirected to %s", result.Location)
}
