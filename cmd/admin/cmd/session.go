package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/router"
	"github.com/spec-kit/resistance-admin/internal/session"
)

func newLoginCommand(env *Environment) *cobra.Command {
	var identifier, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			console := env.Console()

			reader := bufio.NewReader(cmd.InOrStdin())
			var err error
			if identifier == "" {
				if identifier, err = prompt(cmd.OutOrStdout(), reader, "Username or email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd.OutOrStdout(), reader, "Password: "); err != nil {
					return err
				}
			}

			identity, err := console.Session.Login(ctx, domain.Credentials{Identifier: identifier, Password: password})
			if err != nil {
				var failure *session.AuthFailure
				if errors.As(err, &failure) {
					return fmt.Errorf("login failed: %s", failure.Message)
				}
				return err
			}
			console.Logger.Debug("login", logFields(cmd)...)

			result := console.Navigator.Navigate(ctx, router.ReturnURL(console.Navigator.Location()))
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", identity.Identifier, identity.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", result.Location)
			return nil
		},
	}
	cmd.Flags().StringVarP(&identifier, "identifier", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}

func newLogoutCommand(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console := env.Console()
			console.Session.Logout(commandContext(cmd))
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out. Location: %s\n", console.Navigator.Location())
			return nil
		},
	}
}

func newWhoamiCommand(env *Environment) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity carried by the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.requireSession(); err != nil {
				return err
			}
			console := env.Console()
			identity, _ := console.Session.CurrentIdentity()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Identifier: %s\n", identity.Identifier)
			fmt.Fprintf(out, "Role:       %s\n", identity.Role)
			fmt.Fprintf(out, "Elevated:   %t\n", console.Session.HasElevatedRole())
			if identity.ExpiresAt != nil {
				fmt.Fprintf(out, "Expires:    %s\n", identity.ExpiresAt.Format(time.RFC3339))
			}
			if !remote {
				return nil
			}

			user, err := console.Resources.Profile.Me(commandContext(cmd))
			if err != nil {
				console.Logger.Warn("profile lookup failed", zap.Error(err))
				return err
			}
			return printJSON(out, user)
		},
	}
	cmd.Flags().BoolVar(&remote, "profile", false, "also fetch the account profile from the backend")
	return cmd
}
