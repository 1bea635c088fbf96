package cmd

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/blue/internal/platform"
	"github.com/iiroan/blue/internal/session"
	"github.com/iiroan/blue/internal/ui"
)

func newTokenCmd() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored API session token",
	}

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "set [token]",
		Short: "Store the API session token",
		Long: `Store the API session token. Without an argument the token is read
from an interactive prompt so it stays out of shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTokenSet,
	})

	var reveal bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored token, masked unless --reveal is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, ok, err := tokens().Load(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				ui.Println(cmd.OutOrStdout(), ui.Current.Muted.Render("No token stored"))
				return nil
			}
			if !reveal {
				token = maskToken(token)
			}
			ui.Println(cmd.OutOrStdout(), token)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&reveal, "reveal", false, "Print the token unmasked")
	tokenCmd.AddCommand(showCmd)

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tokens().Clear(cmd.Context()); err != nil {
				return err
			}
			ui.Println(cmd.OutOrStdout(), ui.Current.Success.Render("✓ Token cleared"))
			return nil
		},
	})
	return tokenCmd
}

func tokens() session.Tokens {
	return session.Tokens{Adapter: adapter}
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		if !platform.IsInteractiveTerminal() {
			return errors.New("token argument required on a non-interactive terminal")
		}
		err := huh.NewInput().
			Title("API token").
			EchoMode(huh.EchoModePassword).
			Value(&token).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" {
					return errors.New("token cannot be empty")
				}
				return nil
			}).
			WithTheme(ui.HuhTheme()).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := tokens().Save(cmd.Context(), token); err != nil {
		return err
	}
	ui.Println(cmd.OutOrStdout(), ui.Current.Success.Render("✓ Token saved"))
	return nil
}

// maskToken keeps the last four characters.
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("•", len(token))
	}
	return strings.Repeat("•", len(token)-4) + token[len(token)-4:]
}
