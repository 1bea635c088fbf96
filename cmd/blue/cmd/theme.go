package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/blue/internal/theme"
	"github.com/iiroan/blue/internal/ui"
)

func newThemeCmd() *cobra.Command {
	var (
		scheme string
		asJSON bool
	)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the theme the current settings resolve to",
		Long: `Show the theme the current settings resolve to. With theme=system the
host color scheme decides; --scheme overrides what the terminal reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("scheme") {
				parsed := theme.ParseScheme(scheme)
				if parsed == theme.SchemeUnknown && scheme != "" {
					return fmt.Errorf("invalid --scheme %q (expected light or dark)", scheme)
				}
				provider.SetScheme(parsed)
			}

			current := provider.Current()
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, current)
			}

			host := string(provider.Scheme())
			if host == "" {
				host = "unknown"
			}
			ui.Println(out, ui.Section("Theme", []ui.Row{
				{Key: "preference", Value: string(store.Settings().Theme)},
				{Key: "host scheme", Value: host},
				{Key: "effective", Value: current.Name()},
				{Key: "status bar", Value: current.StatusBarStyle},
			}))
			ui.Println(out, ui.Current.GroupTitle.Render("Palette"))
			ui.Println(out, theme.Swatches(current))
			return nil
		},
	}
	showCmd.Flags().StringVar(&scheme, "scheme", "", "Host color scheme to assume (light, dark)")
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print the theme as JSON")

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect the derived theme",
		Args:  cobra.NoArgs,
		RunE:  showCmd.RunE,
	}
	themeCmd.AddCommand(showCmd)
	return themeCmd
}
