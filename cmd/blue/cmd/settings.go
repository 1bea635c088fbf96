package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/iiroan/blue/internal/platform"
	"github.com/iiroan/blue/internal/settings"
	"github.com/iiroan/blue/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var asJSON bool

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show every setting, grouped as in the app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, asJSON)
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print settings as JSON")

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change app preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, false)
		},
	}

	settingsCmd.AddCommand(showCmd)
	settingsCmd.AddCommand(&cobra.Command{
		Use:       "get <key>",
		Short:     "Print a single setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: settings.Keys(),
		RunE:      runSettingsGet,
	})
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <key=value>...",
		Short: "Change one or more settings",
		Long: `Change one or more settings. Every assignment is validated before
anything is stored; one bad value rejects the whole command.`,
		Example: "  blue settings set theme=dark currency=EUR",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runSettingsSet,
	})
	settingsCmd.AddCommand(newSettingsResetCmd())
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit settings interactively",
		Args:  cobra.NoArgs,
		RunE:  runSettingsEdit,
	})
	settingsCmd.AddCommand(&cobra.Command{
		Use:         "keys",
		Short:       "List setting keys and their allowed values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStorage: "true"},
		RunE:        runSettingsKeys,
	})
	return settingsCmd
}

func newSettingsResetCmd() *cobra.Command {
	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore every setting to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !platform.IsInteractiveTerminal() {
					return errors.New("refusing to reset without --yes on a non-interactive terminal")
				}
				confirmed := false
				err := huh.NewConfirm().
					Title("Reset all settings?").
					Description("Every preference returns to its default value.").
					Affirmative("Reset").
					Negative("Cancel").
					Value(&confirmed).
					WithTheme(ui.HuhTheme()).
					Run()
				if err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				if !confirmed {
					return nil
				}
			}

			store.Reset()
			if err := store.Flush(cmd.Context()); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			ui.Println(cmd.OutOrStdout(), ui.Current.Success.Render("✓ Settings reset to defaults"))
			return nil
		},
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return resetCmd
}

func runSettingsShow(cmd *cobra.Command, asJSON bool) error {
	current := store.Settings()
	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, current)
	}

	defaults := settings.Defaults()
	byGroup := lo.GroupBy(settings.Fields(), func(f settings.Field) string { return f.Group })
	sections := make([]string, 0, len(byGroup))
	for _, group := range settings.Groups() {
		rows := lo.Map(byGroup[group], func(f settings.Field, _ int) ui.Row {
			row := ui.Row{Key: f.Key, Value: f.Get(current)}
			if row.Value != f.Get(defaults) {
				row.Note = "default " + f.Get(defaults)
			}
			return row
		})
		sections = append(sections, ui.Section(group, rows))
	}
	ui.Println(out, strings.Join(sections, "\n"))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	value, err := store.Settings().Get(args[0])
	if err != nil {
		return err
	}
	ui.Println(cmd.OutOrStdout(), value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	patch, err := settings.ParseAssignments(args)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return errors.New("no assignments given")
	}
	before := store.Settings()
	after, err := store.Update(patch)
	if err != nil {
		return err
	}
	if err := store.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	printChanges(cmd, before, after)
	return nil
}

func printChanges(cmd *cobra.Command, before, after settings.Settings) {
	out := cmd.OutOrStdout()
	changed := settings.Diff(before, after).Keys()
	if len(changed) == 0 {
		ui.Println(out, ui.Current.Muted.Render("No changes"))
		return
	}
	for _, k := range changed {
		from, _ := before.Get(k)
		to, _ := after.Get(k)
		ui.Println(out, fmt.Sprintf("%s %s: %s → %s",
			ui.Current.Success.Render("✓"), k, ui.Current.Muted.Render(from), ui.Current.Value.Render(to)))
	}
}

func runSettingsKeys(cmd *cobra.Command, args []string) error {
	defaults := settings.Defaults()
	byGroup := lo.GroupBy(settings.Fields(), func(f settings.Field) string { return f.Group })
	sections := make([]string, 0, len(byGroup))
	for _, group := range settings.Groups() {
		rows := lo.Map(byGroup[group], func(f settings.Field, _ int) ui.Row {
			return ui.Row{Key: f.Key, Value: f.Domain(), Note: "default " + f.Get(defaults)}
		})
		sections = append(sections, ui.Section(group, rows))
	}
	ui.Println(cmd.OutOrStdout(), strings.Join(sections, "\n"))
	return nil
}

func runSettingsEdit(cmd *cobra.Command, args []string) error {
	if !platform.IsInteractiveTerminal() {
		return errors.New("settings edit needs an interactive terminal; use settings set instead")
	}

	before := store.Settings()
	values := make(map[string]*string)
	toggles := make(map[string]*bool)

	byGroup := lo.GroupBy(settings.Fields(), func(f settings.Field) string { return f.Group })
	groups := make([]*huh.Group, 0, len(byGroup))
	for _, name := range settings.Groups() {
		fields := make([]huh.Field, 0, len(byGroup[name]))
		for _, f := range byGroup[name] {
			current := f.Get(before)
			if f.Bool() {
				v := current == "true"
				toggles[f.Key] = &v
				fields = append(fields, huh.NewConfirm().
					Title(f.Label).
					Description(f.Key).
					Value(toggles[f.Key]))
				continue
			}
			v := current
			values[f.Key] = &v
			fields = append(fields, huh.NewSelect[string]().
				Title(f.Label).
				Description(f.Key).
				Options(huh.NewOptions(f.Values...)...).
				Value(values[f.Key]))
		}
		groups = append(groups, huh.NewGroup(fields...).Title(name))
	}

	ui.StartScreen("Settings", "Changes are saved when the form is submitted")
	form := huh.NewForm(groups...).
		WithTheme(ui.HuhTheme()).
		WithKeyMap(editKeyMap())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			ui.Println(cmd.OutOrStdout(), ui.Current.Muted.Render("Edit cancelled, nothing saved"))
			return nil
		}
		return err
	}

	assignments := make([]string, 0, len(values)+len(toggles))
	for k, v := range values {
		assignments = append(assignments, k+"="+*v)
	}
	for k, v := range toggles {
		assignments = append(assignments, fmt.Sprintf("%s=%t", k, *v))
	}
	patch, err := settings.ParseAssignments(assignments)
	if err != nil {
		return err
	}

	diff := settings.Diff(before, patch.Apply(before))
	if diff.Empty() {
		printChanges(cmd, before, before)
		return nil
	}
	after, err := store.Update(diff)
	if err != nil {
		return err
	}
	if err := store.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	printChanges(cmd, before, after)
	return nil
}

// editKeyMap lets esc cancel the form as well as ctrl+c.
func editKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}
