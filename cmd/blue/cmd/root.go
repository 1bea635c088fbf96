package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iiroan/blue/internal/config"
	"github.com/iiroan/blue/internal/platform"
	"github.com/iiroan/blue/internal/settings"
	"github.com/iiroan/blue/internal/storage"
	"github.com/iiroan/blue/internal/theme"
	"github.com/iiroan/blue/internal/ui"
	"github.com/iiroan/blue/internal/version"
)

var (
	verbose bool
	quiet   bool
	noColor bool
	cfgFile string
	logger  *log.Logger
	cfg     *config.Config

	adapter  storage.Adapter
	store    *settings.Store
	provider *theme.Provider
)

// Commands annotated with this key run without opening storage.
const skipStorage = "blue/skip-storage"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blue",
		Short: "Manage Blue app preferences",
		Long: `blue reads and edits the preferences of the Blue trading app and
shows the theme they resolve to.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: "+config.DefaultPath()+")")

	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the CLI and releases storage afterwards, even when the
// command failed.
func Execute(ctx context.Context) error {
	return execute(ctx, newRootCmd())
}

func execute(ctx context.Context, rootCmd *cobra.Command) error {
	resetState()
	setupLogger()

	err := rootCmd.ExecuteContext(ctx)
	if cerr := shutdown(); cerr != nil {
		logger.Warn("shutdown incomplete", "error", cerr)
	}
	if err != nil {
		logger.Error(err)
	}
	return err
}

func resetState() {
	cfg, adapter, store, provider = nil, nil, nil, nil
}

func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipStorage] != "" || cmd.Name() == "help" {
		applyUISettings(theme.Derive(settings.ThemeLight, theme.SchemeUnknown))
		return nil
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	var err error
	cfg, err = config.Load(cmd.Context(), path)
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", path, "error", err)
		cfg = config.DefaultConfig()
	}
	setupLogger()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := ui.RunWithSpinner("Loading settings", func() error {
		return openStore(cmd.Context())
	}); err != nil {
		return err
	}

	provider = theme.NewProvider(store, theme.ParseScheme(platform.ColorScheme()))
	provider.Subscribe(applyUISettings)
	applyUISettings(provider.Current())

	logger.Debug("settings ready",
		"version", version.Get(settings.SchemaVersion).Short(),
		"driver", cfg.Storage.Driver,
		"key", cfg.Settings.Key,
		"theme", ui.CurrentTheme.Name())
	return nil
}

func openStore(ctx context.Context) error {
	a, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Driver, err)
	}
	adapter = a

	store = settings.New(adapter,
		settings.WithLogger(logger),
		settings.WithKey(cfg.Settings.Key),
		settings.WithWriteTimeout(cfg.Settings.WriteTimeout),
	)
	store.Initialize(ctx)
	return nil
}

func shutdown() error {
	timeout := settings.DefaultWriteTimeout
	if cfg != nil && cfg.Settings.WriteTimeout > 0 {
		timeout = cfg.Settings.WriteTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
	defer cancel()

	var errs []error
	if provider != nil {
		provider.Close()
	}
	if store != nil {
		errs = append(errs, store.Close(ctx))
	}
	if adapter != nil {
		errs = append(errs, adapter.Close())
	}
	return errors.Join(errs...)
}

func colorDisabled() bool {
	return noColor || os.Getenv("NO_COLOR") != "" || (cfg != nil && cfg.Log.NoColor)
}

func applyUISettings(t theme.Theme) {
	ui.Apply(t, ui.Preferences{
		NoColor: colorDisabled(),
		Dense:   quiet,
	})
	setupLogger()
}

func setupLogger() {
	level := log.InfoLevel
	if cfg != nil {
		if l, err := log.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
	}
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	timestamps := verbose || (cfg != nil && cfg.Log.Timestamps)
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{TimeFormat: time.Kitchen})
	}
	logger.SetLevel(level)
	logger.SetReportTimestamp(timestamps)
	logger.SetStyles(ui.LogStyles(ui.CurrentTheme, colorDisabled()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
