// Package cli defines the filer command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/filer/internal/app"
	"github.com/kk-code-lab/filer/internal/config"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
	"github.com/kk-code-lab/filer/internal/settings"
	statepkg "github.com/kk-code-lab/filer/internal/state"
)

// Version is set by main.
var Version = "dev"

var cfg = config.Default()

// NewRootCmd builds the root command. Without a subcommand it starts the terminal UI.
func NewRootCmd() *cobra.Command {
	cfg = config.Default()

	rootCmd := &cobra.Command{
		Use:   "filer [path]",
		Short: "Terminal file browser with image previews",
		Long: `filer browses a directory tree in the terminal.

Keys: j/k move, l/enter open, h parent, space select, d delete,
D delete selected, . dot files, t theme, s settings, ? help, q quit.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.StartPath = args[0]
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&cfg.NoPersist, "no-persist", false, "Keep settings in memory only")
	flags.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "Settings database path")
	flags.StringVar(&cfg.LogPath, "log-file", cfg.LogPath, "Log file used by the terminal UI")
	rootCmd.Flags().IntVar(&cfg.PreviewMaxDimension, "preview-size", cfg.PreviewMaxDimension, "Longest side of decoded previews in pixels (0 keeps the original)")
	rootCmd.Flags().IntVar(&cfg.DeleteConcurrency, "delete-concurrency", cfg.DeleteConcurrency, "Parallel deletions for batch delete")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newSettingsCmd())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openSettings returns the gateway selected by c and a function releasing it.
func openSettings(c config.Config) (settings.Gateway, func() error, error) {
	if c.NoPersist {
		return settings.NewMemoryStore(settings.Settings{}), func() error { return nil }, nil
	}
	store, err := settings.OpenSQLite(c.SettingsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open settings: %w", err)
	}
	return store, store.Close, nil
}

func runBrowser(c config.Config) error {
	log, err := logging.NewFile(c.LogPath, c.Debug)
	if err != nil {
		return err
	}
	defer log.Close()

	gateway, closeSettings, err := openSettings(c)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSettings(); err != nil {
			log.Warn().Err(err).Msg("closing settings failed")
		}
	}()

	home, err := os.UserHomeDir()
	if err != nil {
		home = c.StartPath
	}

	ctrl, err := statepkg.NewController(statepkg.Options{
		Provider:          fsutil.NewOSProvider(c.PreviewMaxDimension),
		Settings:          gateway,
		Logger:            log,
		HomeDir:           home,
		StartPath:         c.StartPath,
		DeleteConcurrency: c.DeleteConcurrency,
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	app := apppkg.NewApplication(screen, ctrl, home, log)
	log.Info().Str("path", c.StartPath).Msg("starting")
	app.Run()
	log.Info().Str("path", app.CurrentPath()).Msg("exited")
	return nil
}
