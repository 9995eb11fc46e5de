package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
	"github.com/kk-code-lab/filer/internal/settings"
	statepkg "github.com/kk-code-lab/filer/internal/state"
	"github.com/kk-code-lab/filer/internal/textutil"
	renderui "github.com/kk-code-lab/filer/internal/ui/render"
)

const listNameWidth = 40

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "Print a directory the way the browser lists it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewConsole(cfg.Debug)
			provider := fsutil.NewOSProvider(0)

			entries, err := provider.ListDirectory(cfg.StartPath)
			if err != nil {
				return err
			}
			files := statepkg.FilterAndSort(entries, all)
			log.Debug().Str("path", cfg.StartPath).Int("entries", len(files)).Msg("listed")

			out := cmd.OutOrStdout()
			for _, path := range files {
				info, err := os.Lstat(path)
				if err != nil {
					log.Warn().Err(err).Str("path", path).Msg("stat failed")
					continue
				}
				size := fsutil.FormatSize(info.Size())
				name := textutil.DisplayName(path)
				if info.IsDir() {
					size = "<dir>"
					name += "/"
				}
				fmt.Fprintf(out, "%s  %s\n", textutil.PadRight(name, listNameWidth), size)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include dot files")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Show file or folder information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := fsutil.Describe(cmd.Context(), cfg.StartPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(renderui.InfoLines(meta), "\n"))
			return nil
		},
	}
}

func newSettingsCmd() *cobra.Command {
	var next settings.Settings

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted settings",
		Long: `Show the persisted settings. Passing --dark-mode or --show-dot-files
stores the given value before printing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, closeSettings, err := openSettings(cfg)
			if err != nil {
				return err
			}
			defer closeSettings()

			ctx := cmd.Context()
			current, err := gateway.Get(ctx)
			if err != nil {
				return fmt.Errorf("read settings: %w", err)
			}

			changed := false
			if cmd.Flags().Changed("dark-mode") {
				current.DarkMode = next.DarkMode
				changed = true
			}
			if cmd.Flags().Changed("show-dot-files") {
				current.ShowDotFiles = next.ShowDotFiles
				changed = true
			}
			if changed {
				if err := gateway.Save(ctx, current); err != nil {
					return fmt.Errorf("save settings: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dark-mode:      %t\n", current.DarkMode)
			fmt.Fprintf(out, "show-dot-files: %t\n", current.ShowDotFiles)
			return nil
		},
	}

	cmd.Flags().BoolVar(&next.DarkMode, "dark-mode", false, "Use the dark theme")
	cmd.Flags().BoolVar(&next.ShowDotFiles, "show-dot-files", false, "List dot files")
	return cmd
}
