package commands

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/posts/pkg/commands/options"
	"tableflip.dev/posts/pkg/config"
	teaui "tableflip.dev/posts/pkg/tui/app"
	"tableflip.dev/posts/pkg/tui/theme"
)

func addUI(topLevel *cobra.Command, v *viper.Viper, so *options.SourceOptions) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive post table",
		Example: `
posts ui
posts ui --url=http://localhost:3000/posts
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, v, so)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, v *viper.Viper, so *options.SourceOptions) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// The screen belongs to the program; diagnostics go to the log file.
	f, err := tea.LogToFile(cfg.LogPath, "posts")
	if err != nil {
		return err
	}
	defer f.Close()
	logger := log.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return teaui.Run(ctx, teaui.Options{
		Fetcher:   newFetcher(cfg, so, logger),
		Logger:    logger,
		Theme:     theme.ForBackground(termenv.HasDarkBackground()),
		CellWidth: cfg.CellWidth,
	})
}
