package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/posts/pkg/commands/options"
	"tableflip.dev/posts/pkg/config"
	"tableflip.dev/posts/pkg/web"
)

func addServe(topLevel *cobra.Command, v *viper.Viper, so *options.SourceOptions) {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the post table as a web page",
		Example: `
posts serve
posts serve --addr=:9000
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.New(newFetcher(cfg, so, logger), logger)
			logger.Printf("listening on %s", cfg.Addr)
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on.")
	bindFlag(v, config.KeyAddr, cmd.Flags(), "addr")

	topLevel.AddCommand(cmd)
}
