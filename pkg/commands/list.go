package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/posts/pkg/commands/options"
	"tableflip.dev/posts/pkg/config"
	"tableflip.dev/posts/pkg/printers"
	"tableflip.dev/posts/pkg/viewstate"
)

func addList(topLevel *cobra.Command, v *viper.Viper, so *options.SourceOptions, lo *options.ListOptions) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "fetch the posts once and print them",
		Example: `
posts list
posts list --json
posts list --max-width=40
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, v, so, lo)
		},
	}

	base.AddOutputArg(cmd, oo)
	options.AddListArgs(cmd, lo)

	topLevel.AddCommand(cmd)
}

func runList(cmd *cobra.Command, v *viper.Viper, so *options.SourceOptions, lo *options.ListOptions) error {
	cfg, err := config.Load(v)
	if err != nil {
		return oo.HandleError(err)
	}
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	state := viewstate.New()
	posts, err := newFetcher(cfg, so, logger).Fetch(ctx)
	if err != nil {
		logger.Printf("error fetching posts: %v", err)
	}
	state.Resolve(posts, err)

	out := cmd.OutOrStdout()
	pp := &printers.PrettyPrint{MaxColWidth: lo.MaxWidth}
	if oo.JSON {
		return oo.HandleError(pp.JSON(out, state.Posts()))
	}
	pp.Title(out, "Posts Data")
	pp.Posts(out, state.Posts())
	return nil
}
