package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/posts/pkg/commands/options"
	"tableflip.dev/posts/pkg/config"
)

var (
	oo = &base.OutputOptions{}
)

// isTerminal reports whether stdout is interactive.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func New() *cobra.Command {
	so := &options.SourceOptions{}
	lo := &options.ListOptions{}
	v := config.New()

	cmd := &cobra.Command{
		Use:   "posts",
		Short: base.Wrap80("Show the posts served by a REST endpoint as a table."),
		Long: base.Wrap80(`Fetch the posts list once and show it as a table. With no ` +
			`subcommand the interactive table opens when stdout is a terminal, ` +
			`otherwise the table is printed once.`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal() {
				return runUI(cmd, v, so)
			}
			return runList(cmd, v, so, lo)
		},
	}

	options.AddSourceArgs(cmd, so)
	bindFlag(v, config.KeyURL, cmd.PersistentFlags(), "url")
	bindFlag(v, config.KeyTimeout, cmd.PersistentFlags(), "timeout")

	AddCommands(cmd, v, so, lo)
	return cmd
}

func AddCommands(topLevel *cobra.Command, v *viper.Viper, so *options.SourceOptions, lo *options.ListOptions) {
	addUI(topLevel, v, so)
	addList(topLevel, v, so, lo)
	addServe(topLevel, v, so)
	addVersion(topLevel)
	addCompletions(topLevel)
}
