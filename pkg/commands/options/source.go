// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"
)

// SourceOptions selects the posts endpoint and how it is queried.
type SourceOptions struct {
	URL     string
	Timeout time.Duration
	Verbose bool
}

// AddSourceArgs wires the endpoint flags on cmd and all of its subcommands.
func AddSourceArgs(cmd *cobra.Command, o *SourceOptions) {
	cmd.PersistentFlags().StringVar(&o.URL, "url", "",
		"Posts endpoint to fetch. Defaults to the configured url.")
	cmd.PersistentFlags().DurationVar(&o.Timeout, "timeout", 0,
		"Give up on the request after this long. 0 waits forever.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log the outbound request and response.")
}
