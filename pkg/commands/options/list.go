package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	MaxWidth uint
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().UintVar(&o.MaxWidth, "max-width", 0,
		"Truncate each column to this many characters. 0 prints cells whole.")
}
