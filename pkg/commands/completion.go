package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script for posts",
		Long: `Print a completion script for the named shell. bash is the default.

  . <(posts completion)        # bash, current session
  posts completion zsh > "${fpath[1]}/_posts"
  posts completion fish | source
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: completionShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			w := cmd.OutOrStdout()
			switch shell {
			case "bash":
				return topLevel.GenBashCompletion(w)
			case "zsh":
				return topLevel.GenZshCompletion(w)
			case "fish":
				return topLevel.GenFishCompletion(w, true)
			case "powershell":
				return topLevel.GenPowerShellCompletion(w)
			}
			return fmt.Errorf("unsupported shell %q, want one of %v", shell, completionShells)
		},
	}

	topLevel.AddCommand(cmd)
}
