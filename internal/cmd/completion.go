package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for cargo-hdk.

To load completions:

Bash:
  $ source <(cargo-hdk completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ cargo-hdk completion bash > /etc/bash_completion.d/cargo-hdk
  # macOS:
  $ cargo-hdk completion bash > $(brew --prefix)/etc/bash_completion.d/cargo-hdk

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cargo-hdk completion zsh > "${fpath[1]}/_cargo-hdk"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ cargo-hdk completion fish > ~/.config/fish/completions/cargo-hdk.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			}
			return nil
		},
	}
}
