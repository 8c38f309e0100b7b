package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penman/pkg/languages"
	"github.com/matzehuels/penman/pkg/styles"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script. Language codes and
// style ids complete from the built-in tables (see registerCompletions).
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell.

  source <(penman completion bash)
  penman completion zsh > "${fpath[1]}/_penman"
  penman completion fish > ~/.config/fish/completions/penman.fish
  penman completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// registerCompletions attaches value completion to the language and style
// flags of every command under root.
func registerCompletions(root *cobra.Command) {
	langs := func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, l := range languages.All() {
			out = append(out, l.Code+"\t"+l.Name)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
	styleIDs := func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, s := range styles.All() {
			out = append(out, s.ID+"\t"+s.Name)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
	formats := cobra.FixedCompletions([]string{formatPNG, formatPDF}, cobra.ShellCompDirectiveNoFileComp)

	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		for flag, fn := range map[string]cobra.CompletionFunc{
			"from": langs, "to": langs, "style": styleIDs, "format": formats,
		} {
			if cmd.Flags().Lookup(flag) != nil {
				_ = cmd.RegisterFlagCompletionFunc(flag, fn)
			}
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}
