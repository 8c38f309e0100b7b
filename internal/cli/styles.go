package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penman/pkg/languages"
	"github.com/matzehuels/penman/pkg/styles"
)

// stylesCommand lists the handwriting styles.
func (c *CLI) stylesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List handwriting styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := styles.All()
			if asJSON {
				return writeJSON(cmd, all)
			}
			rows := make([][]string, len(all))
			for i, s := range all {
				rows[i] = []string{s.ID, s.Name, s.FontFamily}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Font family"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// languagesCommand lists the offered translation languages.
func (c *CLI) languagesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List translation languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := languages.All()
			if asJSON {
				return writeJSON(cmd, all)
			}
			rows := make([][]string, len(all))
			for i, l := range all {
				rows[i] = []string{l.Code, l.Name}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Language"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
