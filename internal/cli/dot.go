package cli

import (
	"github.com/spf13/cobra"

	"github.com/mklemetti/geneagraph/pkg/graphio"
)

// dotCommand creates the dot command, which regenerates Graphviz dot text
// from a saved graph JSON file without touching the network.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		ancestors   = true
		descendants bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "dot <graph.json>",
		Short: "Generate Graphviz dot text from a saved graph",
		Long: `Generate Graphviz dot text from a graph file previously written
by "geneagraph build --format json". No network access is needed.

Examples:
  geneagraph dot graph.json                   # advisor edges to stdout
  geneagraph dot graph.json -d -o full.dot    # include student edges`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadFile(args[0])
			if err != nil {
				return err
			}
			dot := g.GenerateDot(ancestors, descendants)
			if err := writeOutput(output, []byte(dot)); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Generated dot output")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&ancestors, "ancestors", "a", ancestors, "include advisor edges")
	cmd.Flags().BoolVarP(&descendants, "descendants", "d", descendants, "include student edges")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
