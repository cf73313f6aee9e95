package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
	"github.com/mklemetti/geneagraph/pkg/render"
)

// renderCommand creates the render command, which runs Graphviz layout on
// existing dot text.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format = "svg"
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <file.dot>",
		Short: "Render dot text as an image",
		Long: `Render Graphviz dot text as an image. Rendering happens
in-process; no graphviz installation is required.

Examples:
  geneagraph render graph.dot                  # graph.svg
  geneagraph render graph.dot --format png -o tree.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			dot, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s", format))
			spin.Start()
			data, err := render.Render(cmd.Context(), string(dot), f)
			if err != nil {
				spin.StopWithError(apperrors.UserMessage(err))
				return err
			}
			spin.Stop()

			path := output
			if path == "" {
				path = replaceExt(args[0], string(f))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %s", format)
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", format, "image format (svg, png, jpg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with new extension)")

	return cmd
}

// replaceExt swaps the file extension of path for ext.
func replaceExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		path = path[:i]
	}
	return path + "." + ext
}
