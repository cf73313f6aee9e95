package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
	"github.com/mklemetti/geneagraph/pkg/genealogy"
	"github.com/mklemetti/geneagraph/pkg/graphio"
	"github.com/mklemetti/geneagraph/pkg/mathgenealogy"
	"github.com/mklemetti/geneagraph/pkg/render"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	ancestors   bool   // crawl advisor links
	descendants bool   // crawl student links
	maxRecords  int    // maximum records to fetch
	refresh     bool   // bypass the record cache
	noCache     bool   // disable caching entirely
	format      string // output format: dot, json, svg, png, jpg
	output      string // output file path (stdout if empty)
}

// buildCommand creates the build command.
//
// Default options follow the genealogy convention: ancestors are crawled,
// descendants are not. Pass --ancestors=false --descendants to flip.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{ancestors: true, format: "dot"}

	cmd := &cobra.Command{
		Use:   "build <id>...",
		Short: "Fetch records and build a genealogy graph",
		Long: `Build an academic genealogy graph starting from one or more
Math Genealogy Project ids. The listed mathematicians become the graph
heads in argument order.

Examples:
  geneagraph build 18231                      # Jacobi's advisor lineage as dot
  geneagraph build 18231 --descendants        # include students
  geneagraph build 18231 -o jacobi.svg --format svg
  geneagraph build 18231 26430 --format json -o graph.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return c.runBuild(cmd, ids, &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.ancestors, "ancestors", "a", opts.ancestors, "crawl advisor links")
	cmd.Flags().BoolVarP(&opts.descendants, "descendants", "d", opts.descendants, "crawl student links")
	cmd.Flags().IntVar(&opts.maxRecords, "max-records", mathgenealogy.DefaultMaxRecords, "maximum records to fetch")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached records")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the record cache")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format (dot, json, svg, png, jpg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, ids []int, opts *buildOpts) error {
	logger := loggerFromContext(cmd.Context())

	resolver, err := c.newResolver(cmd, opts.noCache)
	if err != nil {
		return err
	}

	logger.Infof("Fetching %d seed record(s)", len(ids))
	prog := newProgress(logger)
	g, err := resolver.Resolve(cmd.Context(), ids, mathgenealogy.Options{
		IncludeAncestors:   opts.ancestors,
		IncludeDescendants: opts.descendants,
		MaxRecords:         opts.maxRecords,
		Refresh:            opts.refresh,
		Logger:             func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
	if err != nil {
		return fmt.Errorf("%s", apperrors.UserMessage(err))
	}
	prog.done(fmt.Sprintf("Fetched %d records", g.NodeCount()))

	if err := c.writeGraph(cmd, g, opts); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Built genealogy graph")
		printStats(g.NodeCount(), len(g.Heads()))
		printFile(opts.output)
	}
	return nil
}

// writeGraph emits the graph in the requested format.
func (c *CLI) writeGraph(cmd *cobra.Command, g *genealogy.Graph, opts *buildOpts) error {
	switch opts.format {
	case "json":
		if opts.output == "" {
			return graphio.Write(g, os.Stdout)
		}
		return graphio.WriteFile(g, opts.output)
	case "dot":
		return writeOutput(opts.output, []byte(g.GenerateDot(opts.ancestors, opts.descendants)))
	default:
		format, err := render.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		dot := g.GenerateDot(opts.ancestors, opts.descendants)
		data, err := render.Render(cmd.Context(), dot, format)
		if err != nil {
			return fmt.Errorf("%s", apperrors.UserMessage(err))
		}
		return writeOutput(opts.output, data)
	}
}

// parseIDs converts command arguments to genealogy ids.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid genealogy id %q (must be a positive integer)", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeOutput writes data to path, or stdout if path is empty.
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
