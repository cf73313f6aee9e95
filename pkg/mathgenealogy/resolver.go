package mathgenealogy

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
	"github.com/mklemetti/geneagraph/pkg/genealogy"
)

// workers is the number of concurrent goroutines for fetching records.
// This bounds parallelism to avoid hammering the genealogy site.
const workers = 8

// DefaultMaxRecords is the default cap on total records fetched per crawl.
const DefaultMaxRecords = 500

// Options configures graph resolution behavior.
type Options struct {
	IncludeAncestors   bool                 // Follow advisor links
	IncludeDescendants bool                 // Follow student links
	MaxRecords         int                  // Maximum records to fetch (default: 500)
	Refresh            bool                 // Bypass cache for fresh data
	Logger             func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = DefaultMaxRecords
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Fetcher retrieves a single genealogy record by id.
//
// [Client] is the standard implementation. Implementations must be safe
// for concurrent use; the resolver calls FetchRecord from multiple
// goroutines.
type Fetcher interface {
	FetchRecord(ctx context.Context, id int, refresh bool) (*Record, error)
}

// Resolver builds a genealogy graph by crawling record links.
//
// Starting from one or more seed ids, it fetches records breadth-first,
// following advisor and/or student links per Options, and assembles the
// results into a [genealogy.Graph]. Seed records become the graph heads
// in the order given.
type Resolver struct {
	fetcher Fetcher
}

// NewResolver creates a Resolver that crawls using the given fetcher.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fetches the seed records and their links, respecting Options
// limits, and returns the assembled graph.
//
// The crawl proceeds in breadth-first waves of up to [workers] concurrent
// fetches. It stops when all reachable records are fetched, MaxRecords is
// reached, or the context is canceled.
//
// A failed seed fetch fails the whole resolution. Failures on records
// reached through links are logged via Options.Logger and skipped; their
// ids stay present in the adjacency lists of fetched records, where graph
// rendering ignores them.
//
// Node insertion order is deterministic: seeds first in the order given,
// then all remaining records sorted by id.
func (r *Resolver) Resolve(ctx context.Context, seeds []int, opts Options) (*genealogy.Graph, error) {
	if len(seeds) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidID, "no seed ids given")
	}
	for _, id := range seeds {
		if err := apperrors.ValidateGenealogyID(id); err != nil {
			return nil, err
		}
	}
	opts = opts.WithDefaults()

	seeds = dedupe(seeds)
	fetched, err := r.crawl(ctx, seeds, opts)
	if err != nil {
		return nil, err
	}
	return buildGraph(seeds, fetched)
}

// crawl fetches records in breadth-first waves until the frontier is
// empty or the record budget is spent.
func (r *Resolver) crawl(ctx context.Context, seeds []int, opts Options) (map[int]*Record, error) {
	fetched := make(map[int]*Record)
	queued := make(map[int]bool)
	isSeed := make(map[int]bool)

	frontier := make([]int, 0, len(seeds))
	for _, id := range seeds {
		queued[id] = true
		isSeed[id] = true
		frontier = append(frontier, id)
	}

	for len(frontier) > 0 {
		if budget := opts.MaxRecords - len(fetched); len(frontier) > budget {
			frontier = frontier[:budget]
		}
		if len(frontier) == 0 {
			break
		}

		var mu sync.Mutex
		eg, egctx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for _, id := range frontier {
			eg.Go(func() error {
				rec, err := r.fetcher.FetchRecord(egctx, id, opts.Refresh)
				if err != nil {
					// Seed failures are fatal; link failures are logged
					// and the record is skipped.
					if isSeed[id] {
						return err
					}
					opts.Logger("fetch failed: record %d: %v", id, err)
					return nil
				}
				mu.Lock()
				fetched[id] = rec
				mu.Unlock()
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		var next []int
		for _, id := range frontier {
			rec, ok := fetched[id]
			if !ok {
				continue
			}
			if opts.IncludeAncestors {
				for _, adv := range rec.Advisors {
					if !queued[adv] {
						queued[adv] = true
						next = append(next, adv)
					}
				}
			}
			if opts.IncludeDescendants {
				for _, stu := range rec.Students {
					if !queued[stu] {
						queued[stu] = true
						next = append(next, stu)
					}
				}
			}
		}
		frontier = next
	}

	return fetched, nil
}

// buildGraph assembles fetched records into a graph. Seeds become heads
// in order; the rest are inserted sorted by id for deterministic output.
func buildGraph(seeds []int, fetched map[int]*Record) (*genealogy.Graph, error) {
	g, err := genealogy.New()
	if err != nil {
		return nil, err
	}

	insert := func(rec *Record, head bool) error {
		gr, err := rec.GenealogyRecord()
		if err != nil {
			return err
		}
		return g.AddNode(gr, slices.Clone(rec.Advisors), slices.Clone(rec.Students), head)
	}

	for _, id := range seeds {
		rec, ok := fetched[id]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeRecordNotFound, "seed record %d was not fetched", id)
		}
		if err := insert(rec, true); err != nil {
			return nil, err
		}
	}

	rest := make([]int, 0, len(fetched))
	for id := range fetched {
		if !slices.Contains(seeds, id) {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	for _, id := range rest {
		if err := insert(fetched[id], false); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
