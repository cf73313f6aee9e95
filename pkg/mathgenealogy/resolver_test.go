package mathgenealogy

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
)

// fakeFetcher serves records from a map and records fetch counts.
type fakeFetcher struct {
	mu      sync.Mutex
	records map[int]*Record
	fail    map[int]bool
	fetches map[int]int
}

func newFakeFetcher(records ...*Record) *fakeFetcher {
	f := &fakeFetcher{
		records: make(map[int]*Record),
		fail:    make(map[int]bool),
		fetches: make(map[int]int),
	}
	for _, r := range records {
		f.records[r.ID] = r
	}
	return f
}

func (f *fakeFetcher) FetchRecord(_ context.Context, id int, _ bool) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[id]++
	if f.fail[id] {
		return nil, apperrors.New(apperrors.ErrCodeNetwork, "record %d: injected failure", id)
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeRecordNotFound, "no record with id %d", id)
	}
	return rec, nil
}

func (f *fakeFetcher) fetchCount(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[id]
}

func rec(id int, name string, advisors, students []int) *Record {
	return &Record{ID: id, Name: name, Advisors: advisors, Students: students}
}

func TestResolveSingleRecord(t *testing.T) {
	fetcher := newFakeFetcher(rec(1, "Alice", nil, nil))
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if heads := g.Heads(); len(heads) != 1 || heads[0] != 1 {
		t.Errorf("Heads() = %v, want [1]", heads)
	}
}

func TestResolveAncestors(t *testing.T) {
	fetcher := newFakeFetcher(
		rec(1, "Student", []int{2}, nil),
		rec(2, "Advisor", []int{3}, []int{1}),
		rec(3, "Grandadvisor", nil, []int{2}),
	)
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1}, Options{IncludeAncestors: true})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}

	dot := g.GenerateDot(true, false)
	for _, want := range []string{"2 -> 1;", "3 -> 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot output missing %q:\n%s", want, dot)
		}
	}
}

func TestResolveDescendants(t *testing.T) {
	fetcher := newFakeFetcher(
		rec(1, "Advisor", nil, []int{2, 3}),
		rec(2, "First", []int{1}, nil),
		rec(3, "Second", []int{1}, nil),
	)
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1}, Options{IncludeDescendants: true})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
}

func TestResolveNoFollow(t *testing.T) {
	fetcher := newFakeFetcher(
		rec(1, "Alice", []int{2}, []int{3}),
		rec(2, "Bob", nil, nil),
		rec(3, "Carol", nil, nil),
	)
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1 (links not followed)", g.NodeCount())
	}
	if fetcher.fetchCount(2) != 0 || fetcher.fetchCount(3) != 0 {
		t.Error("linked records should not be fetched when following is disabled")
	}
}

func TestResolveMultipleSeedsHeadOrder(t *testing.T) {
	fetcher := newFakeFetcher(
		rec(5, "First Seed", nil, nil),
		rec(2, "Second Seed", nil, nil),
	)
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{5, 2}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	heads := g.Heads()
	if len(heads) != 2 || heads[0] != 5 || heads[1] != 2 {
		t.Errorf("Heads() = %v, want [5 2]", heads)
	}
}

func TestResolveDuplicateSeeds(t *testing.T) {
	fetcher := newFakeFetcher(rec(1, "Alice", nil, nil))
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1, 1}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if fetcher.fetchCount(1) != 1 {
		t.Errorf("fetch count = %d, want 1", fetcher.fetchCount(1))
	}
}

func TestResolveSeedFailureIsFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	r := NewResolver(fetcher)

	_, err := r.Resolve(context.Background(), []int{1}, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeRecordNotFound) {
		t.Errorf("Resolve() error = %v, want RECORD_NOT_FOUND", err)
	}
}

func TestResolveLinkFailureIsSkipped(t *testing.T) {
	fetcher := newFakeFetcher(rec(1, "Alice", []int{2}, nil))
	fetcher.fail[2] = true
	r := NewResolver(fetcher)

	var logged []string
	g, err := r.Resolve(context.Background(), []int{1}, Options{
		IncludeAncestors: true,
		Logger: func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if len(logged) != 1 {
		t.Errorf("logged %d messages, want 1: %v", len(logged), logged)
	}

	// The unresolved advisor stays in the adjacency list but produces
	// no edge in the rendered output.
	if dot := g.GenerateDot(true, false); strings.Contains(dot, "->") {
		t.Errorf("dot output should have no edges:\n%s", dot)
	}
}

func TestResolveMaxRecords(t *testing.T) {
	fetcher := newFakeFetcher(
		rec(1, "A", []int{2}, nil),
		rec(2, "B", []int{3}, nil),
		rec(3, "C", []int{4}, nil),
		rec(4, "D", nil, nil),
	)
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1}, Options{
		IncludeAncestors: true,
		MaxRecords:       2,
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if fetcher.fetchCount(3) != 0 {
		t.Error("record 3 should not be fetched past the budget")
	}
}

func TestResolveNoSeeds(t *testing.T) {
	r := NewResolver(newFakeFetcher())

	_, err := r.Resolve(context.Background(), nil, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidID) {
		t.Errorf("Resolve() error = %v, want INVALID_ID", err)
	}
}

func TestResolveInvalidSeed(t *testing.T) {
	r := NewResolver(newFakeFetcher())

	_, err := r.Resolve(context.Background(), []int{0}, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidID) {
		t.Errorf("Resolve() error = %v, want INVALID_ID", err)
	}
}

func TestResolveDeterministicOutput(t *testing.T) {
	records := []*Record{
		rec(1, "Root", []int{4, 3}, nil),
		rec(3, "Left", nil, nil),
		rec(4, "Right", nil, nil),
	}

	var outputs []string
	for range 3 {
		r := NewResolver(newFakeFetcher(records...))
		g, err := r.Resolve(context.Background(), []int{1}, Options{IncludeAncestors: true})
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		outputs = append(outputs, g.GenerateDot(true, false))
	}
	if outputs[0] != outputs[1] || outputs[1] != outputs[2] {
		t.Errorf("output not deterministic:\n%s\n---\n%s\n---\n%s", outputs[0], outputs[1], outputs[2])
	}
}

func TestResolveCycle(t *testing.T) {
	fetcher := newFakeFetcher(
		rec(1, "A", []int{2}, nil),
		rec(2, "B", []int{1}, nil),
	)
	r := NewResolver(fetcher)

	g, err := r.Resolve(context.Background(), []int{1}, Options{IncludeAncestors: true})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if fetcher.fetchCount(1) != 1 || fetcher.fetchCount(2) != 1 {
		t.Error("each record should be fetched exactly once")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	if opts.MaxRecords != DefaultMaxRecords {
		t.Errorf("MaxRecords = %d, want %d", opts.MaxRecords, DefaultMaxRecords)
	}
	if opts.Logger == nil {
		t.Error("Logger should not be nil after WithDefaults")
	}

	custom := Options{MaxRecords: 10}.WithDefaults()
	if custom.MaxRecords != 10 {
		t.Errorf("MaxRecords = %d, want 10", custom.MaxRecords)
	}
}
