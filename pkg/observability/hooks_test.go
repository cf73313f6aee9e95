package observability

import (
	"context"
	"testing"
	"time"
)

type recordingFetchHooks struct {
	starts    []int
	completes []int
	cached    []bool
}

func (h *recordingFetchHooks) OnFetchStart(_ context.Context, id int) {
	h.starts = append(h.starts, id)
}

func (h *recordingFetchHooks) OnFetchComplete(_ context.Context, id int, cached bool, _ time.Duration, _ error) {
	h.completes = append(h.completes, id)
	h.cached = append(h.cached, cached)
}

func TestFetchHooks_Registration(t *testing.T) {
	defer Reset()

	rec := &recordingFetchHooks{}
	SetFetchHooks(rec)

	ctx := context.Background()
	Fetch().OnFetchStart(ctx, 18231)
	Fetch().OnFetchComplete(ctx, 18231, true, time.Millisecond, nil)

	if len(rec.starts) != 1 || rec.starts[0] != 18231 {
		t.Errorf("starts = %v, want [18231]", rec.starts)
	}
	if len(rec.completes) != 1 || !rec.cached[0] {
		t.Errorf("completes = %v cached = %v", rec.completes, rec.cached)
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetFetchHooks(nil)
	SetRenderHooks(nil)

	// Must still be callable without panicking.
	Fetch().OnFetchStart(context.Background(), 1)
	Render().OnRenderStart(context.Background(), "svg")
}

func TestReset(t *testing.T) {
	rec := &recordingFetchHooks{}
	SetFetchHooks(rec)
	Reset()

	Fetch().OnFetchStart(context.Background(), 1)
	if len(rec.starts) != 0 {
		t.Error("Reset() did not restore no-op hooks")
	}
}
