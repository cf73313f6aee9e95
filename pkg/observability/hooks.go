// Package observability provides hooks for metrics and tracing.
//
// The fetching and rendering layers emit events through a small hooks
// interface instead of depending on a metrics backend. Consumers register
// implementations at startup; everything defaults to no-ops.
//
//	func main() {
//	    observability.SetFetchHooks(&myFetchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Fetch().OnFetchStart(ctx, id)
//	// ... fetch the record ...
//	observability.Fetch().OnFetchComplete(ctx, id, cached, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// FetchHooks receives events from genealogy record fetching.
type FetchHooks interface {
	// OnFetchStart records the start of a record fetch.
	OnFetchStart(ctx context.Context, id int)

	// OnFetchComplete records the outcome of a record fetch. cached is
	// true when the record came from the local cache.
	OnFetchComplete(ctx context.Context, id int, cached bool, duration time.Duration, err error)
}

// RenderHooks receives events from dot generation and Graphviz rendering.
type RenderHooks interface {
	// OnRenderStart records the start of a render to the given format.
	OnRenderStart(ctx context.Context, format string)

	// OnRenderComplete records the outcome of a render.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetchStart(context.Context, int)                                  {}
func (NoopFetchHooks) OnFetchComplete(context.Context, int, bool, time.Duration, error)   {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                              {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

var (
	fetchHooks  FetchHooks  = NoopFetchHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetFetchHooks registers custom fetch hooks.
// This should be called once at application startup before any fetching.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	fetchHooks = NoopFetchHooks{}
	renderHooks = NoopRenderHooks{}
}
