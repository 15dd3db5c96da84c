// Package observability provides hook points around pipeline stages.
//
// Hooks let callers observe graph generation and rendering without the core
// packages depending on a metrics or tracing backend. Defaults are no-ops;
// main (or a test) registers an implementation at startup:
//
//	observability.SetPipelineHooks(&myHooks{})
//
// Libraries emit events through the registry:
//
//	observability.Pipeline().OnGenerateStart(ctx, k, d, blocks)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the visualization pipeline. Generation
// and layout cannot fail, so only the render events carry an error.
type PipelineHooks interface {
	// Generate events
	OnGenerateStart(ctx context.Context, kernel int, growth float64, blocks int)
	OnGenerateComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int, float64, int)                  {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, int, time.Duration)         {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration)                     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// Call once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op defaults. Primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
