package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	NoopPipelineHooks
	events []string
}

func (r *recordingHooks) OnGenerateStart(_ context.Context, _ int, _ float64, _ int) {
	r.events = append(r.events, "generate-start")
}

func (r *recordingHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	r.events = append(r.events, "render-complete:"+format)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)

	ctx := context.Background()
	Pipeline().OnGenerateStart(ctx, 3, 2.0, 4)
	Pipeline().OnRenderComplete(ctx, "svg", 1024, time.Millisecond, nil)

	if len(rec.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(rec.events))
	}
	if rec.events[0] != "generate-start" {
		t.Errorf("events[0] = %q, want %q", rec.events[0], "generate-start")
	}
	if rec.events[1] != "render-complete:svg" {
		t.Errorf("events[1] = %q, want %q", rec.events[1], "render-complete:svg")
	}
}

func TestSetPipelineHooks_NilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	Pipeline().OnGenerateStart(context.Background(), 2, 1.0, 1)
	if len(rec.events) != 1 {
		t.Errorf("recorded %d events after nil registration, want 1", len(rec.events))
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&recordingHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() after Reset = %T, want NoopPipelineHooks", Pipeline())
	}
}
