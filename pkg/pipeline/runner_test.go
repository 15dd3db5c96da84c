package pipeline

import (
	"bytes"
	"context"
	stdio "io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	tcnio "github.com/AllendiaLabs/tcn-visualization/pkg/io"
	"github.com/AllendiaLabs/tcn-visualization/pkg/observability"
)

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(stdio.Discard, log.Options{}))
}

func TestRunnerExecute(t *testing.T) {
	r := quietRunner()

	result, err := r.Execute(context.Background(), Options{
		Kernel:  2,
		Growth:  1.0,
		Blocks:  1,
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", result.Stats.EdgeCount)
	}
	if result.Stats.Field != 2 {
		t.Errorf("Field = %d, want 2", result.Stats.Field)
	}

	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact does not start with <svg")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact does not start with digraph")
	}
	if !bytes.Contains(result.Artifacts[FormatJSON], []byte(`"nodes"`)) {
		t.Error("json artifact missing nodes array")
	}
}

func TestRunnerExecute_JSONRoundTrip(t *testing.T) {
	r := quietRunner()
	opts := Options{Kernel: 3, Growth: 2.0, Blocks: 3, Seed: 9, Formats: []string{FormatJSON}}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	snap, err := tcnio.ReadJSON(bytes.NewReader(result.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if snap.Graph.NodeCount() != result.Graph.NodeCount() {
		t.Errorf("NodeCount = %d, want %d", snap.Graph.NodeCount(), result.Graph.NodeCount())
	}
	if !snap.HasParams || snap.Seed != 9 || snap.Params.Blocks != 3 {
		t.Errorf("snapshot params = %+v seed = %d, want generating parameters", snap.Params, snap.Seed)
	}
}

func TestRunnerExecute_InvalidOptions(t *testing.T) {
	r := quietRunner()

	if _, err := r.Execute(context.Background(), Options{Kernel: 1}); err == nil {
		t.Error("Execute() succeeded with kernel below minimum")
	}
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"bmp"}}); err == nil {
		t.Error("Execute() succeeded with unsupported format")
	}
}

func TestRunnerGenerate_SameSeedSameGraph(t *testing.T) {
	r := quietRunner()
	ctx := context.Background()
	opts := Options{Kernel: 3, Growth: 1.5, Blocks: 4, Seed: 123}

	a, err := r.Generate(ctx, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	b, err := r.Generate(ctx, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() || a.MinT() != b.MinT() {
		t.Errorf("same seed produced different graphs: %d/%d/%d vs %d/%d/%d",
			a.NodeCount(), a.EdgeCount(), a.MinT(), b.NodeCount(), b.EdgeCount(), b.MinT())
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	generates, layouts, renders int
}

func (c *countingHooks) OnGenerateComplete(_ context.Context, _, _ int, _ time.Duration) {
	c.generates++
}
func (c *countingHooks) OnLayoutComplete(_ context.Context, _ time.Duration) { c.layouts++ }
func (c *countingHooks) OnRenderComplete(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	c.renders++
}

func TestRunnerExecute_EmitsHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)

	r := quietRunner()
	_, err := r.Execute(context.Background(), Options{Formats: []string{FormatSVG, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if hooks.generates != 1 {
		t.Errorf("generate events = %d, want 1", hooks.generates)
	}
	if hooks.layouts != 1 {
		t.Errorf("layout events = %d, want 1", hooks.layouts)
	}
	if hooks.renders != 2 {
		t.Errorf("render events = %d, want 2", hooks.renders)
	}
}
