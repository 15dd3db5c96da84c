package tcn

import (
	"errors"
	"testing"
)

func TestGraph_TouchDeduplicates(t *testing.T) {
	g := New()

	first, created := g.Touch(1, -2)
	if !created {
		t.Fatal("Touch() first call reported created = false")
	}
	second, created := g.Touch(1, -2)
	if created {
		t.Error("Touch() second call reported created = true")
	}
	if first != second {
		t.Error("Touch() returned a different node for the same coordinate")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestGraph_ActivateUpgradesButNeverDowngrades(t *testing.T) {
	g := New()

	n, _ := g.Touch(0, -3)
	if n.Active {
		t.Fatal("Touch() created an active node")
	}

	g.Activate(0, -3)
	if !n.Active {
		t.Error("Activate() did not upgrade an existing inactive node")
	}

	// Later grid fill and repeat visits must leave the flag alone.
	g.Touch(0, -3)
	g.Activate(0, -3)
	if !n.Active {
		t.Error("node lost its active flag after revisits")
	}
}

func TestGraph_TracksBounds(t *testing.T) {
	g := New()
	g.Touch(2, 0)
	g.Touch(0, -5)
	g.Touch(1, -3)

	if g.Layers() != 2 {
		t.Errorf("Layers() = %d, want 2", g.Layers())
	}
	if g.MinT() != -5 {
		t.Errorf("MinT() = %d, want -5", g.MinT())
	}
}

func TestGraph_MinActiveInputT(t *testing.T) {
	g := New()
	g.Activate(1, 0)
	g.Activate(0, -4)
	g.Activate(0, -1)
	g.Touch(0, -9) // inactive input nodes do not count

	minT, ok := g.MinActiveInputT()
	if !ok {
		t.Fatal("MinActiveInputT() reported no active input nodes")
	}
	if minT != -4 {
		t.Errorf("MinActiveInputT() = %d, want -4", minT)
	}
}

func TestGraph_MinActiveInputT_Empty(t *testing.T) {
	g := New()
	g.Activate(1, 0) // active, but not input layer

	if _, ok := g.MinActiveInputT(); ok {
		t.Error("MinActiveInputT() reported an active input node on a graph without one")
	}
}

func TestGraph_Validate(t *testing.T) {
	valid := func() *Graph {
		g := New()
		g.Activate(1, 0)
		g.Activate(0, -1)
		return g
	}

	tests := []struct {
		name    string
		build   func() *Graph
		wantErr error
	}{
		{
			name: "valid edge",
			build: func() *Graph {
				g := valid()
				g.AddEdge(Coord{Layer: 0, T: -1}, Coord{Layer: 1, T: 0})
				return g
			},
			wantErr: nil,
		},
		{
			name: "dangling endpoint",
			build: func() *Graph {
				g := valid()
				g.AddEdge(Coord{Layer: 0, T: -7}, Coord{Layer: 1, T: 0})
				return g
			},
			wantErr: ErrInvalidEdgeEndpoint,
		},
		{
			name: "skipped layer",
			build: func() *Graph {
				g := valid()
				g.Activate(2, 0)
				g.AddEdge(Coord{Layer: 0, T: -1}, Coord{Layer: 2, T: 0})
				return g
			},
			wantErr: ErrNonConsecutiveLayers,
		},
		{
			name: "time inversion",
			build: func() *Graph {
				g := valid()
				g.Activate(1, -1)
				g.AddEdge(Coord{Layer: 0, T: -1}, Coord{Layer: 1, T: -1})
				g.AddEdge(Coord{Layer: 0, T: -1}, Coord{Layer: 1, T: 0})
				g.Activate(0, 0)
				g.AddEdge(Coord{Layer: 0, T: 0}, Coord{Layer: 1, T: -1})
				return g
			},
			wantErr: ErrEdgeTimeOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGraph_InDegree(t *testing.T) {
	g := New()
	g.Activate(1, 0)
	g.Activate(0, 0)
	g.Activate(0, -1)
	g.AddEdge(Coord{Layer: 0, T: 0}, Coord{Layer: 1, T: 0})
	g.AddEdge(Coord{Layer: 0, T: -1}, Coord{Layer: 1, T: 0})

	if got := g.InDegree(Coord{Layer: 1, T: 0}); got != 2 {
		t.Errorf("InDegree(output) = %d, want 2", got)
	}
	if got := g.InDegree(Coord{Layer: 0, T: 0}); got != 0 {
		t.Errorf("InDegree(input) = %d, want 0", got)
	}
}

func TestGraph_NodesKeepCreationOrder(t *testing.T) {
	g := New()
	g.Activate(2, 0)
	g.Activate(1, -1)
	g.Touch(0, -2)

	nodes := g.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("Nodes() returned %d nodes, want 3", len(nodes))
	}
	want := []Coord{{2, 0}, {1, -1}, {0, -2}}
	for i, n := range nodes {
		if n.Coord() != want[i] {
			t.Errorf("Nodes()[%d] = %v, want %v", i, n.Coord(), want[i])
		}
	}
}
