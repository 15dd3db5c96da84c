package render

import (
	"testing"

	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// smallGraph builds the 2x2 grid produced by k=2, d=1, L=1: active nodes
// (0,0), (0,-1), (1,0), one inactive filler at (1,-1), two edges into the
// output.
func smallGraph() *tcn.Graph {
	b := tcn.NewBuilder(tcn.NewSource(1))
	return b.Generate(2, 1.0, 1)
}

func findDot(t *testing.T, l Layout, c tcn.Coord) Dot {
	t.Helper()
	for _, d := range l.Dots {
		if d.Coord == c {
			return d
		}
	}
	t.Fatalf("no dot for %v in layout", c)
	return Dot{}
}

func TestBuild_CornerAnchors(t *testing.T) {
	l := Build(smallGraph(), 800, 600)

	output := findDot(t, l, tcn.Coord{Layer: 1, T: 0})
	if output.X != 760 || output.Y != 40 {
		t.Errorf("output dot at (%v, %v), want (760, 40)", output.X, output.Y)
	}

	earliest := findDot(t, l, tcn.Coord{Layer: 0, T: -1})
	if earliest.X != 40 || earliest.Y != 560 {
		t.Errorf("earliest input dot at (%v, %v), want (40, 560)", earliest.X, earliest.Y)
	}
}

func TestBuild_LayersGrowUpward(t *testing.T) {
	l := Build(smallGraph(), 800, 600)

	input := findDot(t, l, tcn.Coord{Layer: 0, T: 0})
	output := findDot(t, l, tcn.Coord{Layer: 1, T: 0})
	if output.Y >= input.Y {
		t.Errorf("output Y = %v not above input Y = %v", output.Y, input.Y)
	}
}

func TestBuild_KeepsMargins(t *testing.T) {
	b := tcn.NewBuilder(tcn.NewSource(7))
	g := b.Generate(3, 2.0, 4)

	const width, height = 640.0, 480.0
	l := Build(g, width, height)

	for _, d := range l.Dots {
		if d.X < Margin || d.X > width-Margin {
			t.Errorf("dot %v X = %v outside [%v, %v]", d.Coord, d.X, Margin, width-Margin)
		}
		if d.Y < Margin || d.Y > height-Margin {
			t.Errorf("dot %v Y = %v outside [%v, %v]", d.Coord, d.Y, Margin, height-Margin)
		}
	}
}

func TestBuild_CountsMatchGraph(t *testing.T) {
	b := tcn.NewBuilder(tcn.NewSource(3))
	g := b.Generate(3, 2.0, 3)

	l := Build(g, 800, 600)
	if len(l.Dots) != g.NodeCount() {
		t.Errorf("len(Dots) = %d, want %d", len(l.Dots), g.NodeCount())
	}
	if len(l.Arrows) != g.EdgeCount() {
		t.Errorf("len(Arrows) = %d, want %d", len(l.Arrows), g.EdgeCount())
	}
	if l.Field != ReceptiveField(g) {
		t.Errorf("Field = %d, want %d", l.Field, ReceptiveField(g))
	}
}

func TestBuild_ArrowsEndAtTargetDots(t *testing.T) {
	l := Build(smallGraph(), 800, 600)

	// both edges feed the output node
	for i, a := range l.Arrows {
		if a.X2 != 760 || a.Y2 != 40 {
			t.Errorf("arrow %d ends at (%v, %v), want (760, 40)", i, a.X2, a.Y2)
		}
	}
}

func TestBuild_ReadsViewportEveryCall(t *testing.T) {
	g := smallGraph()

	big := Build(g, 800, 600)
	small := Build(g, 400, 300)

	bigOut := findDot(t, big, tcn.Coord{Layer: 1, T: 0})
	smallOut := findDot(t, small, tcn.Coord{Layer: 1, T: 0})

	if smallOut.X != 360 || smallOut.Y != 40 {
		t.Errorf("resized output dot at (%v, %v), want (360, 40)", smallOut.X, smallOut.Y)
	}
	if bigOut.X == smallOut.X {
		t.Error("layout did not follow the viewport width")
	}
}

func TestBuild_SingleNodeGraph(t *testing.T) {
	b := tcn.NewBuilder(tcn.NewSource(1))
	g := b.Generate(2, 1.0, 0)

	l := Build(g, 800, 600)
	if len(l.Dots) != 1 || len(l.Arrows) != 0 {
		t.Fatalf("got %d dots and %d arrows, want 1 and 0", len(l.Dots), len(l.Arrows))
	}

	d := l.Dots[0]
	if d.X != 760 || d.Y != 560 {
		t.Errorf("lone dot at (%v, %v), want (760, 560)", d.X, d.Y)
	}
	if d.Role != RoleOutput {
		t.Errorf("lone dot role = %v, want RoleOutput", d.Role)
	}
	if l.Field != 1 {
		t.Errorf("Field = %d, want 1", l.Field)
	}
}

func TestRoleFor(t *testing.T) {
	tests := []struct {
		name     string
		node     *tcn.Node
		topLayer int
		want     Role
	}{
		{
			name:     "inactive stays dim on any layer",
			node:     &tcn.Node{Layer: 2, T: -1, Active: false},
			topLayer: 4,
			want:     RoleInactive,
		},
		{
			name:     "inactive input row stays dim",
			node:     &tcn.Node{Layer: 0, T: -3, Active: false},
			topLayer: 4,
			want:     RoleInactive,
		},
		{
			name:     "top layer is the output",
			node:     &tcn.Node{Layer: 4, T: 0, Active: true},
			topLayer: 4,
			want:     RoleOutput,
		},
		{
			name:     "layer zero is input",
			node:     &tcn.Node{Layer: 0, T: -2, Active: true},
			topLayer: 4,
			want:     RoleInput,
		},
		{
			name:     "middle layers are hidden",
			node:     &tcn.Node{Layer: 2, T: 0, Active: true},
			topLayer: 4,
			want:     RoleHidden,
		},
		{
			name:     "single layer graph colors as output",
			node:     &tcn.Node{Layer: 0, T: 0, Active: true},
			topLayer: 0,
			want:     RoleOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleFor(tt.node, tt.topLayer); got != tt.want {
				t.Errorf("RoleFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReceptiveField(t *testing.T) {
	b := tcn.NewBuilder(tcn.NewSource(1))

	if got := ReceptiveField(b.Generate(2, 1.0, 2)); got != 3 {
		t.Errorf("ReceptiveField(k=2 d=1 L=2) = %d, want 3", got)
	}
	if got := ReceptiveField(b.Generate(3, 2.0, 2)); got != 7 {
		t.Errorf("ReceptiveField(k=3 d=2 L=2) = %d, want 7", got)
	}
}

func TestReceptiveField_NoActiveInputs(t *testing.T) {
	g := tcn.New()
	g.Activate(1, 0) // active node above an empty input row

	if got := ReceptiveField(g); got != 1 {
		t.Errorf("ReceptiveField() = %d, want 1", got)
	}
}
