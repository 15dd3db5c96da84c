package tcn

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a coordinate with no node. Freshly generated graphs never
	// trigger this; it guards graphs reconstructed from serialized form.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveLayers is returned by [Graph.Validate] when an edge
	// does not climb exactly one layer (From.Layer+1 != To.Layer). Every
	// kernel tap reads from the layer directly below the node it feeds.
	ErrNonConsecutiveLayers = errors.New("edges must connect consecutive layers")

	// ErrEdgeTimeOrder is returned by [Graph.Validate] when an edge moves
	// forward in time (From.T > To.T). Causal convolutions only look at
	// samples at or before the time step they produce.
	ErrEdgeTimeOrder = errors.New("edge source time must not exceed target time")
)

// Coord identifies a node by its grid position. Layer counts convolution
// stages from the raw input (layer 0) up to the final output (layer L).
// T is a time index relative to the output sample at t=0 and is therefore
// never positive.
type Coord struct {
	Layer int
	T     int
}

// Node is one sample slot in the layer/time grid. Active marks nodes on
// the causal dependency path of the output sample; inactive nodes exist
// only to complete the grid for display and never carry edges.
//
// Screen coordinates are deliberately absent. Positioning is owned by the
// render package and recomputed from the viewport on every pass, so the
// same graph can be drawn at any size.
type Node struct {
	Layer  int
	T      int
	Active bool
}

// Coord returns the node's grid identity.
func (n *Node) Coord() Coord { return Coord{Layer: n.Layer, T: n.T} }

// Edge is a directed dependency between nodes in consecutive layers:
// From causally feeds To one layer up. Edges are created only by the
// traversal and kept in discovery order.
type Edge struct {
	From Coord
	To   Coord
}

// Graph holds one generated receptive-field graph: every node of the
// layer/time grid plus the dependency edges discovered by the backward
// traversal. Nodes are deduplicated by coordinate - at most one node per
// (layer, t) pair - and a node, once active, never becomes inactive again.
//
// A Graph is rebuilt from scratch on every parameter change; there is no
// incremental update. It is not safe for concurrent mutation.
type Graph struct {
	nodes map[Coord]*Node
	order []*Node // creation order, kept for deterministic iteration
	edges []Edge

	layers int // highest layer touched
	minT   int // lowest time index touched (<= 0)
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[Coord]*Node)}
}

// Touch returns the node at (layer, t), creating it inactive if missing.
// The boolean reports whether this call created the node. Existing nodes
// are returned unchanged, so grid filling never clears an active flag.
func (g *Graph) Touch(layer, t int) (*Node, bool) {
	c := Coord{Layer: layer, T: t}
	if n, ok := g.nodes[c]; ok {
		return n, false
	}
	n := &Node{Layer: layer, T: t}
	g.nodes[c] = n
	g.order = append(g.order, n)
	if layer > g.layers {
		g.layers = layer
	}
	if t < g.minT {
		g.minT = t
	}
	return n, true
}

// Activate returns the node at (layer, t), creating it if missing, and
// marks it active. Activation only upgrades: a node revisited through a
// different dependency path stays active. The boolean reports creation,
// which the traversal uses to decide whether the node still needs its own
// expansion.
func (g *Graph) Activate(layer, t int) (*Node, bool) {
	n, created := g.Touch(layer, t)
	n.Active = true
	return n, created
}

// AddEdge records a dependency edge between two coordinates. Endpoints are
// not checked here; [Graph.Validate] covers reconstructed graphs.
func (g *Graph) AddEdge(from, to Coord) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// Node returns the node at (layer, t) and true, or nil and false if the
// coordinate was never touched.
func (g *Graph) Node(layer, t int) (*Node, bool) {
	n, ok := g.nodes[Coord{Layer: layer, T: t}]
	return n, ok
}

// Output returns the final output node at (Layers, 0). Generated graphs
// always have one; the boolean is false only for hand-built graphs.
func (g *Graph) Output() (*Node, bool) {
	return g.Node(g.layers, 0)
}

// Nodes returns all nodes in creation order: traversal discoveries first,
// then grid fill. The slice is a copy but shares node pointers with the
// graph.
func (g *Graph) Nodes() []*Node {
	return slices.Clone(g.order)
}

// Edges returns a copy of the edge list in discovery order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Layers returns the highest layer index, i.e. the output layer L.
// Returns 0 for an empty graph.
func (g *Graph) Layers() int { return g.layers }

// MinT returns the lowest time index in the graph (<= 0).
// Returns 0 for an empty graph.
func (g *Graph) MinT() int { return g.minT }

// ActiveCount returns the number of active nodes.
func (g *Graph) ActiveCount() int {
	count := 0
	for _, n := range g.order {
		if n.Active {
			count++
		}
	}
	return count
}

// InDegree returns the number of edges targeting the node at c. For every
// active node above the input layer this equals the kernel size. Linear in
// the edge count; receptive-field graphs are small enough not to care.
func (g *Graph) InDegree(c Coord) int {
	count := 0
	for _, e := range g.edges {
		if e.To == c {
			count++
		}
	}
	return count
}

// MinActiveInputT returns the lowest time index among active input-layer
// nodes. The boolean is false when no active input node exists, which only
// happens for degenerate parameter sets outside the documented ranges.
func (g *Graph) MinActiveInputT() (int, bool) {
	found := false
	minT := 0
	for _, n := range g.order {
		if n.Layer != 0 || !n.Active {
			continue
		}
		if !found || n.T < minT {
			minT = n.T
			found = true
		}
	}
	return minT, found
}

// Validate checks structural integrity and returns nil if the graph is
// consistent. It verifies that every edge connects existing nodes, climbs
// exactly one layer, and does not move forward in time. Returns
// ErrInvalidEdgeEndpoint, ErrNonConsecutiveLayers, or ErrEdgeTimeOrder.
//
// Generated graphs satisfy these by construction; call this after loading
// a graph from serialized form.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		src, okS := g.nodes[e.From]
		dst, okD := g.nodes[e.To]
		if !okS || !okD {
			return fmt.Errorf("%w: %d/%d -> %d/%d", ErrInvalidEdgeEndpoint, e.From.Layer, e.From.T, e.To.Layer, e.To.T)
		}
		if dst.Layer != src.Layer+1 {
			return fmt.Errorf("%w: %d/%d -> %d/%d", ErrNonConsecutiveLayers, e.From.Layer, e.From.T, e.To.Layer, e.To.T)
		}
		if src.T > dst.T {
			return fmt.Errorf("%w: %d/%d -> %d/%d", ErrEdgeTimeOrder, e.From.Layer, e.From.T, e.To.Layer, e.To.T)
		}
	}
	return nil
}
