package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// ReadJSON decodes a JSON snapshot from r.
//
// Each node needs "layer" and "t" fields; "active" defaults to false. Each
// edge must reference declared nodes by coordinate. ReadJSON returns an
// error if the JSON is malformed, a coordinate appears twice, an edge
// references an undeclared node, or the edge structure is inconsistent
// (layers not consecutive, time running forward).
//
// The returned snapshot is independent of r; ReadJSON does not close r.
func ReadJSON(r io.Reader) (Snapshot, error) {
	var data snapshotJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}

	g := tcn.New()
	for _, n := range data.Nodes {
		nd, created := g.Touch(n.Layer, n.T)
		if !created {
			return Snapshot{}, fmt.Errorf("node %d/%d: duplicate coordinate", n.Layer, n.T)
		}
		if n.Active {
			nd.Active = true
		}
	}
	for _, e := range data.Edges {
		from := tcn.Coord{Layer: e.From.Layer, T: e.From.T}
		to := tcn.Coord{Layer: e.To.Layer, T: e.To.T}
		_, fromOK := g.Node(from.Layer, from.T)
		_, toOK := g.Node(to.Layer, to.T)
		if !fromOK || !toOK {
			return Snapshot{}, fmt.Errorf("edge %d/%d->%d/%d: undeclared node", from.Layer, from.T, to.Layer, to.T)
		}
		g.AddEdge(from, to)
	}
	if err := g.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("inconsistent graph: %w", err)
	}

	s := Snapshot{Graph: g}
	if data.Params != nil {
		s.Params = tcn.Params{
			Kernel: data.Params.Kernel,
			Growth: data.Params.Growth,
			Blocks: data.Params.Blocks,
		}
		s.Seed = data.Params.Seed
		s.HasParams = true
	}
	return s, nil
}

// ImportJSON reads a JSON snapshot file at path.
//
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path for context.
func ImportJSON(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
