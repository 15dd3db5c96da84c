package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// Snapshot pairs a generated graph with the parameters that produced it.
// HasParams reports whether the params block was present on import; exports
// always include it when set.
type Snapshot struct {
	Graph     *tcn.Graph
	Params    tcn.Params
	Seed      uint64
	HasParams bool
}

type snapshotJSON struct {
	Params *paramsJSON `json:"params,omitempty"`
	Nodes  []nodeJSON  `json:"nodes"`
	Edges  []edgeJSON  `json:"edges"`
}

type paramsJSON struct {
	Kernel int     `json:"kernel"`
	Growth float64 `json:"growth"`
	Blocks int     `json:"blocks"`
	Seed   uint64  `json:"seed"`
}

type nodeJSON struct {
	Layer  int  `json:"layer"`
	T      int  `json:"t"`
	Active bool `json:"active,omitempty"`
}

type edgeJSON struct {
	From coordJSON `json:"from"`
	To   coordJSON `json:"to"`
}

type coordJSON struct {
	Layer int `json:"layer"`
	T     int `json:"t"`
}

// WriteJSON encodes a snapshot as JSON and writes it to w.
// The output includes inactive grid nodes, so the file re-imports with
// [ReadJSON] into an identical graph.
func WriteJSON(s Snapshot, w io.Writer) error {
	g := s.Graph
	out := snapshotJSON{
		Nodes: make([]nodeJSON, 0, g.NodeCount()),
		Edges: make([]edgeJSON, 0, g.EdgeCount()),
	}
	if s.HasParams {
		out.Params = &paramsJSON{
			Kernel: s.Params.Kernel,
			Growth: s.Params.Growth,
			Blocks: s.Params.Blocks,
			Seed:   s.Seed,
		}
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeJSON{Layer: n.Layer, T: n.T, Active: n.Active})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{
			From: coordJSON{Layer: e.From.Layer, T: e.From.T},
			To:   coordJSON{Layer: e.To.Layer, T: e.To.T},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a snapshot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}
