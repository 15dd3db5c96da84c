// Package io provides JSON import and export for receptive-field graphs.
//
// # Overview
//
// A snapshot pairs a generated graph with the architecture parameters and
// seed that produced it, so a saved file both renders identically and can
// be regenerated from scratch:
//
//	{
//	  "params": {"kernel": 3, "growth": 2.0, "blocks": 4, "seed": 42},
//	  "nodes": [
//	    {"layer": 0, "t": -1, "active": true},
//	    {"layer": 1, "t": 0, "active": true}
//	  ],
//	  "edges": [
//	    {"from": {"layer": 0, "t": -1}, "to": {"layer": 1, "t": 0}}
//	  ]
//	}
//
// The params object is optional; a hand-written graph file may omit it.
// Inactive grid nodes are preserved, so a round trip reproduces the file
// byte-for-byte modulo key ordering.
//
// # Import
//
// [ImportJSON] reads from a file path, [ReadJSON] from any io.Reader. Both
// validate structure on the way in: duplicate node coordinates, edges
// referencing undeclared nodes, edges skipping layers, and edges running
// backward in time are all rejected with the offending node or edge named
// in the error.
//
// # Export
//
// [ExportJSON] writes to a file path, [WriteJSON] to any io.Writer.
package io
