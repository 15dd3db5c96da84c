package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// ShowGrid includes the inactive background positions. When false only
	// the nodes reached by the backward traversal appear.
	ShowGrid bool
	// Palette supplies node fill colors. The zero value falls back to
	// [DefaultPalette].
	Palette Palette
}

// ToDOT converts a generated graph to Graphviz DOT format, letting Graphviz
// do the placement instead of [Build]. Each layer is pinned to its own rank
// and rankdir=BT keeps the input row at the bottom, so the overall shape
// matches the native layout. The resulting string renders with [RenderDOT].
func ToDOT(g *tcn.Graph, opts DOTOptions) string {
	p := opts.Palette
	if p.Input == "" {
		p = DefaultPalette()
	}

	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *tcn.Node) int {
		if a.Layer != b.Layer {
			return a.Layer - b.Layer
		}
		return a.T - b.T
	})

	var buf bytes.Buffer
	buf.WriteString("digraph receptive_field {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=12, fixedsize=true, width=0.5];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	top := g.Layers()
	for _, n := range nodes {
		if !n.Active && !opts.ShowGrid {
			continue
		}
		role := RoleFor(n, top)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=%q];\n",
			nodeID(n.Coord()), strconv.Itoa(n.T), p.Fill(role), fontColor(role))
	}

	buf.WriteString("\n")
	for layer := 0; layer <= top; layer++ {
		var ids []string
		for _, n := range nodes {
			if n.Layer != layer || (!n.Active && !opts.ShowGrid) {
				continue
			}
			ids = append(ids, fmt.Sprintf("%q", nodeID(n.Coord())))
		}
		if len(ids) > 0 {
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c tcn.Coord) string {
	return fmt.Sprintf("%d/%d", c.Layer, c.T)
}

func fontColor(role Role) string {
	if role == RoleInactive {
		return "#5a5f6a"
	}
	return "#ffffff"
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// The bytes are ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return fixViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fixViewBox rewrites the Graphviz svg tag so width and height use pixel
// units matching the viewBox, which keeps rsvg-convert scaling predictable.
func fixViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
