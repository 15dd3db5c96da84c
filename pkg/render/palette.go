package render

import (
	"fmt"
	"image/color"
	"strconv"
)

// Palette holds the node and edge colors as #rrggbb hex strings, which is
// what both the SVG sink and the config file speak. Raster surfaces call
// [Palette.RGBA] instead.
type Palette struct {
	Input      string
	Hidden     string
	Output     string
	Inactive   string
	Edge       string
	Background string
}

// DefaultPalette returns the stock colors: warm output, green inputs,
// blue hidden layers, and a washed-out gray for the inactive grid.
func DefaultPalette() Palette {
	return Palette{
		Input:      "#2e7d32",
		Hidden:     "#1e88e5",
		Output:     "#e53935",
		Inactive:   "#d6dae2",
		Edge:       "#8a919e",
		Background: "#ffffff",
	}
}

// Fill returns the fill color for a role.
func (p Palette) Fill(r Role) string {
	switch r {
	case RoleInactive:
		return p.Inactive
	case RoleOutput:
		return p.Output
	case RoleInput:
		return p.Input
	default:
		return p.Hidden
	}
}

// RGBA returns the role color decoded for raster drawing. Malformed hex
// decodes to opaque black rather than erroring; the palette is validated
// where it is configured.
func (p Palette) RGBA(r Role) color.RGBA {
	return hexRGBA(p.Fill(r))
}

// EdgeRGBA returns the edge color decoded for raster drawing.
func (p Palette) EdgeRGBA() color.RGBA {
	return hexRGBA(p.Edge)
}

// BackgroundRGBA returns the background color decoded for raster drawing.
func (p Palette) BackgroundRGBA() color.RGBA {
	return hexRGBA(p.Background)
}

// Validate checks that every color parses as #rrggbb.
func (p Palette) Validate() error {
	for _, c := range []string{p.Input, p.Hidden, p.Output, p.Inactive, p.Edge, p.Background} {
		if !validHex(c) {
			return fmt.Errorf("invalid color %q (want #rrggbb)", c)
		}
	}
	return nil
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

func hexRGBA(s string) color.RGBA {
	if !validHex(s) {
		return color.RGBA{A: 0xff}
	}
	v, _ := strconv.ParseUint(s[1:], 16, 32)
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
