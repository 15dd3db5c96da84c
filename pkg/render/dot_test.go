package render

import (
	"strings"
	"testing"
)

func TestToDOT_ShowsActiveNodesOnly(t *testing.T) {
	g := smallGraph()

	dot := ToDOT(g, DOTOptions{})
	for _, id := range []string{`"1/0"`, `"0/0"`, `"0/-1"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("active node %s missing", id)
		}
	}
	if strings.Contains(dot, `"1/-1"`) {
		t.Error("inactive node rendered without ShowGrid")
	}

	withGrid := ToDOT(g, DOTOptions{ShowGrid: true})
	if !strings.Contains(withGrid, `"1/-1"`) {
		t.Error("inactive node missing with ShowGrid")
	}
}

func TestToDOT_Structure(t *testing.T) {
	dot := ToDOT(smallGraph(), DOTOptions{})

	if !strings.HasPrefix(dot, "digraph receptive_field {\n") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, "rankdir=BT;") {
		t.Error("missing rankdir, input row would not sit at the bottom")
	}
	if got := strings.Count(dot, "rank=same"); got != 2 {
		t.Errorf("rank groups = %d, want 2", got)
	}

	for _, edge := range []string{`"0/0" -> "1/0";`, `"0/-1" -> "1/0";`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("edge %s missing", edge)
		}
	}
}

func TestToDOT_RoleColors(t *testing.T) {
	dot := ToDOT(smallGraph(), DOTOptions{ShowGrid: true})
	p := DefaultPalette()

	for _, c := range []string{p.Output, p.Input, p.Inactive} {
		if !strings.Contains(dot, `fillcolor="`+c+`"`) {
			t.Errorf("fill color %s missing", c)
		}
	}
}

func TestFixViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="144pt" height="216pt" viewBox="0.00 0.00 144.00 216.00" xmlns="http://www.w3.org/2000/svg">` + "\n" +
		`<g></g></svg>`)

	out := string(fixViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 144.00 216.00" width="144" height="216">`
	if !strings.Contains(out, want) {
		t.Errorf("svg tag not normalized:\n%s", out)
	}
	if strings.Contains(out, "pt\"") {
		t.Error("point units survived normalization")
	}
}

func TestFixViewBox_NoViewBoxPassesThrough(t *testing.T) {
	in := []byte(`<svg width="10" height="10"></svg>`)
	if got := string(fixViewBox(in)); got != string(in) {
		t.Errorf("fixViewBox() rewrote svg without viewBox: %s", got)
	}
}
