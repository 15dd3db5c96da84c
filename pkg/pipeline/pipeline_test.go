package pipeline

import (
	"strings"
	"testing"

	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateView(t *testing.T) {
	tests := []struct {
		view    string
		wantErr bool
	}{
		{"grid", false},
		{"graphviz", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateView(tt.view)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateView(%q) error = %v, wantErr %v", tt.view, err, tt.wantErr)
		}
	}
}

func TestSetGenerateDefaults(t *testing.T) {
	opts := Options{}
	opts.SetGenerateDefaults()

	def := tcn.DefaultParams()
	if opts.Kernel != def.Kernel {
		t.Errorf("Kernel should be %d, got %d", def.Kernel, opts.Kernel)
	}
	if opts.Growth != def.Growth {
		t.Errorf("Growth should be %v, got %v", def.Growth, opts.Growth)
	}
	if opts.Blocks != def.Blocks {
		t.Errorf("Blocks should be %d, got %d", def.Blocks, opts.Blocks)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.View != ViewGrid {
		t.Errorf("View should be %s, got %s", ViewGrid, opts.View)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if err := opts.Palette.Validate(); err != nil {
		t.Errorf("default palette should validate: %v", err)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should default cleanly: %v", err)
	}

	if opts.Kernel == 0 || opts.Width == 0 || len(opts.Formats) == 0 {
		t.Error("defaults not applied")
	}
}

func TestOptionsValidateAndSetDefaults_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"kernel too large", Options{Kernel: 99}, "kernel"},
		{"growth out of range", Options{Growth: 7.5}, "growth"},
		{"blocks out of range", Options{Blocks: 40}, "block"},
		{"unknown view", Options{View: "isometric"}, "view"},
		{"unknown format", Options{Formats: []string{"bmp"}}, "format"},
		{"broken palette", Options{Palette: brokenPalette()}, "palette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("ValidateAndSetDefaults() succeeded, want error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Kernel: 5, Formats: []string{"dot"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalKernel := opts.Kernel
	originalView := opts.View
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Kernel != originalKernel {
		t.Error("Kernel changed on second call")
	}
	if opts.View != originalView {
		t.Error("View changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsIsGraphviz(t *testing.T) {
	opts := Options{}
	if opts.IsGraphviz() {
		t.Error("Empty view should not be graphviz")
	}

	opts.View = ViewGraphviz
	if !opts.IsGraphviz() {
		t.Error("graphviz view should be graphviz")
	}
}

// brokenPalette keeps Input set so render defaults do not replace it.
func brokenPalette() render.Palette {
	p := render.DefaultPalette()
	p.Edge = "oops"
	return p
}
