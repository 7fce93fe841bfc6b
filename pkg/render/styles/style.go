// Package styles defines how the SVG sink draws widgets.
package styles

import (
	"bytes"

	"github.com/matzehuels/gridtile/pkg/errors"
)

// Style defines the visual appearance of a rendered grid.
type Style interface {
	// RenderDefs writes SVG <defs> content (markers, patterns, CSS).
	RenderDefs(buf *bytes.Buffer)
	// RenderBlock writes the shape of a single widget.
	RenderBlock(buf *bytes.Buffer, b Block)
	// RenderText writes a widget's label text.
	RenderText(buf *bytes.Buffer, b Block)
	// RenderGuide writes a line boundary of the grid.
	RenderGuide(buf *bytes.Buffer, g Guide)
}

// Block contains all data needed to render a single widget.
type Block struct {
	ID         string   // Widget identifier
	Kind       string   // Widget kind (box, label, radio)
	Label      string   // Display text; the id when the widget has none
	Lines      []string // Wrapped text for labels
	X, Y, W, H float64  // Position and dimensions
	CX, CY     float64  // Center coordinates (for text)
	Selected   bool     // Radio state
}

// Guide is the edge of a column (Vertical) or row, drawn across the frame.
type Guide struct {
	Vertical bool
	Pos      float64
	Length   float64
}

// Style names.
const (
	NameSimple    = "simple"
	NameWireframe = "wireframe"
)

// Names lists the available styles.
var Names = []string{NameSimple, NameWireframe}

// ByName returns the style with the given name. The empty name selects
// Simple.
func ByName(name string) (Style, error) {
	switch name {
	case "", NameSimple:
		return Simple{}, nil
	case NameWireframe:
		return Wireframe{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown style %q (must be simple or wireframe)", name)
}
