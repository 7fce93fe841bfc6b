// Package widget provides the concrete widgets a scene can place on a
// [grid.Grid]: plain boxes, wrapping text labels and radio buttons.
//
// All widgets embed [Base], which stores size hints, policies, visibility
// and the geometry assigned by the grid. Sizes are in pixels; text is
// measured in terminal cells scaled by [CharWidth] and [LineHeight].
package widget

import "github.com/matzehuels/gridtile/pkg/grid"

// Kinds of widget a scene can declare.
const (
	KindBox   = "box"
	KindLabel = "label"
	KindRadio = "radio"
)

// Widget is a grid.Widget with an identity, as kept by scenes and sinks.
type Widget interface {
	grid.Widget
	ID() string
	Kind() string
	Geometry() grid.Rect
}

// Base implements the geometry and constraint parts of grid.Widget.
type Base struct {
	id string

	pref       grid.Size
	minW, maxW int
	minH, maxH int

	hPolicy, vPolicy grid.Policy
	hidden           bool

	rect grid.Rect
}

func newBase(id string, h, v grid.Policy) Base {
	return Base{id: id, hPolicy: h, vPolicy: v}
}

// ID returns the widget's identifier.
func (b *Base) ID() string { return b.id }

// PreferredSize returns the size set with SetPreferredSize.
func (b *Base) PreferredSize() grid.Size { return b.pref }

// SetPreferredSize sets the requested size.
func (b *Base) SetPreferredSize(width, height int) {
	b.pref = grid.Size{Width: width, Height: height}
}

// SetMinimumSize sets the minimum width and height. Zero means none.
func (b *Base) SetMinimumSize(width, height int) { b.minW, b.minH = width, height }

// SetMaximumSize sets the maximum width and height. Zero or less means
// unbounded.
func (b *Base) SetMaximumSize(width, height int) { b.maxW, b.maxH = width, height }

func (b *Base) MinWidth() int  { return b.minW }
func (b *Base) MaxWidth() int  { return b.maxW }
func (b *Base) MinHeight() int { return b.minH }
func (b *Base) MaxHeight() int { return b.maxH }

// SetPolicy sets the horizontal and vertical size policies.
func (b *Base) SetPolicy(h, v grid.Policy) { b.hPolicy, b.vPolicy = h, v }

func (b *Base) HorizontalPolicy() grid.Policy { return b.hPolicy }
func (b *Base) VerticalPolicy() grid.Policy   { return b.vPolicy }

// HeightForWidth reports no dependency between width and height.
func (b *Base) HeightForWidth(int) int { return 0 }

func (b *Base) Visible() bool           { return !b.hidden }
func (b *Base) SetVisible(visible bool) { b.hidden = !visible }

func (b *Base) Width() int      { return b.rect.Width }
func (b *Base) Height() int     { return b.rect.Height }
func (b *Base) SetWidth(w int)  { b.rect.Width = w }
func (b *Base) SetHeight(h int) { b.rect.Height = h }
func (b *Base) MoveTo(x, y int) { b.rect.X, b.rect.Y = x, y }

// Geometry returns the rectangle assigned by the last tiling pass.
func (b *Base) Geometry() grid.Rect { return b.rect }

// Selectable returns nil; only radio buttons take part in selection.
func (b *Base) Selectable() grid.Selectable { return nil }

// Box is an empty rectangle, the placeholder widget of scenes.
type Box struct {
	Base
}

// NewBox returns a box of the given preferred size with Preferred
// policies on both axes.
func NewBox(id string, width, height int) *Box {
	b := &Box{Base: newBase(id, grid.Preferred, grid.Preferred)}
	b.SetPreferredSize(width, height)
	return b
}

// Kind returns KindBox.
func (b *Box) Kind() string { return KindBox }

var (
	_ Widget = (*Box)(nil)
	_ Widget = (*Label)(nil)
	_ Widget = (*RadioButton)(nil)
)
