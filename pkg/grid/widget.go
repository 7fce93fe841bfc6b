package grid

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a positioned rectangle in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Widget is the capability contract the grid needs from the elements it
// arranges. Maximum sizes of zero or less are unbounded.
type Widget interface {
	PreferredSize() Size
	MinWidth() int
	MaxWidth() int
	MinHeight() int
	MaxHeight() int
	HorizontalPolicy() Policy
	VerticalPolicy() Policy

	// HeightForWidth returns the height the widget needs at the given
	// width, or zero (or less) when its height does not depend on width.
	HeightForWidth(width int) int

	Visible() bool
	Width() int
	Height() int
	SetWidth(w int)
	SetHeight(h int)
	MoveTo(x, y int)

	// Selectable returns the widget's mutually exclusive selection
	// capability, or nil when it has none.
	Selectable() Selectable
}

// Selectable is a widget taking part in a mutually exclusive selection.
type Selectable interface {
	Selected() bool
	SetSelected(selected bool)
}

// ignorable reports whether w is excluded from space accounting.
func ignorable(w Widget) bool {
	return !w.Visible() && (w.HorizontalPolicy().Has(Ignored) || w.VerticalPolicy().Has(Ignored))
}
