package grid

// Cell binds a widget to the rectangle of slots it spans. Every slot in
// [Row..LastRow] x [Col..LastCol] refers to the same record; the slot at
// (LastRow, LastCol) owns it.
type Cell struct {
	Widget  Widget
	Row     int
	Col     int
	LastRow int
	LastCol int

	// Owner is the index of the owning slot.
	Owner int

	// Requested size and width dependent height, refreshed on every tiling
	// pass.
	Width          int
	Height         int
	HeightForWidth int
	Ignored        bool

	measured bool
}

// Spanning reports whether the cell covers more than one slot.
func (c *Cell) Spanning() bool {
	return c.Row != c.LastRow || c.Col != c.LastCol
}

// RowSpan returns the number of rows the cell covers.
func (c *Cell) RowSpan() int { return c.LastRow - c.Row + 1 }

// ColSpan returns the number of columns the cell covers.
func (c *Cell) ColSpan() int { return c.LastCol - c.Col + 1 }

// reset clears cached measurements before a tiling pass.
func (c *Cell) reset() {
	c.measured = false
	c.Width, c.Height, c.HeightForWidth = 0, 0, 0
	c.Ignored = ignorable(c.Widget)
}

// measure caches the widget's preferred size once per pass.
func (c *Cell) measure() {
	if c.measured {
		return
	}
	s := c.Widget.PreferredSize()
	c.Width, c.Height = s.Width, s.Height
	c.measured = true
}
