package grid

import (
	"io"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtile/pkg/errors"
)

// DefaultSpacing is the gap between adjacent lines in pixels.
const DefaultSpacing = 5

// empty marks a slot without a cell record.
const empty = -1

// Grid arranges widgets on a fixed number of rows and columns.
//
// Slots hold indexes into the cell table; a spanning cell is referenced by
// every slot it covers. A Grid is not safe for concurrent use: placement and
// tiling must happen on the goroutine that owns the layout.
type Grid struct {
	rows, cols int
	slots      []int
	cells      []*Cell

	colWidths  []int
	rowHeights []int

	spacing       int
	width, height int

	columnLines []Line
	rowLines    []Line

	modified bool
	group    *SelectionGroup
	logger   *log.Logger
}

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the logger placement errors and tiling traces go to.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSpacing sets the gap between lines.
func WithSpacing(spacing int) Option {
	return func(g *Grid) { g.spacing = max(spacing, 0) }
}

// WithSize sets the size of the area the grid arranges widgets in.
func WithSize(width, height int) Option {
	return func(g *Grid) { g.width, g.height = width, height }
}

// WithSelectionGroup shares a selection group between grids.
func WithSelectionGroup(sg *SelectionGroup) Option {
	return func(g *Grid) {
		if sg != nil {
			g.group = sg
		}
	}
}

// New returns an empty grid of rows x cols slots. The dimensions cannot
// change afterwards.
func New(rows, cols int, opts ...Option) *Grid {
	rows, cols = max(rows, 0), max(cols, 0)
	g := &Grid{
		rows:       rows,
		cols:       cols,
		slots:      make([]int, rows*cols),
		colWidths:  make([]int, cols),
		rowHeights: make([]int, rows),
		spacing:    DefaultSpacing,
		group:      NewSelectionGroup(),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for i := range g.slots {
		g.slots[i] = empty
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.cols }

// Spacing returns the gap between lines.
func (g *Grid) Spacing() int { return g.spacing }

// SetSpacing changes the gap between lines.
func (g *Grid) SetSpacing(spacing int) {
	g.spacing = max(spacing, 0)
	g.modified = true
}

// Size returns the size of the arranged area.
func (g *Grid) Size() Size { return Size{Width: g.width, Height: g.height} }

// SetSize resizes the arranged area.
func (g *Grid) SetSize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height
	g.modified = true
}

// HeightForWidth reports that a grid's height does not depend on its width.
func (g *Grid) HeightForWidth(int) int { return -1 }

// ColumnWidth returns the user set width of column, or 0 when unset.
func (g *Grid) ColumnWidth(column int) int {
	if column < 0 || column >= g.cols {
		return 0
	}
	return g.colWidths[column]
}

// SetColumnWidth fixes the width of column, overriding what its cells
// require. A width of 0 removes the override.
func (g *Grid) SetColumnWidth(column, width int) {
	if column < 0 || column >= g.cols {
		return
	}
	g.colWidths[column] = max(width, 0)
	g.modified = true
}

// RowHeight returns the user set height of row, or 0 when unset.
func (g *Grid) RowHeight(row int) int {
	if row < 0 || row >= g.rows {
		return 0
	}
	return g.rowHeights[row]
}

// SetRowHeight fixes the height of row. A height of 0 removes the override.
func (g *Grid) SetRowHeight(row, height int) {
	if row < 0 || row >= g.rows {
		return
	}
	g.rowHeights[row] = max(height, 0)
	g.modified = true
}

// SelectionGroup returns the group selectable widgets are registered with.
func (g *Grid) SelectionGroup() *SelectionGroup { return g.group }

// Dirty reports whether the grid changed since the last tiling pass.
func (g *Grid) Dirty() bool { return g.modified }

// Invalidate forces the next Tile call to run.
func (g *Grid) Invalidate() { g.modified = true }

// Add places w unspanned in the first empty slot in row-major order.
// When the grid is full the placement is logged and skipped.
func (g *Grid) Add(w Widget) error {
	if isNil(w) {
		return g.reject(errors.New(errors.ErrCodeInvalidInput, "widget is nil"))
	}
	for i, s := range g.slots {
		if s == empty {
			r, c := i/g.cols, i%g.cols
			g.install(w, r, c, r, c)
			return nil
		}
	}
	return g.reject(errors.New(errors.ErrCodeGridFull, "no more space in this grid"))
}

// AddAt places w with its top-left corner at (row, col), spanning rowSpan
// rows and colSpan columns. A span of -1 extends to the last row or column;
// spans past the grid edge are clamped. Placement outside the grid or over
// an occupied slot is logged and skipped.
func (g *Grid) AddAt(w Widget, row, col, rowSpan, colSpan int) error {
	if isNil(w) {
		return g.reject(errors.New(errors.ErrCodeInvalidInput, "widget is nil"))
	}
	if row < 0 || row >= g.rows {
		return g.reject(errors.New(errors.ErrCodeOutOfBounds, "row index %d is outside grid", row), "row", row)
	}
	if col < 0 || col >= g.cols {
		return g.reject(errors.New(errors.ErrCodeOutOfBounds, "column index %d is outside grid", col), "col", col)
	}

	lastRow := spanEnd(row, rowSpan, g.rows)
	lastCol := spanEnd(col, colSpan, g.cols)

	for r := row; r <= lastRow; r++ {
		for c := col; c <= lastCol; c++ {
			if g.slots[g.index(r, c)] != empty {
				return g.reject(errors.New(errors.ErrCodeSlotOccupied, "cell [%d, %d] is occupied", r, c), "row", r, "col", c)
			}
		}
	}

	g.install(w, row, col, lastRow, lastCol)
	return nil
}

// spanEnd returns the last line index a span starting at start covers.
func spanEnd(start, span, count int) int {
	end := start
	switch {
	case span == -1:
		end = count - 1
	case span > 1:
		end = start + span - 1
	}
	return min(end, count-1)
}

// isNil also catches nil pointers wrapped in the interface.
func isNil(w Widget) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func (g *Grid) index(row, col int) int { return row*g.cols + col }

func (g *Grid) install(w Widget, row, col, lastRow, lastCol int) {
	idx := len(g.cells)
	g.cells = append(g.cells, &Cell{
		Widget:  w,
		Row:     row,
		Col:     col,
		LastRow: lastRow,
		LastCol: lastCol,
		Owner:   g.index(lastRow, lastCol),
	})
	for r := row; r <= lastRow; r++ {
		for c := col; c <= lastCol; c++ {
			g.slots[g.index(r, c)] = idx
		}
	}
	if s := w.Selectable(); s != nil {
		g.group.Add(s)
	}
	g.modified = true
	g.logger.Debug("widget placed", "row", row, "col", col, "lastRow", lastRow, "lastCol", lastCol)
}

func (g *Grid) reject(err *errors.Error, keyvals ...any) error {
	g.logger.Error(err.Message, append([]any{"code", err.Code}, keyvals...)...)
	return err
}

// CellAt returns the cell covering (row, col), or nil when the slot is
// empty or outside the grid. The record stays valid until Clear.
func (g *Grid) CellAt(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return g.cell(g.index(row, col))
}

func (g *Grid) cell(slot int) *Cell {
	if idx := g.slots[slot]; idx != empty {
		return g.cells[idx]
	}
	return nil
}

// Cells returns every cell record once, in the row-major order of their
// owning slots.
func (g *Grid) Cells() []*Cell {
	var out []*Cell
	for i := range g.slots {
		if c := g.cell(i); c != nil && c.Owner == i {
			out = append(out, c)
		}
	}
	return out
}

// Occupied returns, for each slot in row-major order, whether a cell covers it.
func (g *Grid) Occupied() []bool {
	out := make([]bool, len(g.slots))
	for i, s := range g.slots {
		out[i] = s != empty
	}
	return out
}

// ColumnLines returns a copy of the column lines resolved by the last
// tiling pass.
func (g *Grid) ColumnLines() []Line { return append([]Line(nil), g.columnLines...) }

// RowLines returns a copy of the row lines resolved by the last tiling pass.
func (g *Grid) RowLines() []Line { return append([]Line(nil), g.rowLines...) }

// Clear releases every cell record, once per owning slot, and empties the
// grid. Selectable widgets leave the selection group.
func (g *Grid) Clear() {
	for i := range g.slots {
		c := g.cell(i)
		if c == nil || c.Owner != i {
			continue
		}
		if s := c.Widget.Selectable(); s != nil {
			g.group.Remove(s)
		}
	}
	for i := range g.slots {
		g.slots[i] = empty
	}
	g.cells = nil
	g.columnLines, g.rowLines = nil, nil
	g.modified = true
}
