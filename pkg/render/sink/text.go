package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/gridtile/pkg/render"
)

// Default pixel size of one character cell.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// continuation marks the second cell of a wide rune.
const continuation = -1

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	cellW, cellH int
}

// WithCellSize sets the pixel size of one character cell.
func WithCellSize(width, height int) TextOption {
	return func(r *textRenderer) {
		if width > 0 {
			r.cellW = width
		}
		if height > 0 {
			r.cellH = height
		}
	}
}

// RenderText draws every placed widget as a box of ASCII border characters
// with its id inside, followed by a list of rejected widgets.
func RenderText(l render.Layout, opts ...TextOption) []byte {
	r := textRenderer{cellW: DefaultCellWidth, cellH: DefaultCellHeight}
	for _, opt := range opts {
		opt(&r)
	}

	c := newCanvas(l.Width/r.cellW+1, l.Height/r.cellH+1)
	for _, p := range l.Placements {
		if !p.Drawn() {
			continue
		}
		x0, y0 := p.X/r.cellW, p.Y/r.cellH
		x1, y1 := (p.X+p.Width-1)/r.cellW, (p.Y+p.Height-1)/r.cellH
		c.box(x0, y0, x1, y1)

		label := p.ID
		if p.Kind == "radio" {
			mark := "( )"
			if p.Selected {
				mark = "(*)"
			}
			label = mark + " " + label
		}
		inner := x1 - x0 - 1
		row := y0
		if y1-y0 >= 2 {
			row = y0 + (y1-y0)/2
		}
		if inner > 0 {
			c.text(x0+1, row, runewidth.Truncate(label, inner, "~"))
		}
	}

	var buf bytes.Buffer
	if l.Scene != "" {
		fmt.Fprintf(&buf, "%s (%dx%d)\n", l.Scene, l.Width, l.Height)
	}
	c.writeTo(&buf)
	for _, rej := range l.Rejected {
		fmt.Fprintf(&buf, "rejected %s: %s\n", rej.ID, rej.Code)
	}
	return buf.Bytes()
}

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) box(x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		c.set(x, y0, '-')
		c.set(x, y1, '-')
	}
	for y := y0; y <= y1; y++ {
		c.set(x0, y, '|')
		c.set(x1, y, '|')
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		c.set(p[0], p[1], '+')
	}
}

func (c *canvas) text(x, y int, s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, r)
		for i := 1; i < w; i++ {
			c.set(x+i, y, continuation)
		}
		x += w
	}
}

func (c *canvas) writeTo(buf *bytes.Buffer) {
	for _, row := range c.cells {
		var line strings.Builder
		for _, r := range row {
			if r != continuation {
				line.WriteRune(r)
			}
		}
		buf.WriteString(strings.TrimRight(line.String(), " "))
		buf.WriteByte('\n')
	}
}
