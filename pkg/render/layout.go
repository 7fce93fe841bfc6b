package render

import (
	"encoding/json"

	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/grid"
	"github.com/matzehuels/gridtile/pkg/scene"
	"github.com/matzehuels/gridtile/pkg/widget"
)

// Layout is the result of tiling a scene.
type Layout struct {
	Scene   string `json:"scene,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Spacing int    `json:"spacing"`

	Columns    []Line            `json:"columns"`
	Rows       []Line            `json:"rows"`
	Placements []Placement       `json:"placements"`
	Rejected   []scene.Rejection `json:"rejected,omitempty"`
}

// Line is a resolved row or column.
type Line struct {
	Index  int         `json:"index"`
	Pos    int         `json:"pos"`
	Value  int         `json:"value"`
	Min    int         `json:"min"`
	Max    int         `json:"max,omitempty"` // 0 when unbounded
	Policy grid.Policy `json:"policy"`
	Active bool        `json:"active"`
}

// End returns the first position past the line.
func (l Line) End() int { return l.Pos + l.Value }

// Placement is a widget and the rectangle it was given.
type Placement struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	LastRow int    `json:"last_row"`
	LastCol int    `json:"last_col"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Ignored widgets keep whatever geometry they had; they took no space.
	Ignored bool `json:"ignored,omitempty"`
	Hidden  bool `json:"hidden,omitempty"`

	Text     string   `json:"text,omitempty"`
	Lines    []string `json:"lines,omitempty"`
	Selected bool     `json:"selected,omitempty"`
}

// Drawn reports whether the placement occupies visible space.
func (p Placement) Drawn() bool {
	return !p.Ignored && !p.Hidden && p.Width > 0 && p.Height > 0
}

// Placement returns the placement of the widget with the given id.
func (l Layout) Placement(id string) (Placement, bool) {
	for _, p := range l.Placements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Snapshot records the current state of a tiled instance. Widgets the grid
// rejected are listed in Rejected instead of Placements.
func Snapshot(in *scene.Instance) Layout {
	g := in.Grid
	size := g.Size()
	l := Layout{
		Scene:    in.Scene.Name,
		Width:    size.Width,
		Height:   size.Height,
		Spacing:  g.Spacing(),
		Columns:  snapshotLines(g.ColumnLines()),
		Rows:     snapshotLines(g.RowLines()),
		Rejected: in.Rejected,
	}

	cells := make(map[grid.Widget]*grid.Cell, len(in.Widgets))
	for _, c := range g.Cells() {
		cells[c.Widget] = c
	}

	l.Placements = make([]Placement, 0, len(cells))
	for _, w := range in.Widgets {
		c, ok := cells[w]
		if !ok {
			continue
		}
		r := w.Geometry()
		p := Placement{
			ID:      w.ID(),
			Kind:    w.Kind(),
			Row:     c.Row,
			Col:     c.Col,
			LastRow: c.LastRow,
			LastCol: c.LastCol,
			X:       r.X,
			Y:       r.Y,
			Width:   r.Width,
			Height:  r.Height,
			Ignored: c.Ignored,
			Hidden:  !w.Visible(),
		}
		switch v := w.(type) {
		case *widget.Label:
			p.Text = v.Text()
			p.Lines = v.Lines()
		case *widget.RadioButton:
			p.Text = v.Text()
			p.Selected = v.Selected()
		}
		l.Placements = append(l.Placements, p)
	}
	return l
}

func snapshotLines(lines []grid.Line) []Line {
	out := make([]Line, len(lines))
	for i, ln := range lines {
		out[i] = Line{
			Index:  i,
			Pos:    ln.Pos,
			Value:  ln.Value,
			Min:    ln.Min,
			Policy: ln.Policy,
			Active: ln.Active,
		}
		if ln.Max != grid.Unbounded {
			out[i].Max = ln.Max
		}
	}
	return out
}

// ParseLayout decodes a layout written by the JSON sink.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}
