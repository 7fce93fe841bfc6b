package scene

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/grid"
	"github.com/matzehuels/gridtile/pkg/widget"
)

// Default container size for scenes that do not declare one.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Instance is a scene turned into a live grid.
type Instance struct {
	Scene *Scene
	Grid  *grid.Grid

	// Widgets in declaration order, placed or not.
	Widgets []widget.Widget

	// Rejected lists the widgets the grid refused to place.
	Rejected []Rejection
}

// Rejection records a placement the grid refused.
type Rejection struct {
	ID      string      `json:"id"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Lookup returns the widget with the given id.
func (in *Instance) Lookup(id string) (widget.Widget, bool) {
	for _, w := range in.Widgets {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// Build creates the grid for s and places its widgets in declaration
// order. Placement errors do not fail the build; they are logged by the
// grid and listed in Instance.Rejected. A nil logger discards output.
func Build(s *Scene, logger *log.Logger) (*Instance, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	width, height := s.Width, s.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	opts := []grid.Option{
		grid.WithLogger(logger.WithPrefix("grid")),
		grid.WithSize(width, height),
	}
	if s.Spacing != nil {
		opts = append(opts, grid.WithSpacing(*s.Spacing))
	}

	g := grid.New(s.Rows, s.Columns, opts...)
	for _, c := range s.ColumnWidths {
		g.SetColumnWidth(c.Index, c.Width)
	}
	for _, r := range s.RowHeights {
		g.SetRowHeight(r.Index, r.Height)
	}

	in := &Instance{Scene: s, Grid: g}
	ids := newIDSet(s.Widgets)
	for i, spec := range s.Widgets {
		id := spec.ID
		if id == "" {
			id = ids.generate(spec.Kind, i)
		}
		w := newWidget(id, spec)
		in.Widgets = append(in.Widgets, w)

		var err error
		if spec.Placed() {
			err = g.AddAt(w, *spec.Row, *spec.Col, spec.RowSpan, spec.ColSpan)
		} else {
			err = g.Add(w)
		}
		if err != nil {
			in.Rejected = append(in.Rejected, Rejection{
				ID:      id,
				Code:    errors.GetCode(err),
				Message: errors.UserMessage(err),
			})
		}
	}
	return in, nil
}

// newWidget creates the widget for a validated spec.
func newWidget(id string, spec WidgetSpec) widget.Widget {
	var (
		w    widget.Widget
		base *widget.Base
	)
	switch spec.Kind {
	case widget.KindLabel:
		l := widget.NewLabel(id, spec.Text)
		w, base = l, &l.Base
	case widget.KindRadio:
		r := widget.NewRadioButton(id, spec.Text)
		r.SetSelected(spec.Selected)
		w, base = r, &r.Base
	default:
		b := widget.NewBox(id, 0, 0)
		w, base = b, &b.Base
	}

	if spec.Width > 0 || spec.Height > 0 {
		base.SetPreferredSize(spec.Width, spec.Height)
	}
	base.SetMinimumSize(spec.MinWidth, spec.MinHeight)
	base.SetMaximumSize(spec.MaxWidth, spec.MaxHeight)

	h, v := w.HorizontalPolicy(), w.VerticalPolicy()
	if spec.HPolicy != "" {
		h, _ = grid.ParsePolicy(spec.HPolicy)
	}
	if spec.VPolicy != "" {
		v, _ = grid.ParsePolicy(spec.VPolicy)
	}
	base.SetPolicy(h, v)
	base.SetVisible(!spec.Hidden)
	return w
}

// idSet hands out identifiers for anonymous widgets that do not collide
// with declared ones.
type idSet map[string]bool

func newIDSet(specs []WidgetSpec) idSet {
	ids := make(idSet, len(specs))
	for _, s := range specs {
		if s.ID != "" {
			ids[s.ID] = true
		}
	}
	return ids
}

// generate returns "<kind><n>", n being the 1-based declaration index,
// with a suffix when that name is taken.
func (ids idSet) generate(kind string, index int) string {
	id := fmt.Sprintf("%s%d", kind, index+1)
	for n := 2; ids[id]; n++ {
		id = fmt.Sprintf("%s%d_%d", kind, index+1, n)
	}
	ids[id] = true
	return id
}
