package scene

import (
	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/grid"
	"github.com/matzehuels/gridtile/pkg/widget"
)

var validKinds = map[string]bool{
	widget.KindBox:   true,
	widget.KindLabel: true,
	widget.KindRadio: true,
}

// Validate checks the scene for declarations that can never be built.
// Placements that merely collide are not errors here: they are rejected,
// and reported, when the scene is built.
func (s *Scene) Validate() error {
	if err := errors.ValidateDimensions(s.Rows, s.Columns); err != nil {
		return err
	}
	if s.Width < 0 || s.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "container size %dx%d is negative", s.Width, s.Height)
	}
	if s.Spacing != nil && *s.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "spacing %d is negative", *s.Spacing)
	}

	for _, c := range s.ColumnWidths {
		if c.Index < 0 || c.Index >= s.Columns {
			return errors.New(errors.ErrCodeInvalidScene, "column %d does not exist (grid has %d columns)", c.Index, s.Columns)
		}
		if c.Width < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "column %d: width %d is negative", c.Index, c.Width)
		}
	}
	for _, r := range s.RowHeights {
		if r.Index < 0 || r.Index >= s.Rows {
			return errors.New(errors.ErrCodeInvalidScene, "row %d does not exist (grid has %d rows)", r.Index, s.Rows)
		}
		if r.Height < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "row %d: height %d is negative", r.Index, r.Height)
		}
	}

	seen := make(map[string]bool, len(s.Widgets))
	for i, w := range s.Widgets {
		if err := w.validate(); err != nil {
			return errors.New(errors.GetCode(err), "widget %d: %s", i+1, errors.UserMessage(err))
		}
		if w.ID == "" {
			continue
		}
		if seen[w.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true
	}
	return nil
}

func (w WidgetSpec) validate() error {
	if !validKinds[w.Kind] {
		return errors.New(errors.ErrCodeInvalidScene, "unknown kind %q (must be box, label or radio)", w.Kind)
	}
	if err := errors.ValidateID(w.ID); err != nil {
		return err
	}
	if (w.Row == nil) != (w.Col == nil) {
		return errors.New(errors.ErrCodeInvalidScene, "row and col must be given together")
	}
	if !w.Placed() && (w.RowSpan != 0 || w.ColSpan != 0) {
		return errors.New(errors.ErrCodeInvalidScene, "spans need an explicit row and col")
	}
	if err := errors.ValidateSpan(w.RowSpan); err != nil {
		return err
	}
	if err := errors.ValidateSpan(w.ColSpan); err != nil {
		return err
	}
	for _, v := range []int{w.Width, w.Height, w.MinWidth, w.MinHeight} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "sizes must not be negative")
		}
	}
	if _, err := grid.ParsePolicy(w.HPolicy); err != nil {
		return err
	}
	if _, err := grid.ParsePolicy(w.VPolicy); err != nil {
		return err
	}
	if w.Selected && w.Kind != widget.KindRadio {
		return errors.New(errors.ErrCodeInvalidScene, "only radio widgets can be selected")
	}
	return nil
}
