package widget

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/gridtile/pkg/grid"
)

// indicatorSize is the side of the radio indicator, gap the space between
// indicator and text.
const (
	indicatorSize = 16
	indicatorGap  = 4
)

// RadioButton is a labelled option. Radio buttons placed in the same grid
// share its selection group, so at most one of them is selected.
type RadioButton struct {
	Base
	text     string
	selected bool
}

// NewRadioButton returns an unselected radio button that may grow
// horizontally and keeps its height.
func NewRadioButton(id, text string) *RadioButton {
	return &RadioButton{Base: newBase(id, grid.Minimum, grid.Fixed), text: text}
}

// Kind returns KindRadio.
func (r *RadioButton) Kind() string { return KindRadio }

// Text returns the button caption.
func (r *RadioButton) Text() string { return r.text }

// PreferredSize returns the explicit preferred size if one was set, and
// otherwise the indicator plus the caption on a single line.
func (r *RadioButton) PreferredSize() grid.Size {
	if r.pref != (grid.Size{}) {
		return r.pref
	}
	return grid.Size{
		Width:  indicatorSize + indicatorGap + runewidth.StringWidth(r.text)*CharWidth,
		Height: max(indicatorSize, LineHeight),
	}
}

// Selected reports whether the button is checked.
func (r *RadioButton) Selected() bool { return r.selected }

// SetSelected sets the checked flag only. The selection group calls it to
// deselect members; to select a placed button and clear its siblings use
// the grid's SelectionGroup().Select.
func (r *RadioButton) SetSelected(state bool) { r.selected = state }

// Selectable exposes the button to the grid's selection group.
func (r *RadioButton) Selectable() grid.Selectable { return r }
