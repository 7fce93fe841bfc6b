package grid

import "slices"

// SelectionGroup keeps at most one of its members selected.
type SelectionGroup struct {
	members  []Selectable
	selected Selectable
}

// NewSelectionGroup returns an empty group.
func NewSelectionGroup() *SelectionGroup {
	return &SelectionGroup{}
}

// Add registers s with the group. A member that is already selected
// becomes the group's selection and deselects the previous one.
func (g *SelectionGroup) Add(s Selectable) {
	if s == nil || slices.Contains(g.members, s) {
		return
	}
	g.members = append(g.members, s)
	if s.Selected() {
		g.Select(s)
	}
}

// Remove unregisters s.
func (g *SelectionGroup) Remove(s Selectable) {
	g.members = slices.DeleteFunc(g.members, func(m Selectable) bool { return m == s })
	if g.selected == s {
		g.selected = nil
	}
}

// Select selects s and deselects every other member. Selecting a widget
// that is not a member is ignored.
func (g *SelectionGroup) Select(s Selectable) {
	if !slices.Contains(g.members, s) {
		return
	}
	for _, m := range g.members {
		if m != s && m.Selected() {
			m.SetSelected(false)
		}
	}
	if !s.Selected() {
		s.SetSelected(true)
	}
	g.selected = s
}

// Selected returns the selected member or nil.
func (g *SelectionGroup) Selected() Selectable { return g.selected }

// Len returns the number of members.
func (g *SelectionGroup) Len() int { return len(g.members) }

// Reset removes every member.
func (g *SelectionGroup) Reset() {
	g.members = nil
	g.selected = nil
}
