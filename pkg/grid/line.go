package grid

import "math"

// Unbounded is the maximum of a line without an upper size limit.
const Unbounded = math.MaxInt32

// Line is the arrangement state of a single row or column.
//
// Value is mutated while solving and holds the resolved size afterwards.
// Min <= Value <= Max is a target only: conflicting fixed requirements can
// leave Value outside the range.
type Line struct {
	Value  int    `json:"value"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Pos    int    `json:"pos"`
	Policy Policy `json:"policy"`
	Active bool   `json:"active"`
}

// NewLine returns an inactive, unbounded, fixed line of size zero.
func NewLine() Line {
	return Line{Max: Unbounded}
}

// fixedZero reports whether the line is fixed without a minimum; such lines
// keep the value they were given.
func (l Line) fixedZero() bool {
	return l.Policy == Fixed && l.Min == 0
}

// require folds a widget's requirement along one axis into the line.
// used is the space already provided by earlier lines of a spanning cell.
// It returns true when the line became expanding.
func (l *Line) require(req, used, minSize, maxSize int, p Policy) bool {
	if l.Min < minSize-used {
		l.Min = minSize - used
	}
	if maxSize > 0 && l.Max > maxSize-used {
		l.Max = maxSize - used
	}

	if p == Fixed {
		if req > l.Value {
			l.Value = req
		}
	} else {
		if !p.Has(ShrinkAllowed) && l.Value < req {
			l.Value = req
		}
		if !l.Policy.Has(GrowAllowed) && p.Has(GrowAllowed) {
			l.Policy |= GrowAllowed
		} else if p.Has(ShrinkAllowed) && l.Value < req {
			l.Policy |= ShrinkAllowed
			l.Value = req
		}
	}

	if p.Has(Expand) {
		expanded := !l.Policy.Has(Expand)
		l.Policy |= Expand
		return expanded
	}
	return false
}

// spanUsed returns the space lines[from:to] guarantee to a cell spanning
// them: lines with a minimum contribute it, lines that cannot shrink
// contribute their value.
func spanUsed(lines []Line, from, to, spacing int) int {
	used := 0
	for i := from; i < to; i++ {
		switch {
		case lines[i].Min != 0:
			used += lines[i].Min + spacing
		case !lines[i].Policy.Has(ShrinkAllowed):
			used += lines[i].Value + spacing
		}
	}
	return used
}

// spanExtent returns the resolved size of lines[from..to] including the
// spacing between them.
func spanExtent(lines []Line, from, to, spacing int) int {
	extent := 0
	for i := from; i < to; i++ {
		extent += lines[i].Value + spacing
	}
	return extent + lines[to].Value
}
