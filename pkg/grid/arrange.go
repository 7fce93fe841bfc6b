package grid

// Arrange resolves the final Value and Pos of every active line sharing
// available pixels along one axis, spacing pixels apart.
//
// active is the number of active lines and expanding the number of lines
// carrying the Expand flag. The solver repeatedly settles lines that cannot
// take the average share and recomputes the average over the lines that
// remain. The settling stages run in a fixed order:
//
//  1. fixed lines without a minimum keep their value
//  2. non-expanding lines whose maximum is below the average take the maximum
//  3. lines whose minimum is above the average take the minimum
//  4. lines above the average that cannot shrink keep their value
//  5. lines below the average that cannot grow keep their value
//
// Expanding lines then receive the space the remaining lines leave unused.
// The integer division remainder goes in full to the first line eligible to
// take extra space. Existing layouts depend on both the stage order and this
// tie-break.
func Arrange(lines []Line, available, spacing, active, expanding int) {
	if active <= 0 {
		return
	}

	a := arrangement{lines: lines}
	a.available = available - (active-1)*spacing
	a.average = a.available / active
	for i := range lines {
		if lines[i].Active {
			a.working = append(a.working, i)
		}
	}

	a.settle(func(l Line, _ int) bool { return l.fixedZero() }, lineValue)
	a.settle(func(l Line, avg int) bool { return !l.Policy.Has(Expand) && l.Max < avg }, lineMax)
	a.settle(func(l Line, avg int) bool { return l.Min > avg }, lineMin)
	a.settle(func(l Line, avg int) bool { return l.Value > avg && !l.Policy.Has(ShrinkAllowed) }, lineValue)
	a.settle(func(l Line, avg int) bool { return l.Value < avg && !l.Policy.Has(GrowAllowed) }, lineValue)

	share := 0
	if expanding > 0 {
		share = a.expandSpace() / expanding
	}
	a.assign(spacing, expanding > 0, share)
}

// arrangement is the working state of a single Arrange call. working holds
// the indexes of the lines that are not settled yet, in line order.
type arrangement struct {
	lines     []Line
	working   []int
	available int
	average   int
}

func lineValue(l Line) int { return l.Value }
func lineMax(l Line) int   { return l.Max }
func lineMin(l Line) int   { return l.Min }

// settle removes every working line matching settled (evaluated against the
// average at the start of the stage) and charges consumed(line) for it.
// The average is recomputed only when the stage consumed space.
func (a *arrangement) settle(settled func(Line, int) bool, consumed func(Line) int) {
	used := 0
	kept := a.working[:0]
	for _, i := range a.working {
		l := a.lines[i]
		if settled(l, a.average) {
			used += consumed(l)
			continue
		}
		kept = append(kept, i)
	}
	a.working = kept

	if used != 0 {
		a.available -= used
		if len(a.working) > 0 {
			a.average = a.available / len(a.working)
		}
	}
}

// expandSpace sums the space non-expanding working lines leave below the
// average.
func (a *arrangement) expandSpace() int {
	space := 0
	for _, i := range a.working {
		l := a.lines[i]
		if l.Policy.Has(Expand) {
			continue
		}
		if l.Min > 0 && a.average > l.Min && l.Min > l.Value {
			space += a.average - l.Min
		} else if a.average > l.Value {
			space += a.average - l.Value
		}
	}
	return space
}

// assign sets final values and positions in line order.
func (a *arrangement) assign(spacing int, expanding bool, share int) {
	avg := a.average
	leftover := a.available - avg*len(a.working)
	pos := 0

	for i := range a.lines {
		l := &a.lines[i]
		if !l.Active {
			continue
		}

		switch {
		case l.fixedZero():
		case expanding:
			switch {
			case l.Policy.Has(Expand):
				l.Value = avg + share + leftover
				leftover = 0
			case l.Min > l.Value:
				l.Value = l.Min
			case l.Max < l.Value:
				l.Value = l.Max
			case l.Policy.Has(ShrinkAllowed) && avg < l.Value:
				l.Value = avg
			}
		default:
			switch {
			case l.Min > avg:
				l.Value = l.Min
			case l.Max < avg:
				l.Value = l.Max
			case l.Policy.Has(ShrinkAllowed) && l.Value > avg:
				l.Value = avg
			case l.Policy.Has(GrowAllowed) && l.Value < avg:
				l.Value = avg + leftover
				leftover = 0
			}
		}

		l.Pos = pos
		pos += l.Value + spacing
	}
}
