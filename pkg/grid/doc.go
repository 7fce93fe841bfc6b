// Package grid arranges widgets on a fixed grid of rows and columns.
//
// # Overview
//
// A [Grid] has a fixed number of rows and columns. Widgets are placed into
// slots, either automatically ([Grid.Add]) or at an explicit position with
// an optional span ([Grid.AddAt]). [Grid.Tile] then computes the width of
// every column and the height of every row from the size constraints of the
// widgets, and moves each widget to its final rectangle.
//
// # Size Policies
//
// Each widget reports a [Policy] per axis:
//
//   - [Fixed]: the size is not negotiable
//   - [ShrinkAllowed]: may become smaller than requested
//   - [GrowAllowed]: may become larger than requested
//   - [Expand]: claims a share of the space other lines leave over
//   - [Ignored]: an invisible widget with this flag takes no space at all
//
// # Tiling
//
// Tiling runs two passes of the line solver [Arrange]. Column requirements
// are collected first and solved against the grid width. Row requirements
// are collected next, asking widgets whose height depends on width
// ([Widget.HeightForWidth]) for their height at the resolved column width,
// and solved against the grid height. Columns are not revisited.
//
// A widget spanning several lines is counted once, on the last line of its
// span, after subtracting what the earlier lines already guarantee.
//
// # Errors
//
// Placement errors (out of bounds, occupied slot, full grid) never abort
// anything: the grid logs them through its logger, skips the placement and
// returns the coded error from pkg/errors.
//
//	g := grid.New(2, 2, grid.WithSize(300, 200), grid.WithLogger(logger))
//	_ = g.AddAt(title, 0, 0, 1, -1)
//	_ = g.Add(name)
//	_ = g.Add(ok)
//	g.Tile()
package grid
