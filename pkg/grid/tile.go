package grid

// Tile resolves column widths, then row heights, and moves every widget to
// its final rectangle. It does nothing unless the grid changed since the
// last pass, and reports whether a pass ran.
//
// Rows are always solved after columns: a widget's height for width is
// queried with the resolved width of the columns it spans. Columns are
// never revisited once rows are known.
func (g *Grid) Tile() bool {
	if !g.modified {
		return false
	}

	for i := range g.cells {
		g.cells[i].reset()
	}

	cols, expanding, active := g.columnPass()
	Arrange(cols, g.width, g.spacing, active, expanding)
	g.logLines("columns", cols)

	rows, expanding, active := g.rowPass(cols)
	Arrange(rows, g.height, g.spacing, active, expanding)
	g.logLines("rows", rows)

	g.place(cols, rows)

	g.columnLines, g.rowLines = cols, rows
	g.modified = false
	return true
}

// columnPass collects column requirements from the cells ending on each
// column.
func (g *Grid) columnPass() (cols []Line, expanding, active int) {
	cols = make([]Line, g.cols)
	for c := range cols {
		cols[c] = NewLine()
		if w := g.colWidths[c]; w > 0 {
			cols[c].Min, cols[c].Value, cols[c].Active = w, w, true
			active++
			continue
		}

		for r := 0; r < g.rows; r++ {
			cell := g.cell(g.index(r, c))
			if cell == nil || cell.Ignored {
				continue
			}
			cols[c].Active = true
			cell.measure()

			used := 0
			switch {
			case cell.Col == cell.LastCol:
			case c == cell.LastCol:
				used = spanUsed(cols, cell.Col, cell.LastCol, g.spacing)
			default:
				continue
			}

			req := max(cell.Width-used, 0)
			w := cell.Widget
			if cols[c].require(req, used, w.MinWidth(), w.MaxWidth(), w.HorizontalPolicy()) {
				expanding++
			}
			g.logger.Debug("column requirement", "col", c, "row", r, "req", req, "value", cols[c].Value, "policy", cols[c].Policy)
		}
		if cols[c].Active {
			active++
		}
	}
	return cols, expanding, active
}

// rowPass collects row requirements. Heights that depend on width are
// computed from the resolved widths in cols.
func (g *Grid) rowPass(cols []Line) (rows []Line, expanding, active int) {
	rows = make([]Line, g.rows)
	for r := range rows {
		rows[r] = NewLine()
		if h := g.rowHeights[r]; h > 0 {
			rows[r].Min, rows[r].Value, rows[r].Active = h, h, true
			active++
			continue
		}

		for c := 0; c < g.cols; c++ {
			cell := g.cell(g.index(r, c))
			if cell == nil || cell.Ignored {
				continue
			}
			rows[r].Active = true
			if c != cell.LastCol {
				continue
			}
			cell.measure()

			used := 0
			switch {
			case cell.Row == cell.LastRow:
			case r == cell.LastRow:
				used = spanUsed(rows, cell.Row, cell.LastRow, g.spacing)
			default:
				continue
			}

			g.applyHeightForWidth(cell, spanExtent(cols, cell.Col, cell.LastCol, g.spacing))

			req := max(cell.Height-used, 0)
			w := cell.Widget
			if rows[r].require(req, used, w.MinHeight(), w.MaxHeight(), w.VerticalPolicy()) {
				expanding++
			}
			g.logger.Debug("row requirement", "row", r, "col", c, "req", req, "value", rows[r].Value, "policy", rows[r].Policy)
		}
		if rows[r].Active {
			active++
		}
	}
	return rows, expanding, active
}

// applyHeightForWidth adjusts the cell's requested height to what the
// widget needs at width, as far as its vertical policy allows.
func (g *Grid) applyHeightForWidth(cell *Cell, width int) {
	cell.HeightForWidth = cell.Widget.HeightForWidth(width)
	if cell.HeightForWidth <= 0 {
		return
	}
	p := cell.Widget.VerticalPolicy()
	switch {
	case p.Has(ShrinkAllowed) && cell.HeightForWidth < cell.Height:
		cell.Height = cell.HeightForWidth
	case p.Has(GrowAllowed) && cell.HeightForWidth > cell.Height:
		cell.Height = cell.HeightForWidth
	}
}

// place applies the resolved geometry to each widget once, at the owning
// slot of its cell.
func (g *Grid) place(cols, rows []Line) {
	for c := 0; c < g.cols; c++ {
		if !cols[c].Active {
			continue
		}
		for r := 0; r < g.rows; r++ {
			if !rows[r].Active {
				continue
			}
			cell := g.cell(g.index(r, c))
			if cell == nil || cell.Ignored || cell.LastRow != r || cell.LastCol != c {
				continue
			}
			cell.measure()

			w := cell.Widget
			width := spanExtent(cols, cell.Col, cell.LastCol, g.spacing)
			height := spanExtent(rows, cell.Row, cell.LastRow, g.spacing)
			x, y := cols[cell.Col].Pos, rows[cell.Row].Pos

			w.SetWidth(fit(width, cell.Width, w.HorizontalPolicy()))
			w.SetHeight(fit(height, cell.Height, w.VerticalPolicy()))

			if w.HorizontalPolicy() == Fixed && width > w.Width() {
				x += (width - w.Width()) / 2
			}
			if w.VerticalPolicy() == Fixed && height > w.Height() {
				y += (height - w.Height()) / 2
			}
			w.MoveTo(x, y)
		}
	}
}

// fit returns the size a widget requesting want takes in space pixels.
func fit(space, want int, p Policy) int {
	switch {
	case p == Fixed:
		return want
	case space < want && !p.Has(ShrinkAllowed):
		return want
	case space > want && !p.Has(GrowAllowed):
		return want
	default:
		return space
	}
}

func (g *Grid) logLines(axis string, lines []Line) {
	for i, l := range lines {
		g.logger.Debug("line resolved", "axis", axis, "index", i, "value", l.Value, "pos", l.Pos, "min", l.Min, "max", l.Max, "active", l.Active)
	}
}
