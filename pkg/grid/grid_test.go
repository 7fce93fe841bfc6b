package grid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridtile/pkg/errors"
)

func TestAddFillsRowMajor(t *testing.T) {
	g := New(2, 2)
	ws := make([]*fakeWidget, 4)
	for i := range ws {
		ws[i] = newFake(10, 10, Preferred, Preferred)
		if err := g.Add(ws[i]); err != nil {
			t.Fatalf("Add(%d) error: %v", i, err)
		}
	}

	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, pos := range want {
		c := g.CellAt(pos[0], pos[1])
		if c == nil || c.Widget != ws[i] {
			t.Errorf("slot %v does not hold widget %d", pos, i)
		}
		if c != nil && c.Spanning() {
			t.Errorf("auto placed widget %d spans", i)
		}
	}
}

func TestAddFullGrid(t *testing.T) {
	var buf bytes.Buffer
	g := New(1, 2, WithLogger(log.New(&buf)))
	_ = g.Add(newFake(1, 1, Fixed, Fixed))
	_ = g.Add(newFake(1, 1, Fixed, Fixed))
	g.Tile()

	before := g.Occupied()
	err := g.Add(newFake(1, 1, Fixed, Fixed))
	if !errors.Is(err, errors.ErrCodeGridFull) {
		t.Fatalf("Add() error = %v, want %s", err, errors.ErrCodeGridFull)
	}
	if diff := cmp.Diff(before, g.Occupied()); diff != "" {
		t.Errorf("occupied slots changed (-want +got):\n%s", diff)
	}
	if g.Dirty() {
		t.Error("failed placement marked the grid dirty")
	}
	if !strings.Contains(buf.String(), "no more space") {
		t.Errorf("log output = %q, want grid full message", buf.String())
	}
}

func TestAddAtRejects(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		rowSpan  int
		colSpan  int
		want     errors.Code
	}{
		{"row past end", 3, 0, 1, 1, errors.ErrCodeOutOfBounds},
		{"column past end", 0, 3, 1, 1, errors.ErrCodeOutOfBounds},
		{"negative row", -1, 0, 1, 1, errors.ErrCodeOutOfBounds},
		{"occupied origin", 1, 1, 1, 1, errors.ErrCodeSlotOccupied},
		{"span over occupied slot", 0, 0, 2, 2, errors.ErrCodeSlotOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			g := New(3, 3, WithLogger(log.New(&buf)))
			if err := g.AddAt(newFake(5, 5, Fixed, Fixed), 1, 1, 1, 1); err != nil {
				t.Fatalf("setup AddAt error: %v", err)
			}
			before := g.Occupied()
			cells := len(g.Cells())

			err := g.AddAt(newFake(5, 5, Fixed, Fixed), tt.row, tt.col, tt.rowSpan, tt.colSpan)
			if !errors.Is(err, tt.want) {
				t.Fatalf("AddAt() error = %v, want %s", err, tt.want)
			}
			if diff := cmp.Diff(before, g.Occupied()); diff != "" {
				t.Errorf("occupied slots changed (-want +got):\n%s", diff)
			}
			if got := len(g.Cells()); got != cells {
				t.Errorf("cell count = %d, want %d", got, cells)
			}
			if !strings.Contains(buf.String(), string(tt.want)) {
				t.Errorf("log output %q does not mention %s", buf.String(), tt.want)
			}
		})
	}
}

func TestAddAtSpans(t *testing.T) {
	tests := []struct {
		name             string
		row, col         int
		rowSpan, colSpan int
		lastRow, lastCol int
	}{
		{"single", 1, 1, 1, 1, 1, 1},
		{"zero span is single", 1, 1, 0, 0, 1, 1},
		{"to edge", 0, 1, -1, -1, 2, 2},
		{"clamped", 1, 0, 5, 9, 2, 2},
		{"two columns", 2, 0, 1, 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(3, 3)
			w := newFake(5, 5, Fixed, Fixed)
			if err := g.AddAt(w, tt.row, tt.col, tt.rowSpan, tt.colSpan); err != nil {
				t.Fatalf("AddAt() error: %v", err)
			}
			c := g.CellAt(tt.row, tt.col)
			if c.LastRow != tt.lastRow || c.LastCol != tt.lastCol {
				t.Fatalf("span end = (%d, %d), want (%d, %d)", c.LastRow, c.LastCol, tt.lastRow, tt.lastCol)
			}
			for r := 0; r < 3; r++ {
				for col := 0; col < 3; col++ {
					inside := r >= tt.row && r <= tt.lastRow && col >= tt.col && col <= tt.lastCol
					if got := g.CellAt(r, col) == c; got != inside {
						t.Errorf("slot (%d, %d) covered = %v, want %v", r, col, got, inside)
					}
				}
			}
			if c.Owner != tt.lastRow*3+tt.lastCol {
				t.Errorf("Owner = %d, want %d", c.Owner, tt.lastRow*3+tt.lastCol)
			}
		})
	}
}

func TestCellsListsSpanningCellOnce(t *testing.T) {
	g := New(2, 3)
	_ = g.AddAt(newFake(1, 1, Fixed, Fixed), 0, 0, 2, 2)
	_ = g.Add(newFake(1, 1, Fixed, Fixed))
	_ = g.Add(newFake(1, 1, Fixed, Fixed))

	cells := g.Cells()
	if len(cells) != 3 {
		t.Fatalf("len(Cells()) = %d, want 3", len(cells))
	}
	if cells[0].Col != 2 || cells[1].RowSpan() != 2 || cells[2].Row != 1 {
		t.Errorf("unexpected owning-slot order: %+v %+v %+v", *cells[0], *cells[1], *cells[2])
	}
}

func TestSelectableRegistration(t *testing.T) {
	g := New(1, 3)
	a := newFake(1, 1, Fixed, Fixed)
	a.choice = &fakeChoice{on: true}
	b := newFake(1, 1, Fixed, Fixed)
	b.choice = &fakeChoice{on: true}
	plain := newFake(1, 1, Fixed, Fixed)

	_ = g.Add(a)
	_ = g.Add(b)
	_ = g.Add(plain)

	group := g.SelectionGroup()
	if group.Len() != 2 {
		t.Fatalf("group has %d members, want 2", group.Len())
	}
	if a.choice.on || !b.choice.on {
		t.Errorf("selection = (%v, %v), want only the last selected member", a.choice.on, b.choice.on)
	}

	group.Select(a.choice)
	if !a.choice.on || b.choice.on {
		t.Errorf("after Select(a) selection = (%v, %v)", a.choice.on, b.choice.on)
	}

	g.Clear()
	if group.Len() != 0 {
		t.Errorf("group has %d members after Clear, want 0", group.Len())
	}
	if len(g.Cells()) != 0 {
		t.Error("Clear left cells behind")
	}
}

func TestLineOverrides(t *testing.T) {
	g := New(2, 2)
	g.SetColumnWidth(1, 40)
	g.SetColumnWidth(5, 40)
	g.SetRowHeight(0, 12)
	g.SetRowHeight(-1, 12)

	if got := g.ColumnWidth(1); got != 40 {
		t.Errorf("ColumnWidth(1) = %d, want 40", got)
	}
	if got := g.ColumnWidth(5); got != 0 {
		t.Errorf("ColumnWidth(5) = %d, want 0", got)
	}
	if got := g.RowHeight(0); got != 12 {
		t.Errorf("RowHeight(0) = %d, want 12", got)
	}
	if got := g.HeightForWidth(100); got != -1 {
		t.Errorf("HeightForWidth() = %d, want -1", got)
	}
}

func TestNilWidget(t *testing.T) {
	g := New(1, 1)
	if err := g.Add(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Add(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if err := g.AddAt(nil, 0, 0, 1, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddAt(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	var typed *fakeWidget
	if err := g.Add(typed); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Add(typed nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if err := g.AddAt(typed, 0, 0, 1, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddAt(typed nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if g.CellAt(0, 0) != nil {
		t.Error("typed nil widget was placed")
	}
}

func TestCellSurvivesLaterPlacements(t *testing.T) {
	g := New(1, 3, WithSize(90, 10))
	_ = g.Add(newFake(10, 10, Preferred, Preferred))
	held := g.CellAt(0, 0)

	_ = g.Add(newFake(10, 10, Preferred, Preferred))
	_ = g.Add(newFake(10, 10, Preferred, Preferred))
	g.Tile()

	if live := g.CellAt(0, 0); held != live {
		t.Fatal("CellAt(0, 0) returned a different record after later placements")
	}
	if held.Width != 10 {
		t.Errorf("held cell width = %d, want 10", held.Width)
	}
}
