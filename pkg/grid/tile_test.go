package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTileSpanIsCountedOnce(t *testing.T) {
	const spacing = 5
	g := New(2, 2, WithSize(200, 100), WithSpacing(spacing))

	top := newFake(50, 20, Preferred, Fixed)
	left := newFake(30, 20, Fixed, Fixed)
	right := newFake(40, 20, Fixed, Fixed)
	_ = g.AddAt(top, 0, 0, 1, 2)
	_ = g.AddAt(left, 1, 0, 1, 1)
	_ = g.AddAt(right, 1, 1, 1, 1)

	if !g.Tile() {
		t.Fatal("Tile() = false on a modified grid")
	}

	cols := g.ColumnLines()
	if cols[0].Value < 30 || cols[1].Value < 40 {
		t.Fatalf("columns = %v, want at least [30 40]", values(cols))
	}
	if diff := cmp.Diff([]int{30, 165}, values(cols)); diff != "" {
		t.Errorf("column values mismatch (-want +got):\n%s", diff)
	}
	if got, want := top.rect.Width, cols[0].Value+cols[1].Value+spacing; got != want {
		t.Errorf("spanning width = %d, want %d", got, want)
	}

	want := map[*fakeWidget]Rect{
		top:   {X: 0, Y: 0, Width: 200, Height: 20},
		left:  {X: 0, Y: 25, Width: 30, Height: 20},
		right: {X: 35 + (165-40)/2, Y: 25, Width: 40, Height: 20},
	}
	for w, r := range want {
		if diff := cmp.Diff(r, w.rect); diff != "" {
			t.Errorf("rect mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestTileRowSpanIsCountedOnce(t *testing.T) {
	const spacing = 5
	g := New(2, 2, WithSize(100, 200), WithSpacing(spacing))

	tall := newFake(20, 50, Fixed, Preferred)
	upper := newFake(30, 30, Fixed, Fixed)
	lower := newFake(30, 40, Fixed, Fixed)
	_ = g.AddAt(tall, 0, 0, 2, 1)
	_ = g.AddAt(upper, 0, 1, 1, 1)
	_ = g.AddAt(lower, 1, 1, 1, 1)

	g.Tile()

	rows := g.RowLines()
	if rows[0].Value < 30 || rows[1].Value < 40 {
		t.Fatalf("rows = %v, want at least [30 40]", values(rows))
	}
	if diff := cmp.Diff([]int{30, 165}, values(rows)); diff != "" {
		t.Errorf("row values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 35}, positions(rows)); diff != "" {
		t.Errorf("row positions mismatch (-want +got):\n%s", diff)
	}
	if got, want := tall.rect.Height, rows[0].Value+rows[1].Value+spacing; got != want {
		t.Errorf("spanning height = %d, want %d", got, want)
	}

	want := map[*fakeWidget]Rect{
		tall:  {X: 0, Y: 0, Width: 20, Height: 200},
		upper: {X: 25, Y: 0, Width: 30, Height: 30},
		lower: {X: 25, Y: 35 + (165-40)/2, Width: 30, Height: 40},
	}
	for w, r := range want {
		if diff := cmp.Diff(r, w.rect); diff != "" {
			t.Errorf("rect mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestTileHeightUsesResolvedWidth(t *testing.T) {
	g := New(1, 1, WithSize(200, 300))
	w := newFake(50, 30, Preferred, Preferred)
	w.h4w = func(width int) int { return 10000 / width }
	_ = g.Add(w)

	g.Tile()

	col := g.ColumnLines()[0]
	if col.Value != 200 {
		t.Fatalf("column width = %d, want 200", col.Value)
	}
	if diff := cmp.Diff([]int{200}, w.queries); diff != "" {
		t.Errorf("HeightForWidth queries mismatch (-want +got):\n%s", diff)
	}
	c := g.CellAt(0, 0)
	if c.HeightForWidth != 50 || c.Height != 50 {
		t.Errorf("cell height for width = %d, height = %d, want 50, 50", c.HeightForWidth, c.Height)
	}
}

func TestTileHeightForSpanningWidth(t *testing.T) {
	g := New(2, 2, WithSize(105, 300), WithSpacing(5))
	g.SetColumnWidth(0, 40)
	g.SetColumnWidth(1, 60)
	w := newFake(10, 10, Preferred, Preferred)
	w.h4w = func(width int) int { return width }
	_ = g.AddAt(w, 0, 0, 1, 2)

	g.Tile()

	if diff := cmp.Diff([]int{105}, w.queries); diff != "" {
		t.Errorf("HeightForWidth queries mismatch (-want +got):\n%s", diff)
	}
}

func TestTileCentersFixedWidgets(t *testing.T) {
	g := New(1, 2, WithSize(100, 60), WithSpacing(0))
	small := newFake(50, 20, Preferred, Fixed)
	tall := newFake(50, 60, Preferred, Minimum)
	_ = g.Add(small)
	_ = g.Add(tall)

	g.Tile()

	if got := g.RowLines()[0].Value; got != 60 {
		t.Fatalf("row height = %d, want 60", got)
	}
	if small.rect.Height != 20 || small.rect.Y != 20 {
		t.Errorf("fixed widget rect = %+v, want height 20 centered at y 20", small.rect)
	}
	if tall.rect.Y != 0 || tall.rect.Height != 60 {
		t.Errorf("tall widget rect = %+v, want y 0 height 60", tall.rect)
	}
}

func TestTileUserColumnWidth(t *testing.T) {
	g := New(1, 2, WithSize(300, 50), WithSpacing(0))
	g.SetColumnWidth(0, 120)
	a := newFake(30, 10, Preferred, Preferred)
	b := newFake(30, 10, Preferred, Preferred)
	_ = g.Add(a)
	_ = g.Add(b)

	g.Tile()

	if diff := cmp.Diff([]int{120, 180}, values(g.ColumnLines())); diff != "" {
		t.Errorf("column values mismatch (-want +got):\n%s", diff)
	}
	if a.rect.Width != 120 || b.rect.X != 120 {
		t.Errorf("a = %+v, b = %+v", a.rect, b.rect)
	}
}

func TestTileSkipsIgnoredWidgets(t *testing.T) {
	g := New(1, 2, WithSize(100, 20), WithSpacing(0))
	hidden := newFake(40, 10, IgnoredPolicy, Preferred)
	hidden.hidden = true
	shown := newFake(40, 10, Preferred, Preferred)
	_ = g.Add(hidden)
	_ = g.Add(shown)

	g.Tile()

	cols := g.ColumnLines()
	if cols[0].Active {
		t.Error("column holding only an ignored widget is active")
	}
	if cols[1].Value != 100 {
		t.Errorf("visible column = %d, want the full 100", cols[1].Value)
	}
	if hidden.moved {
		t.Error("ignored widget was moved")
	}
	if !g.CellAt(0, 0).Ignored {
		t.Error("cell not flagged ignored")
	}
}

func TestTileOnlyWhenDirty(t *testing.T) {
	g := New(1, 1, WithSize(100, 100))
	if g.Tile() {
		t.Error("Tile() ran on an untouched grid")
	}

	_ = g.Add(newFake(10, 10, Preferred, Preferred))
	if !g.Tile() {
		t.Error("Tile() skipped after a placement")
	}
	if g.Tile() {
		t.Error("Tile() ran twice without changes")
	}

	g.SetSize(100, 100)
	if g.Tile() {
		t.Error("Tile() ran after resizing to the same size")
	}
	g.SetSize(50, 100)
	if !g.Tile() {
		t.Error("Tile() skipped after a resize")
	}
}
