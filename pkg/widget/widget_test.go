package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridtile/pkg/grid"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		text string
		cols int
		want []string
	}{
		{"fits", "sign in", 10, []string{"sign in"}},
		{"breaks between words", "remember me on this device", 11, []string{"remember me", "on this", "device"}},
		{"splits long words", "abcdefgh ij", 3, []string{"abc", "def", "gh", "ij"}},
		{"keeps newlines", "a\n\nb", 5, []string{"a", "", "b"}},
		{"wide runes", "日本語 テキスト", 6, []string{"日本語", "テキス", "ト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Wrap(tt.text, tt.cols)); diff != "" {
				t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLabelSizes(t *testing.T) {
	l := NewLabel("title", "remember me on this device")

	pref := l.PreferredSize()
	want := grid.Size{Width: 26*CharWidth + 2*Padding, Height: LineHeight + 2*Padding}
	if pref != want {
		t.Errorf("PreferredSize() = %+v, want %+v", pref, want)
	}

	width := 11*CharWidth + 2*Padding
	if got, want := l.HeightForWidth(width), 3*LineHeight+2*Padding; got != want {
		t.Errorf("HeightForWidth(%d) = %d, want %d", width, got, want)
	}
	if got := l.HeightForWidth(2 * Padding); got != 0 {
		t.Errorf("HeightForWidth(padding only) = %d, want 0", got)
	}

	l.SetPreferredSize(50, 10)
	if got := l.PreferredSize(); got != (grid.Size{Width: 50, Height: 10}) {
		t.Errorf("explicit PreferredSize() = %+v", got)
	}
}

func TestLabelLinesFollowWidth(t *testing.T) {
	l := NewLabel("l", "one two three")
	l.SetWidth(7*CharWidth + 2*Padding)
	if diff := cmp.Diff([]string{"one two", "three"}, l.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestRadioButton(t *testing.T) {
	r := NewRadioButton("remember", "Remember")
	if r.Selectable() == nil {
		t.Fatal("radio button is not selectable")
	}
	if r.HorizontalPolicy() != grid.Minimum || r.VerticalPolicy() != grid.Fixed {
		t.Errorf("policies = %s/%s", r.HorizontalPolicy(), r.VerticalPolicy())
	}

	pref := r.PreferredSize()
	if pref.Width != indicatorSize+indicatorGap+8*CharWidth {
		t.Errorf("PreferredSize().Width = %d", pref.Width)
	}

	r.Selectable().SetSelected(true)
	if !r.Selected() {
		t.Error("SetSelected through the capability did not select the button")
	}

	if NewBox("b", 1, 1).Selectable() != nil {
		t.Error("box exposes a selectable capability")
	}
}

func TestBaseGeometry(t *testing.T) {
	b := NewBox("b", 30, 20)
	b.SetMinimumSize(10, 5)
	b.SetMaximumSize(100, 50)
	b.SetVisible(false)
	b.MoveTo(3, 4)
	b.SetWidth(30)
	b.SetHeight(20)

	if b.Visible() {
		t.Error("hidden box is visible")
	}
	if b.MinWidth() != 10 || b.MaxHeight() != 50 {
		t.Errorf("hints = %d/%d", b.MinWidth(), b.MaxHeight())
	}
	if diff := cmp.Diff(grid.Rect{X: 3, Y: 4, Width: 30, Height: 20}, b.Geometry()); diff != "" {
		t.Errorf("Geometry() mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetsTileInGrid(t *testing.T) {
	g := grid.New(2, 2, grid.WithSize(200, 200), grid.WithSpacing(0))
	title := NewLabel("title", "a long caption that wraps")
	a := NewRadioButton("a", "A")
	b := NewRadioButton("b", "B")
	b.SetSelected(true)
	a.SetSelected(true)

	_ = g.AddAt(title, 0, 0, 1, -1)
	_ = g.Add(a)
	_ = g.Add(b)
	g.Tile()

	if title.Width() != 200 {
		t.Errorf("title width = %d, want 200", title.Width())
	}
	if got := title.Height(); got < 2*LineHeight {
		t.Errorf("title height = %d, want wrapped height", got)
	}
	if !b.Selected() || a.Selected() {
		t.Errorf("selection = a:%v b:%v, want only the later placed button", a.Selected(), b.Selected())
	}
}

func TestRadioSelectionGoesThroughGroup(t *testing.T) {
	g := grid.New(1, 3)
	radios := []*RadioButton{
		NewRadioButton("low", "Low"),
		NewRadioButton("mid", "Mid"),
		NewRadioButton("high", "High"),
	}
	radios[0].SetSelected(true)
	for _, r := range radios {
		if err := g.Add(r); err != nil {
			t.Fatalf("Add(%s) error: %v", r.ID(), err)
		}
	}

	selected := func() []bool {
		out := make([]bool, len(radios))
		for i, r := range radios {
			out[i] = r.Selected()
		}
		return out
	}

	g.SelectionGroup().Select(radios[2])
	if diff := cmp.Diff([]bool{false, false, true}, selected()); diff != "" {
		t.Errorf("after Select(high) mismatch (-want +got):\n%s", diff)
	}
	if g.SelectionGroup().Selected() != radios[2] {
		t.Error("group selection is not the high radio")
	}

	radios[1].SetSelected(true)
	if diff := cmp.Diff([]bool{false, true, true}, selected()); diff != "" {
		t.Errorf("SetSelected touched siblings (-want +got):\n%s", diff)
	}
	if g.SelectionGroup().Selected() != radios[2] {
		t.Error("SetSelected changed the group selection")
	}
}
