package grid

// fakeWidget is a minimal Widget used by the tests in this package.
type fakeWidget struct {
	pref       Size
	minW, maxW int
	minH, maxH int
	hp, vp     Policy
	hidden     bool

	h4w     func(int) int
	queries []int

	rect   Rect
	moved  bool
	choice *fakeChoice
}

func newFake(w, h int, hp, vp Policy) *fakeWidget {
	return &fakeWidget{pref: Size{Width: w, Height: h}, hp: hp, vp: vp}
}

func (f *fakeWidget) PreferredSize() Size      { return f.pref }
func (f *fakeWidget) MinWidth() int            { return f.minW }
func (f *fakeWidget) MaxWidth() int            { return f.maxW }
func (f *fakeWidget) MinHeight() int           { return f.minH }
func (f *fakeWidget) MaxHeight() int           { return f.maxH }
func (f *fakeWidget) HorizontalPolicy() Policy { return f.hp }
func (f *fakeWidget) VerticalPolicy() Policy   { return f.vp }
func (f *fakeWidget) Visible() bool            { return !f.hidden }
func (f *fakeWidget) Width() int               { return f.rect.Width }
func (f *fakeWidget) Height() int              { return f.rect.Height }
func (f *fakeWidget) SetWidth(w int)           { f.rect.Width = w }
func (f *fakeWidget) SetHeight(h int)          { f.rect.Height = h }

func (f *fakeWidget) MoveTo(x, y int) {
	f.rect.X, f.rect.Y = x, y
	f.moved = true
}

func (f *fakeWidget) HeightForWidth(width int) int {
	f.queries = append(f.queries, width)
	if f.h4w == nil {
		return 0
	}
	return f.h4w(width)
}

func (f *fakeWidget) Selectable() Selectable {
	if f.choice == nil {
		return nil
	}
	return f.choice
}

type fakeChoice struct{ on bool }

func (c *fakeChoice) Selected() bool     { return c.on }
func (c *fakeChoice) SetSelected(v bool) { c.on = v }
