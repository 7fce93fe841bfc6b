package widget

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/gridtile/pkg/grid"
)

// Text metrics in pixels.
const (
	CharWidth  = 8
	LineHeight = 16
	Padding    = 4
)

// Label is a block of text that wraps at word boundaries. Its height
// depends on the width it is given.
type Label struct {
	Base
	text string
}

// NewLabel returns a label with Preferred policies on both axes.
func NewLabel(id, text string) *Label {
	return &Label{Base: newBase(id, grid.Preferred, grid.Preferred), text: text}
}

// Kind returns KindLabel.
func (l *Label) Kind() string { return KindLabel }

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText replaces the label text.
func (l *Label) SetText(text string) { l.text = text }

// PreferredSize returns the explicit preferred size if one was set, and
// otherwise the size of the unwrapped text.
func (l *Label) PreferredSize() grid.Size {
	if l.pref != (grid.Size{}) {
		return l.pref
	}
	lines := strings.Split(l.text, "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, runewidth.StringWidth(line))
	}
	return grid.Size{
		Width:  cols*CharWidth + 2*Padding,
		Height: len(lines)*LineHeight + 2*Padding,
	}
}

// HeightForWidth returns the height of the text wrapped to width pixels,
// or 0 when nothing fits.
func (l *Label) HeightForWidth(width int) int {
	cols := (width - 2*Padding) / CharWidth
	if cols < 1 || l.text == "" {
		return 0
	}
	return len(Wrap(l.text, cols))*LineHeight + 2*Padding
}

// Lines returns the text wrapped to the label's current width.
func (l *Label) Lines() []string {
	cols := (l.Width() - 2*Padding) / CharWidth
	if cols < 1 {
		return strings.Split(l.text, "\n")
	}
	return Wrap(l.text, cols)
}

// Wrap breaks text into lines of at most cols terminal cells. Lines break
// between words; words wider than cols are split. Explicit newlines are
// kept.
func Wrap(text string, cols int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		line, lineW := "", 0
		flush := func() {
			if lineW > 0 {
				out = append(out, line)
			}
			line, lineW = "", 0
		}
		for _, word := range words {
			w := runewidth.StringWidth(word)
			switch {
			case w > cols:
				flush()
				pieces := strings.Split(runewidth.Wrap(word, cols), "\n")
				out = append(out, pieces[:len(pieces)-1]...)
				line = pieces[len(pieces)-1]
				lineW = runewidth.StringWidth(line)
			case lineW == 0:
				line, lineW = word, w
			case lineW+1+w <= cols:
				line += " " + word
				lineW += 1 + w
			default:
				flush()
				line, lineW = word, w
			}
		}
		flush()
	}
	return out
}
