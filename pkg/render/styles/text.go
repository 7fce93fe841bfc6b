package styles

import (
	"bytes"
	"encoding/xml"

	"github.com/mattn/go-runewidth"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 16.0
	lineSpacing     = 1.2
)

func FontSize(b Block) float64 {
	n := max(1, runewidth.StringWidth(b.Label))
	for _, line := range b.Lines {
		n = max(n, runewidth.StringWidth(line))
	}
	rows := max(1, len(b.Lines))
	byHeight := b.H * fontHeightRatio / float64(rows)
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func LineAdvance(fontSize float64) float64 { return fontSize * lineSpacing }

// TruncateLabel shortens s to the number of cells that fit into width at
// the given font size.
func TruncateLabel(s string, width, fontSize float64) string {
	maxCells := int(width * fontWidthRatio / (fontSize * fontCharWidth))
	if maxCells < 3 {
		maxCells = 3
	}
	return runewidth.Truncate(s, maxCells, "..")
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
