package styles

import (
	"bytes"
	"fmt"
)

var kindFill = map[string]string{
	"box":   "#dbe9f6",
	"label": "#fdf3d7",
	"radio": "#e3f4e1",
}

// Simple draws filled, rounded widgets colored by kind.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString("    <style>.block-text { font-family: sans-serif; fill: #222; }</style>\n")
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderBlock(buf *bytes.Buffer, b Block) {
	fill, ok := kindFill[b.Kind]
	if !ok {
		fill = "#eeeeee"
	}
	fmt.Fprintf(buf, `  <rect id="block-%s" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" ry="3" fill="%s" stroke="#555" stroke-width="1"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, fill)
	if b.Kind == "radio" {
		renderIndicator(buf, b, "#555")
	}
}

func (Simple) RenderText(buf *bytes.Buffer, b Block) {
	renderText(buf, b)
}

func (Simple) RenderGuide(buf *bytes.Buffer, g Guide) {
	renderGuide(buf, g, "#c8c8c8")
}

// Wireframe draws outlines only, for checking geometry.
type Wireframe struct{}

func (Wireframe) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString("    <style>.block-text { font-family: monospace; fill: #000; }</style>\n")
	buf.WriteString("  </defs>\n")
}

func (Wireframe) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf, `  <rect id="block-%s" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000" stroke-width="1"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H)
	if b.Kind == "radio" {
		renderIndicator(buf, b, "#000")
	}
}

func (Wireframe) RenderText(buf *bytes.Buffer, b Block) {
	renderText(buf, b)
}

func (Wireframe) RenderGuide(buf *bytes.Buffer, g Guide) {
	renderGuide(buf, g, "#f08080")
}

// renderIndicator draws the radio circle at the left edge of the block,
// filled when selected.
func renderIndicator(buf *bytes.Buffer, b Block, stroke string) {
	r := min(8, b.H/2-1)
	if r <= 0 {
		return
	}
	fill := "none"
	if b.Selected {
		fill = stroke
	}
	fmt.Fprintf(buf, `  <circle class="indicator" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`+"\n",
		b.X+r+2, b.CY, r, fill, stroke)
}

func renderText(buf *bytes.Buffer, b Block) {
	size := FontSize(b)
	lines := b.Lines
	if len(lines) == 0 {
		lines = []string{b.Label}
	}
	advance := LineAdvance(size)
	top := b.CY - advance*float64(len(lines)-1)/2
	for i, line := range lines {
		fmt.Fprintf(buf, `  <text class="block-text" data-block="%s" x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			EscapeXML(b.ID), b.CX, top+advance*float64(i), size, EscapeXML(TruncateLabel(line, b.W, size)))
	}
}

func renderGuide(buf *bytes.Buffer, g Guide, stroke string) {
	x1, y1, x2, y2 := g.Pos, 0.0, g.Pos, g.Length
	if !g.Vertical {
		x1, y1, x2, y2 = 0, g.Pos, g.Length, g.Pos
	}
	fmt.Fprintf(buf, `  <line class="guide" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4 3"/>`+"\n",
		x1, y1, x2, y2, stroke)
}
