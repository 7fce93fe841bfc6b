package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gridtile/pkg/render"
	"github.com/matzehuels/gridtile/pkg/render/styles"
)

const blockInteractionCSS = `
    .block { transition: stroke-width 0.2s ease; }
    .block:hover { stroke-width: 3; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     styles.Style
	labels    bool
	gridLines bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithLabels() SVGOption              { return func(r *svgRenderer) { r.labels = true } }
func WithGridLines() SVGOption           { return func(r *svgRenderer) { r.gridLines = true } }

// WithStyleName selects a style by name, see [styles.ByName].
func WithStyleName(name string) (SVGOption, error) {
	s, err := styles.ByName(name)
	if err != nil {
		return nil, err
	}
	return WithStyle(s), nil
}

func RenderSVG(l render.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	blocks := buildBlocks(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", blockInteractionCSS)
	if l.Scene != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(l.Scene))
	}

	if r.gridLines {
		for _, g := range buildGuides(l) {
			r.style.RenderGuide(&buf, g)
		}
	}
	for _, b := range blocks {
		r.style.RenderBlock(&buf, b)
	}
	if r.labels {
		for _, b := range blocks {
			r.style.RenderText(&buf, b)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildBlocks(l render.Layout) []styles.Block {
	blocks := make([]styles.Block, 0, len(l.Placements))
	for _, p := range l.Placements {
		if !p.Drawn() {
			continue
		}
		label := p.Text
		if label == "" {
			label = p.ID
		}
		w, h := float64(p.Width), float64(p.Height)
		blocks = append(blocks, styles.Block{
			ID:    p.ID,
			Kind:  p.Kind,
			Label: label,
			Lines: p.Lines,
			X:     float64(p.X), Y: float64(p.Y),
			W: w, H: h,
			CX: float64(p.X) + w/2, CY: float64(p.Y) + h/2,
			Selected: p.Selected,
		})
	}
	return blocks
}

// buildGuides returns both edges of every active line.
func buildGuides(l render.Layout) []styles.Guide {
	var guides []styles.Guide
	add := func(lines []render.Line, vertical bool, length int) {
		for _, ln := range lines {
			if !ln.Active {
				continue
			}
			guides = append(guides,
				styles.Guide{Vertical: vertical, Pos: float64(ln.Pos), Length: float64(length)},
				styles.Guide{Vertical: vertical, Pos: float64(ln.End()), Length: float64(length)},
			)
		}
	}
	add(l.Columns, true, l.Height)
	add(l.Rows, false, l.Width)
	return guides
}
