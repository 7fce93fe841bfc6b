// Package sink renders a [render.Layout] into output formats.
//
// # Formats
//
//   - [FormatJSON]: the layout as JSON, readable with [render.ParseLayout]
//   - [FormatSVG]: an SVG drawing of the placed widgets
//   - [FormatText]: a character-cell sketch of the placed widgets
//
// [Render] dispatches on the format name; the format specific functions
// take their own options.
//
//	svg := sink.RenderSVG(l, sink.WithLabels(), sink.WithGridLines())
//	txt := sink.RenderText(l, sink.WithCellSize(10, 20))
//
// Widgets that are ignored, hidden or have an empty rectangle are skipped
// by the drawing sinks; the JSON sink keeps every placement.
//
// [render.Layout]: github.com/matzehuels/gridtile/pkg/render.Layout
// [render.ParseLayout]: github.com/matzehuels/gridtile/pkg/render.ParseLayout
package sink
