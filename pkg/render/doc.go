// Package render turns a tiled grid into output formats.
//
// # Overview
//
// Rendering happens in two steps. [Snapshot] freezes a tiled
// [scene.Instance] into a [Layout]: the resolved column and row lines and
// the final rectangle of every placed widget. A Layout is plain data; it
// can be cached, sent over the wire and read back with [ParseLayout].
//
// The [sink] subpackage renders a Layout:
//
//   - JSON: the layout itself, for external tools and caching
//   - SVG: widgets drawn as boxes, optionally with labels and grid lines
//   - TXT: a character-cell sketch for terminals and tests
//
// Visual styles for the SVG sink live in [styles].
//
//	in, _ := scene.Build(s, logger)
//	in.Grid.Tile()
//	l := render.Snapshot(in)
//	svg := sink.RenderSVG(l, sink.WithLabels())
//
// [sink]: github.com/matzehuels/gridtile/pkg/render/sink
// [styles]: github.com/matzehuels/gridtile/pkg/render/styles
package render
