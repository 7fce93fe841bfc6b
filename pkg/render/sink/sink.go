package sink

import (
	"slices"

	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/render"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatText = "txt"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatSVG, FormatText}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options configures [Render]. The zero value renders with defaults.
type Options struct {
	Style     string
	Labels    bool
	GridLines bool
}

// Render renders l in the given format.
func Render(l render.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(l)
	case FormatSVG:
		var svgOpts []SVGOption
		if opts.Style != "" {
			o, err := WithStyleName(opts.Style)
			if err != nil {
				return nil, err
			}
			svgOpts = append(svgOpts, o)
		}
		if opts.Labels {
			svgOpts = append(svgOpts, WithLabels())
		}
		if opts.GridLines {
			svgOpts = append(svgOpts, WithGridLines())
		}
		return RenderSVG(l, svgOpts...), nil
	case FormatText:
		return RenderText(l), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (supported: %v)", format, Formats)
}

// Supported reports whether format can be rendered.
func Supported(format string) bool { return slices.Contains(Formats, format) }
