package sink

import (
	"encoding/json"

	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact omits indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON encodes the layout. The output round trips through
// [render.ParseLayout].
func RenderJSON(l render.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if l.Placements == nil {
		l.Placements = []render.Placement{}
	}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(l)
	} else {
		data, err = json.MarshalIndent(l, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return append(data, '\n'), nil
}
