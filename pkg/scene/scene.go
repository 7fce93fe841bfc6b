// Package scene describes a grid and the widgets placed in it as data.
//
// Scenes are written in TOML or JSON:
//
//	name    = "login"
//	rows    = 3
//	columns = 2
//	width   = 400
//	height  = 240
//
//	[[column]]
//	index = 0
//	width = 120
//
//	[[widget]]
//	kind     = "label"
//	text     = "Sign in"
//	col_span = -1
//	h_policy = "expanding"
//
// [Load] and [Decode] parse a scene, [Scene.Validate] checks it and [Build]
// turns it into a [grid.Grid] populated with widgets from package widget.
package scene

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridtile/pkg/errors"
)

// Scene formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Scene is a grid declaration.
type Scene struct {
	Name    string `toml:"name" json:"name,omitempty"`
	Rows    int    `toml:"rows" json:"rows"`
	Columns int    `toml:"columns" json:"columns"`

	// Container size; zero leaves the choice to the caller.
	Width  int `toml:"width" json:"width,omitempty"`
	Height int `toml:"height" json:"height,omitempty"`

	// Spacing between lines; nil means the grid default.
	Spacing *int `toml:"spacing" json:"spacing,omitempty"`

	ColumnWidths []ColumnSpec `toml:"column" json:"column,omitempty"`
	RowHeights   []RowSpec    `toml:"row" json:"row,omitempty"`
	Widgets      []WidgetSpec `toml:"widget" json:"widget,omitempty"`
}

// ColumnSpec fixes the width of a column.
type ColumnSpec struct {
	Index int `toml:"index" json:"index"`
	Width int `toml:"width" json:"width"`
}

// RowSpec fixes the height of a row.
type RowSpec struct {
	Index  int `toml:"index" json:"index"`
	Height int `toml:"height" json:"height"`
}

// WidgetSpec declares a widget and where it goes. A widget without Row
// and Col is auto-placed into the first free slot.
type WidgetSpec struct {
	ID   string `toml:"id" json:"id,omitempty"`
	Kind string `toml:"kind" json:"kind"`
	Text string `toml:"text" json:"text,omitempty"`

	Row     *int `toml:"row" json:"row,omitempty"`
	Col     *int `toml:"col" json:"col,omitempty"`
	RowSpan int  `toml:"row_span" json:"row_span,omitempty"`
	ColSpan int  `toml:"col_span" json:"col_span,omitempty"`

	Width     int `toml:"width" json:"width,omitempty"`
	Height    int `toml:"height" json:"height,omitempty"`
	MinWidth  int `toml:"min_width" json:"min_width,omitempty"`
	MaxWidth  int `toml:"max_width" json:"max_width,omitempty"`
	MinHeight int `toml:"min_height" json:"min_height,omitempty"`
	MaxHeight int `toml:"max_height" json:"max_height,omitempty"`

	HPolicy string `toml:"h_policy" json:"h_policy,omitempty"`
	VPolicy string `toml:"v_policy" json:"v_policy,omitempty"`

	Hidden   bool `toml:"hidden" json:"hidden,omitempty"`
	Selected bool `toml:"selected" json:"selected,omitempty"`
}

// Placed reports whether the widget has an explicit position.
func (w WidgetSpec) Placed() bool { return w.Row != nil && w.Col != nil }

// Load reads and validates the scene at path. The format follows the file
// extension; anything but .json is read as TOML.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read scene %s", path)
	}

	s, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FormatFromPath returns the scene format for a file name.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Decode parses and validates a scene in the given format.
func Decode(data []byte, format string) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml scene")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json scene")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (must be toml or json)", format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Canonical returns the JSON encoding used to identify a scene, e.g. in
// cache keys.
func (s *Scene) Canonical() ([]byte, error) {
	return json.Marshal(s)
}

// WithOverrides returns a copy of the scene with the container size
// replaced by the non-zero arguments and the spacing replaced when spacing
// is not nil.
func (s *Scene) WithOverrides(width, height int, spacing *int) *Scene {
	c := *s
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
	if spacing != nil {
		v := *spacing
		c.Spacing = &v
	}
	return &c
}
