package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/grid"
	"github.com/matzehuels/gridtile/pkg/widget"
)

const formTOML = `
name    = "form"
rows    = 2
columns = 2
width   = 300
height  = 100
spacing = 4

[[column]]
index = 0
width = 80

[[widget]]
id       = "title"
kind     = "label"
text     = "Hello"
row      = 0
col      = 0
col_span = -1
h_policy = "grow|expand"

[[widget]]
kind = "box"
width = 20
height = 10

[[widget]]
kind     = "radio"
text     = "On"
selected = true
`

const formJSON = `{
  "name": "form",
  "rows": 2,
  "columns": 2,
  "width": 300,
  "height": 100,
  "spacing": 4,
  "column": [{"index": 0, "width": 80}],
  "widget": [
    {"id": "title", "kind": "label", "text": "Hello", "row": 0, "col": 0, "col_span": -1, "h_policy": "grow|expand"},
    {"kind": "box", "width": 20, "height": 10},
    {"kind": "radio", "text": "On", "selected": true}
  ]
}`

func intPtr(v int) *int { return &v }

func TestDecodeFormatsAgree(t *testing.T) {
	fromTOML, err := Decode([]byte(formTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode(toml) error: %v", err)
	}
	fromJSON, err := Decode([]byte(formJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode(json) error: %v", err)
	}
	if diff := cmp.Diff(fromTOML, fromJSON); diff != "" {
		t.Errorf("toml and json scenes differ (-toml +json):\n%s", diff)
	}

	if fromTOML.Spacing == nil || *fromTOML.Spacing != 4 {
		t.Errorf("Spacing = %v, want 4", fromTOML.Spacing)
	}
	title := fromTOML.Widgets[0]
	if !title.Placed() || title.ColSpan != -1 {
		t.Errorf("title spec = %+v", title)
	}
	if fromTOML.Widgets[1].Placed() {
		t.Error("widget without row/col reported as placed")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   errors.Code
	}{
		{"malformed toml", FormatTOML, "rows = ", errors.ErrCodeInvalidScene},
		{"unknown json field", FormatJSON, `{"rows": 1, "columns": 1, "colour": "red"}`, errors.ErrCodeInvalidScene},
		{"unknown format", "yaml", "rows: 1", errors.ErrCodeInvalidFormat},
		{"no rows", FormatTOML, "rows = 0\ncolumns = 2", errors.ErrCodeInvalidScene},
		{"negative spacing", FormatTOML, "rows = 1\ncolumns = 1\nspacing = -2", errors.ErrCodeInvalidScene},
		{"column out of range", FormatTOML, "rows = 1\ncolumns = 1\n[[column]]\nindex = 3\nwidth = 10", errors.ErrCodeInvalidScene},
		{"unknown kind", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nkind = \"slider\"", errors.ErrCodeInvalidScene},
		{"bad policy", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nkind = \"box\"\nh_policy = \"stretchy\"", errors.ErrCodeInvalidPolicy},
		{"row without col", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nkind = \"box\"\nrow = 0", errors.ErrCodeInvalidScene},
		{"span without position", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nkind = \"box\"\ncol_span = 2", errors.ErrCodeInvalidScene},
		{"bad span", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nkind = \"box\"\nrow = 0\ncol = 0\nrow_span = -3", errors.ErrCodeInvalidScene},
		{"selected box", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nkind = \"box\"\nselected = true", errors.ErrCodeInvalidScene},
		{"duplicate id", FormatTOML, "rows = 1\ncolumns = 2\n[[widget]]\nid = \"a\"\nkind = \"box\"\n[[widget]]\nid = \"a\"\nkind = \"box\"", errors.ErrCodeInvalidScene},
		{"bad id", FormatTOML, "rows = 1\ncolumns = 1\n[[widget]]\nid = \"a b\"\nkind = \"box\"", errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signup.json")
	if err := os.WriteFile(path, []byte(`{"rows": 1, "columns": 2}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Name != "signup" {
		t.Errorf("Name = %q, want name derived from the file", s.Name)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadExampleScenes(t *testing.T) {
	paths, _ := filepath.Glob(filepath.Join("..", "..", "examples", "scenes", "*"))
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			in, err := Build(s, nil)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if len(in.Rejected) != 0 {
				t.Errorf("rejected placements: %+v", in.Rejected)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	s, err := Decode([]byte(formTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	in, err := Build(s, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if got := in.Grid.Size(); got != (grid.Size{Width: 300, Height: 100}) {
		t.Errorf("grid size = %+v", got)
	}
	if in.Grid.Spacing() != 4 || in.Grid.ColumnWidth(0) != 80 {
		t.Errorf("spacing %d, column width %d", in.Grid.Spacing(), in.Grid.ColumnWidth(0))
	}

	var ids []string
	for _, w := range in.Widgets {
		ids = append(ids, w.ID())
	}
	if diff := cmp.Diff([]string{"title", "box2", "radio3"}, ids); diff != "" {
		t.Errorf("widget ids mismatch (-want +got):\n%s", diff)
	}

	title, _ := in.Lookup("title")
	if title.HorizontalPolicy() != grid.GrowAllowed|grid.Expand {
		t.Errorf("title policy = %s", title.HorizontalPolicy())
	}
	if title.VerticalPolicy() != grid.Preferred {
		t.Errorf("title vertical policy = %s, want the label default", title.VerticalPolicy())
	}
	if c := in.Grid.CellAt(0, 1); c == nil || c.Widget != title {
		t.Error("title does not span the first row")
	}

	box, _ := in.Lookup("box2")
	if box.PreferredSize() != (grid.Size{Width: 20, Height: 10}) {
		t.Errorf("box preferred size = %+v", box.PreferredSize())
	}
	if c := in.Grid.CellAt(1, 0); c == nil || c.Widget != box {
		t.Error("box not auto placed at (1, 0)")
	}

	radio, _ := in.Lookup("radio3")
	if !radio.(*widget.RadioButton).Selected() {
		t.Error("radio lost its selection")
	}
	if in.Grid.SelectionGroup().Selected() != radio.Selectable() {
		t.Error("radio is not the group's selection")
	}
	if len(in.Rejected) != 0 {
		t.Errorf("Rejected = %+v", in.Rejected)
	}
}

func TestBuildReportsRejectedPlacements(t *testing.T) {
	s := &Scene{
		Rows:    1,
		Columns: 2,
		Widgets: []WidgetSpec{
			{ID: "a", Kind: widget.KindBox, Row: intPtr(0), Col: intPtr(0), ColSpan: -1},
			{ID: "b", Kind: widget.KindBox, Row: intPtr(0), Col: intPtr(1)},
			{ID: "c", Kind: widget.KindBox},
		},
	}

	in, err := Build(s, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	want := []errors.Code{errors.ErrCodeSlotOccupied, errors.ErrCodeGridFull}
	var got []errors.Code
	for _, r := range in.Rejected {
		got = append(got, r.Code)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rejection codes mismatch (-want +got):\n%s", diff)
	}
	if in.Rejected[0].ID != "b" || in.Rejected[1].ID != "c" {
		t.Errorf("Rejected = %+v", in.Rejected)
	}
	if len(in.Widgets) != 3 {
		t.Errorf("len(Widgets) = %d, want every declared widget", len(in.Widgets))
	}
}

func TestBuildDefaultsAndHidden(t *testing.T) {
	s := &Scene{
		Rows:    1,
		Columns: 1,
		Widgets: []WidgetSpec{{Kind: widget.KindBox, Hidden: true, HPolicy: "ignored"}},
	}
	in, err := Build(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := in.Grid.Size(); got != (grid.Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("grid size = %+v, want defaults", got)
	}
	if in.Grid.Spacing() != grid.DefaultSpacing {
		t.Errorf("spacing = %d, want default", in.Grid.Spacing())
	}
	if in.Widgets[0].Visible() {
		t.Error("hidden widget is visible")
	}
}

func TestGeneratedIDsAvoidDeclaredOnes(t *testing.T) {
	s := &Scene{
		Rows:    1,
		Columns: 2,
		Widgets: []WidgetSpec{
			{ID: "box2", Kind: widget.KindBox},
			{Kind: widget.KindBox},
		},
	}
	in, err := Build(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := in.Widgets[1].ID(); got != "box2_2" {
		t.Errorf("generated id = %q, want box2_2", got)
	}
}

func TestWithOverrides(t *testing.T) {
	s := &Scene{Rows: 1, Columns: 1, Width: 100, Height: 50, Spacing: intPtr(3)}

	o := s.WithOverrides(200, 0, intPtr(0))
	if o.Width != 200 || o.Height != 50 || *o.Spacing != 0 {
		t.Errorf("overrides = %dx%d spacing %d", o.Width, o.Height, *o.Spacing)
	}
	if s.Width != 100 || *s.Spacing != 3 {
		t.Error("WithOverrides modified the original scene")
	}

	if kept := s.WithOverrides(0, 0, nil); *kept.Spacing != 3 {
		t.Errorf("spacing = %d, want the declared one", *kept.Spacing)
	}
}

func TestCanonicalIsStable(t *testing.T) {
	a, _ := Decode([]byte(formTOML), FormatTOML)
	b, _ := Decode([]byte(formJSON), FormatJSON)
	ca, err := a.Canonical()
	if err != nil {
		t.Fatal(err)
	}
	cb, _ := b.Canonical()
	if string(ca) != string(cb) {
		t.Errorf("canonical forms differ:\n%s\n%s", ca, cb)
	}
}
