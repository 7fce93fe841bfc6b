package pipeline

import (
	"github.com/matzehuels/gridtile/pkg/render"
	"github.com/matzehuels/gridtile/pkg/scene"
)

// Build applies the size overrides of opts to s and builds the grid
// without tiling it.
func Build(s *scene.Scene, opts Options) (*scene.Instance, error) {
	if err := opts.ValidateForTile(); err != nil {
		return nil, err
	}
	return scene.Build(s.WithOverrides(opts.Width, opts.Height, opts.Spacing), opts.Logger)
}

// Tile builds and tiles s. Widgets the grid rejects do not fail tiling;
// they are logged and listed in the layout.
func Tile(s *scene.Scene, opts Options) (render.Layout, error) {
	if err := opts.ValidateForTile(); err != nil {
		return render.Layout{}, err
	}
	in, err := Build(s, opts)
	if err != nil {
		return render.Layout{}, err
	}
	in.Grid.Tile()

	for _, r := range in.Rejected {
		opts.Logger.Warn("widget not placed", "id", r.ID, "code", r.Code, "reason", r.Message)
	}
	return render.Snapshot(in), nil
}
