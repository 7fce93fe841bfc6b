package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridtile/pkg/render"
	"github.com/matzehuels/gridtile/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, l render.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := sink.Render(l, format, opts.SinkOptions())
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
