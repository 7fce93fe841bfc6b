package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtile/pkg/cache"
	"github.com/matzehuels/gridtile/pkg/observability"
	"github.com/matzehuels/gridtile/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds options for the serve command.
type serveOpts struct {
	addr        string
	redisAddr   string
	redisPrefix string
	noCache     bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tiling pipeline over HTTP",
		Long: `Serve the tiling pipeline over HTTP.

Endpoints:
  GET  /healthz               liveness probe
  POST /v1/tile               scene body, returns the layout as JSON
  POST /v1/render/{format}    scene body, returns the artifact (json, svg, txt)

Size and render options are read from the query string:
  ?width=800&height=600&spacing=4&style=wireframe&labels=true&grid_lines=true

With --redis, layouts and artifacts are shared between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared cache")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", appName+":", "key prefix in redis")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	hooks := observability.NewLogHooks(logger.WithPrefix("pipeline"))
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, versionKeyer(), logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           NewServer(runner, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	printSuccess("Listening on %s", opts.addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// serverCache picks the cache backend for the server. Without --redis the
// server does not cache; several instances would not share a file cache.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || opts.redisAddr == "" {
		return cache.NewNullCache(), nil
	}
	store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:   opts.redisAddr,
		Prefix: opts.redisPrefix,
	})
	if err != nil {
		return nil, err
	}
	printDetail("Cache: redis %s", opts.redisAddr)
	return store, nil
}
