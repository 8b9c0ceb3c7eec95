package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/internal/server"
	"github.com/matzehuels/roadmap/pkg/cache"
	"github.com/matzehuels/roadmap/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 10 * time.Second

// serveOptions configures the HTTP server command.
type serveOptions struct {
	addr    string
	redis   string
	source  string
	store   string
	noCache bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve frames over HTTP",
		Long: `Serve frames over HTTP.

Clients POST items, settings and their viewport to /v1/frame and receive
the frame to draw. Without items in the request, the --source is loaded
(a file, a database or a URL). Frames are cached in Redis with --redis,
otherwise in the local cache directory.

Routes: GET /healthz, GET /v1/version, POST /v1/frame, GET /v1/frames,
GET /v1/frames/{name}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL for the frame cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.source, "source", "", "default item source: file, database or URL")
	cmd.Flags().StringVar(&opts.store, "store", "", "frame store: directory or mongodb:// URI (default: <cache>/frames)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	fc, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve"), c.Logger)
	defer runner.Close()

	cfg := server.Config{Runner: runner, Logger: c.Logger}

	if opts.source != "" {
		src, err := openSource(ctx, opts.source)
		if err != nil {
			return fmt.Errorf("open %s: %w", opts.source, err)
		}
		defer src.Close()
		attachCache(src, runner)
		cfg.Source = src
	}

	st, err := openFrameStore(ctx, opts.store)
	if err != nil {
		return fmt.Errorf("open frame store: %w", err)
	}
	defer st.Close()
	cfg.Store = st

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	printSuccess("Listening on %s", opts.addr)
	if cfg.Source != nil {
		printKeyValue("source", cfg.Source.Name())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// serveCache picks Redis, the file cache or no cache.
func (c *CLI) serveCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if opts.redis != "" && !opts.noCache {
		rc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	}
	return newCache(opts.noCache)
}
