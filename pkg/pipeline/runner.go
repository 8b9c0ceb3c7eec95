package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadmap/pkg/cache"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/observability"
	"github.com/matzehuels/roadmap/pkg/source"
)

// Runner encapsulates cycle execution with caching.
// The CLI, the browser and the server all use it.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store frames. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads items from src and computes a frame.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	items, err := r.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Items = items
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded items",
		"source", src.Name(),
		"items", len(items),
		"duration", result.Stats.LoadTime)

	// Stage 2: Compute
	computeStart := time.Now()
	f, hit, err := r.ComputeWithCacheInfo(ctx, items, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Frame = f
	result.Stats.ComputeTime = time.Since(computeStart)
	result.CacheInfo.FrameHit = hit
	result.ItemsHash, _ = ItemsHash(items)

	r.Logger.Info("computed frame",
		"rows", f.Stats.Rows,
		"visible", f.Stats.Visible,
		"connectors", f.Stats.Connectors,
		"cached", hit,
		"duration", result.Stats.ComputeTime)

	return result, nil
}

// Load reads a snapshot from src, reporting to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, src source.Source) ([]item.Item, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Name())

	start := time.Now()
	items, err := src.Load(ctx)
	hooks.OnLoadComplete(ctx, src.Name(), len(items), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ComputeWithCacheInfo computes a frame with caching and returns cache hit info.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, items []item.Item, opts Options) (*frame.Frame, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Compute cache key
	cacheKey, err := r.frameKey(items, &opts)
	if err != nil {
		return nil, false, fmt.Errorf("cache key: %w", err)
	}

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if f, err := frame.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "frame")
				f.Stats.Cached = true
				return &f, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "frame")
	}

	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, len(items))
	start := time.Now()
	f, err := Compute(items, opts)
	var stats observability.ComputeStats
	if f != nil {
		stats = observability.ComputeStats{
			Items:      f.Stats.Items,
			Rows:       f.Stats.Rows,
			Visible:    f.Stats.Visible,
			Connectors: f.Stats.Connectors,
		}
	}
	hooks.OnComputeComplete(ctx, stats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := frame.Marshal(*f); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLFrame); err == nil {
			observability.Cache().OnCacheSet(ctx, "frame", len(data))
		} else {
			r.Logger.Debug("frame not cached", "error", err)
		}
	}

	return f, false, nil // Cache miss
}

// Compute is a convenience wrapper that calls ComputeWithCacheInfo and discards the cache hit info.
func (r *Runner) Compute(ctx context.Context, items []item.Item, opts Options) (*frame.Frame, error) {
	f, _, err := r.ComputeWithCacheInfo(ctx, items, opts)
	return f, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) frameKey(items []item.Item, opts *Options) (string, error) {
	itemsHash, err := ItemsHash(items)
	if err != nil {
		return "", err
	}
	keyOpts, err := opts.FrameKeyOpts()
	if err != nil {
		return "", err
	}
	return r.Keyer.FrameKey(itemsHash, keyOpts), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// ItemsHash returns the content hash of a snapshot in its serialized form.
func ItemsHash(items []item.Item) (string, error) {
	recs := make([]item.Record, len(items))
	for i, it := range items {
		recs[i] = item.FromItem(it)
	}
	return cache.HashJSON(recs)
}
