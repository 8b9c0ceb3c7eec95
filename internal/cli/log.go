// Package cli implements the roadmap command-line interface.
//
// This package provides commands for computing timeline frames from item
// files and databases, inspecting row layouts, exploring a timeline in the
// terminal and serving frames over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a frame and write it as JSON
//   - rows: Print the row stack with dates and visibility
//   - calendar: Calendar helpers (week numbers, day spans, month bounds)
//   - import: Load an item file into a SQLite database
//   - browse: Interactive terminal timeline
//   - serve: HTTP API for frames
//   - cache: Manage the local frame cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events through the observability hooks.
//
// # Example
//
//	import "github.com/matzehuels/roadmap/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadmap/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 42 items (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline, cache and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, src string) {
	h.logger.Debug("loading items", "source", src)
}

func (h *logHooks) OnLoadComplete(_ context.Context, src string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", src, "error", err)
		return
	}
	h.logger.Debug("loaded items", "source", src, "items", n, "duration", d)
}

func (h *logHooks) OnComputeStart(_ context.Context, n int) {
	h.logger.Debug("computing frame", "items", n)
}

func (h *logHooks) OnComputeComplete(_ context.Context, s observability.ComputeStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compute failed", "error", err)
		return
	}
	h.logger.Debug("computed frame", "rows", s.Rows, "visible", s.Visible, "connectors", s.Connectors, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, id, method, route string) {
	h.logger.Debug("request", "id", id, "method", method, "path", route)
}

func (h *logHooks) OnResponse(_ context.Context, id, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "id", id, "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.ServerHooks   = (*logHooks)(nil)
)
