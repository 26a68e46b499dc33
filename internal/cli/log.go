// Package cli implements the scenegraph command-line interface.
//
// The commands read a scene document (TOML or JSON), compute where every
// edge attaches to its endpoints, and write layouts and rendered artifacts.
// The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - layout: Compute edge attachments and print them as a table
//   - render: Write SVG, DOT, Graphviz SVG, or layout JSON artifacts
//   - inspect: Browse a node's attachments interactively
//   - serve: Run the HTTP layout service
//   - snapshot: Save, list, and restore diagram revisions
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenegraph/pkg/pipeline"
)

// newLogger creates the CLI logger: timestamps as "15:04:05.00", records
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// sceneLogger returns the context logger with every record tagged by the
// scene file being processed.
func sceneLogger(ctx context.Context, path string) *log.Logger {
	return loggerFromContext(ctx).With("scene", path)
}

// logResult records the per-stage timings of a pipeline run at debug level;
// the runner already reports each stage at info.
func logResult(l *log.Logger, res *pipeline.Result) {
	l.Debug("pipeline done",
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"load", res.Stats.LoadTime,
		"layout", res.Stats.LayoutTime,
		"render", res.Stats.RenderTime,
		"layout_cached", res.CacheInfo.LayoutHit,
		"render_cached", res.CacheInfo.RenderHit)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when no logger is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
