package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/render/nodelink"
	"github.com/matzehuels/scenegraph/pkg/render/svg"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Render produces every format of opts.Formats from d and its layout l.
// Formats render concurrently; only the native SVG reads d.
func Render(ctx context.Context, d *scene.Diagram, l render.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, d, l, format, opts)
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

func renderFormat(ctx context.Context, d *scene.Diagram, l render.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg.Render(d, l, svgOptions(opts)...), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, dotOptions(opts))), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l, dotOptions(opts)))
	case FormatJSON:
		var buf bytes.Buffer
		if err := l.WriteJSON(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func svgOptions(opts Options) []svg.Option {
	var out []svg.Option
	if opts.Shadows {
		out = append(out, svg.WithShadows())
	}
	if opts.ToolTips {
		out = append(out, svg.WithToolTips())
	}
	if opts.EdgeLabels {
		out = append(out, svg.WithEdgeLabels())
	}
	return out
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Unpinned: opts.Unpinned}
}
