package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenegraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // base path; each format appends its extension
	formats    string // comma-separated output formats
	shadows    bool   // drop shadows under nodes (svg)
	toolTips   bool   // node tool tips as <title> (svg)
	edgeLabels bool   // draw edge labels (svg)
	detailed   bool   // node kinds in labels (dot, graphviz)
	unpinned   bool   // let Graphviz place nodes (dot, graphviz)
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command for producing artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a scene to SVG, DOT, or layout JSON",
		Long: `Render a scene to one or more formats:

  svg       SVG drawn from node content with edges at their attachment points
  dot       Graphviz DOT with pinned node positions and compass ports
  graphviz  SVG rendered by Graphviz from the DOT export
  json      layout JSON

Outputs are written next to the input unless --output names a base path.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, dot, graphviz, json (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().BoolVar(&opts.shadows, "shadows", false, "draw drop shadows (svg)")
	cmd.Flags().BoolVar(&opts.toolTips, "tooltips", false, "add node tool tips (svg)")
	cmd.Flags().BoolVar(&opts.edgeLabels, "labels", false, "draw edge labels (svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kinds (dot, graphviz)")
	cmd.Flags().BoolVar(&opts.unpinned, "unpinned", false, "let Graphviz place nodes (dot, graphviz)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := sceneLogger(ctx, path)

	popts, err := sceneOptions(path)
	if err != nil {
		return err
	}
	c.applyRenderFlags(cmd, &popts, opts)
	popts.Logger = logger
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if slices.Contains(popts.Formats, pipeline.FormatGraphviz) {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Running Graphviz...")
		spinner.Start()
	}
	res, err := runner.Execute(ctx, popts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	logResult(logger, res)

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}
	printSuccess("Rendered %s", path)
	for _, format := range popts.Formats {
		out := base + pipeline.Extension(format)
		if err := os.WriteFile(out, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		printFile(out)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)
	return nil
}

// applyRenderFlags merges the [render] config section with the flags;
// flags that were set explicitly win.
func (c *CLI) applyRenderFlags(cmd *cobra.Command, popts *pipeline.Options, opts renderOpts) {
	cfg := c.config.Render
	popts.Formats = cfg.Formats
	if opts.formats != "" {
		popts.Formats = pipeline.ParseFormats(opts.formats)
	}
	popts.Shadows = flagOr(cmd, "shadows", opts.shadows, cfg.Shadows)
	popts.ToolTips = flagOr(cmd, "tooltips", opts.toolTips, cfg.ToolTips)
	popts.EdgeLabels = flagOr(cmd, "labels", opts.edgeLabels, cfg.EdgeLabels)
	popts.Detailed = opts.detailed
	popts.Unpinned = opts.unpinned
	popts.Refresh = opts.refresh
}

func flagOr(cmd *cobra.Command, name string, flag, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		return flag
	}
	return fallback
}
