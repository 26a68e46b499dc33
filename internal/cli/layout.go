package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenegraph/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output  string // write layout JSON here instead of printing a table
	noCache bool
	refresh bool
}

// layoutCommand creates the layout command, which resolves every edge
// attachment of a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node bounds and edge connection points",
		Long: `Compute node bounds and edge connection points of a scene.

Without --output the attachments are printed as a table: one row per edge
with the side and point at which it leaves its source and reaches its target.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write layout JSON to this file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, path string, opts layoutOpts) error {
	ctx := cmd.Context()
	logger := sceneLogger(ctx, path)

	popts, err := sceneOptions(path)
	if err != nil {
		return err
	}
	popts.Formats = []string{pipeline.FormatJSON}
	popts.Refresh = opts.refresh
	popts.Logger = logger

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	logResult(logger, res)

	if opts.output != "" {
		if err := os.WriteFile(opts.output, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
			return fmt.Errorf("write layout: %w", err)
		}
		printSuccess("Layout written")
		printFile(opts.output)
	} else {
		printAttachmentTable(cmd.OutOrStdout(), res.Layout)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.LayoutHit)
	return nil
}
