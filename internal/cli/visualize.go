package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		input   string
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visualization from a computed layout",
		Long: `Render visualization from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and the
input it was computed from, and renders it to SVG, HTML, PNG or JSON. Node
positions come from the layout; labels, quotes and evidence from the input.
Nodes missing from the layout are not drawn.

Use 'render' as a shortcut to go directly from the input to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.setCLIDefaults(&opts)
			opts.Input = input
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "graph or report the layout was computed from (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("input")
	addRenderFlags(cmd, &opts)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, layoutPath string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", layoutPath, err)
	}

	// The layout decides the canvas; flags only pick artifacts.
	opts.VizType = layout.VizType
	opts.Width = layout.Width
	opts.Height = layout.Height
	opts.Compact = layout.Compact
	if opts.Selected == "" {
		opts.Selected = layout.Selected
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	loaded, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Input, err)
	}
	if opts.Title == "" {
		opts.Title = loaded.Title
	}
	opts.Subtitle = loaded.Subtitle
	opts.Notes = loaded.Notes

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", layout.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, loaded.Data, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     layoutPath,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(len(loaded.Data.Nodes), len(loaded.Data.Edges), cacheHit)
	return nil
}
