package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
	"github.com/matzehuels/influencegraph/pkg/render"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

// exploreCommand creates the explore command, an interactive node browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [input]",
		Short: "Browse a graph interactively in the terminal",
		Long: `Browse a graph interactively in the terminal.

Move between lanes with ←/→ and between nodes with ↑/↓. Enter selects the
node under the cursor and highlights it together with its connections; a
second enter clears the selection. 'c' copies the first citation of the
node, 'w' writes the chart with the current selection as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.setCLIDefaults(&opts)
			opts.Input = args[0]
			opts.VizType = graph.VizTypeLanes
			return c.runExplore(cmd.Context(), opts, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "base path for charts written with 'w'")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	loaded, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Input, err)
	}
	gl, _, err := runner.GenerateLayoutWithCacheInfo(ctx, loaded.Data, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	l, err := layout.Parse(gl)
	if err != nil {
		return err
	}

	title := loaded.Title
	if title == "" {
		title = opts.Input
	}
	opts.Title = loaded.Title
	opts.Subtitle = loaded.Subtitle
	opts.Notes = loaded.Notes

	write := func(selected string) (string, error) {
		o := opts
		o.Selected = selected
		o.Formats = []string{string(render.FormatSVG)}
		artifacts, err := runner.Render(ctx, gl, loaded.Data, o)
		if err != nil {
			return "", err
		}
		path := basePath(output, opts.Input) + render.FormatSVG.Ext()
		if err := os.WriteFile(path, artifacts[string(render.FormatSVG)], 0o644); err != nil {
			return "", err
		}
		return path, nil
	}

	sc := scene.New(loaded.Data, scene.WithLayout(l), scene.WithSelected(opts.Selected))
	model := NewExploreModel(title, sc, clipboard.WriteAll, write)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}
