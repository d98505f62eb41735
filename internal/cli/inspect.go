package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

// maxListWidth bounds the node list column, in terminal cells.
const maxListWidth = 60

// inspectCommand creates the inspect command that summarizes an input.
func (c *CLI) inspectCommand() *cobra.Command {
	var noNotes bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Summarize a graph or report in the terminal",
		Long: `Summarize a graph or report in the terminal.

Shows the nodes of every lane, the stock quotes of enterprise nodes and the
integrity findings (dangling edges, unknown categories, duplicate ids).
Report notes are rendered as markdown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.setCLIDefaults(&opts)
			opts.Input = args[0]
			return c.runInspect(cmd.Context(), opts, !noNotes)
		},
	}
	cmd.Flags().BoolVar(&noNotes, "no-notes", false, "skip report notes")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, notes bool) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	loaded, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Input, err)
	}
	return writeInspect(os.Stdout, loaded, notes)
}

// writeInspect prints the summary of loaded to w.
func writeInspect(w io.Writer, loaded pipeline.Loaded, notes bool) error {
	d := loaded.Data
	title := loaded.Title
	if title == "" {
		title = "Graph"
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	if loaded.Subtitle != "" {
		fmt.Fprintln(w, StyleDim.Render(loaded.Subtitle))
	}
	fmt.Fprintln(w)

	evidence := 0
	for _, e := range d.Edges {
		if e.HasEvidence() {
			evidence++
		}
	}
	fmt.Fprintln(w, keyValue("Source", loaded.Source))
	fmt.Fprintln(w, keyValue("Nodes", strconv.Itoa(len(d.Nodes))))
	fmt.Fprintln(w, keyValue("Edges", fmt.Sprintf("%d (%d with evidence)", len(d.Edges), evidence)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, laneTable(d).Render())

	if qt := quoteTable(d); qt != nil {
		fmt.Fprintln(w, qt.Render())
	}

	for _, issue := range graph.Check(d) {
		fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(issue.String()))
	}

	if notes && strings.TrimSpace(loaded.Notes) != "" {
		out, err := renderMarkdown("## Notes\n\n" + loaded.Notes)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
	}
	return nil
}

func laneTable(d graph.Data) *table.Table {
	rows := make([][]string, 0, len(graph.Categories))
	for _, cat := range graph.Categories {
		nodes := d.NodesIn(cat)
		labels := make([]string, len(nodes))
		for i, n := range nodes {
			labels[i] = n.Label
		}
		rows = append(rows, []string{
			string(cat),
			scene.Caption(cat),
			strconv.Itoa(len(nodes)),
			runewidth.Truncate(strings.Join(labels, ", "), maxListWidth, "…"),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Lane", "Caption", "Count", "Nodes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 2 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
}

// quoteTable lists the enterprise nodes that carry a quote, or returns nil
// when none does.
func quoteTable(d graph.Data) *table.Table {
	var (
		rows  [][]string
		views []quote.View
	)
	for _, n := range d.NodesIn(graph.CategoryEnterprise) {
		if n.Data.Quote == nil {
			continue
		}
		v := quote.Format(*n.Data.Quote)
		views = append(views, v)
		rows = append(rows, []string{runewidth.Truncate(n.Label, 32, "…"), v.Symbol, v.Price, v.Text()})
	}
	if len(rows) == 0 {
		return nil
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Company", "Symbol", "Price", "Change").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 3 && row < len(views) {
				return trendStyle(views[row].Direction)
			}
			return lipgloss.NewStyle()
		})
}

// renderMarkdown renders md for the terminal, wrapped at 80 columns.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}
