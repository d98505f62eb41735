package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	laneStyle   = lipgloss.NewStyle().Padding(0, 2, 0, 0)
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// laneLabelWidth bounds node labels in the lane columns, in terminal cells.
const laneLabelWidth = 22

// =============================================================================
// Key bindings
// =============================================================================

type exploreKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Copy   key.Binding
	Write  key.Binding
	Quit   key.Binding
}

func defaultExploreKeys() exploreKeys {
	return exploreKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "lane")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "lane")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "select")),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy citation")),
		Write:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write svg")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Copy, k.Write, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// =============================================================================
// ExploreModel - Interactive graph browser
// =============================================================================

// ExploreModel is the bubbletea model of the explore command. Nodes are
// browsed lane by lane; toggling a node follows the same rules as clicking
// it in the rendered chart.
type ExploreModel struct {
	title string
	sc    *scene.Scene
	lanes [][]graph.Node
	lane  int
	row   int

	keys   exploreKeys
	help   help.Model
	width  int
	status string
	failed bool

	copy  func(string) error
	write func(selected string) (string, error)
}

// NewExploreModel creates an explore model over sc. copyFn places text on the
// clipboard; writeFn renders the chart with the given selection and returns
// the written path.
func NewExploreModel(title string, sc *scene.Scene, copyFn func(string) error, writeFn func(string) (string, error)) ExploreModel {
	d := sc.Data()
	var lanes [][]graph.Node
	for _, cat := range graph.Categories {
		if nodes := d.NodesIn(cat); len(nodes) > 0 {
			lanes = append(lanes, nodes)
		}
	}
	return ExploreModel{
		title: title,
		sc:    sc,
		lanes: lanes,
		keys:  defaultExploreKeys(),
		help:  help.New(),
		copy:  copyFn,
		write: writeFn,
	}
}

// Current returns the node under the cursor.
func (m ExploreModel) Current() (graph.Node, bool) {
	if len(m.lanes) == 0 {
		return graph.Node{}, false
	}
	return m.lanes[m.lane][m.row], true
}

// Selected returns the selected node id, or "" if none.
func (m ExploreModel) Selected() string { return m.sc.Selected() }

// Status returns the last status message.
func (m ExploreModel) Status() string { return m.status }

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, m.keys.Down):
			if len(m.lanes) > 0 && m.row < len(m.lanes[m.lane])-1 {
				m.row++
			}
		case key.Matches(msg, m.keys.Left):
			if m.lane > 0 {
				m.moveLane(m.lane - 1)
			}
		case key.Matches(msg, m.keys.Right):
			if m.lane < len(m.lanes)-1 {
				m.moveLane(m.lane + 1)
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		case key.Matches(msg, m.keys.Copy):
			m.copyCitation()
		case key.Matches(msg, m.keys.Write):
			m.writeChart()
		}
	}
	return m, nil
}

// moveLane switches lanes, keeping the row within the new lane.
func (m *ExploreModel) moveLane(lane int) {
	m.lane = lane
	if last := len(m.lanes[lane]) - 1; m.row > last {
		m.row = last
	}
}

func (m *ExploreModel) toggle() {
	n, ok := m.Current()
	if !ok {
		return
	}
	m.sc = m.sc.Snapshot()
	if m.sc.Toggle(n.ID) {
		m.setStatus(false, "selected %s", n.Label)
	} else {
		m.setStatus(false, "cleared selection")
	}
}

func (m *ExploreModel) copyCitation() {
	n, ok := m.Current()
	if !ok {
		return
	}
	url := firstCitation(m.sc.Data(), n)
	if url == "" {
		m.setStatus(true, "%s has no citation", n.Label)
		return
	}
	if m.copy == nil {
		return
	}
	if err := m.copy(url); err != nil {
		m.setStatus(true, "clipboard: %v", err)
		return
	}
	m.setStatus(false, "copied %s", url)
}

func (m *ExploreModel) writeChart() {
	if m.write == nil {
		return
	}
	path, err := m.write(m.sc.Selected())
	if err != nil {
		m.setStatus(true, "write: %v", err)
		return
	}
	m.setStatus(false, "wrote %s", path)
}

func (m *ExploreModel) setStatus(failed bool, format string, args ...any) {
	m.failed = failed
	m.status = fmt.Sprintf(format, args...)
}

// firstCitation returns the first evidence URL of n, falling back to the
// evidence of the edges touching n.
func firstCitation(d graph.Data, n graph.Node) string {
	for _, ev := range n.Data.Evidence {
		if ev.URL != "" {
			return ev.URL
		}
	}
	for _, e := range d.Edges {
		if e.Source != n.ID && e.Target != n.ID {
			continue
		}
		for _, ev := range e.Data.Evidence {
			if ev.URL != "" {
				return ev.URL
			}
		}
	}
	return ""
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.lanes) == 0 {
		b.WriteString(listDimStyle.Render("no nodes"))
		b.WriteString("\n")
		return b.String()
	}

	cols := make([]string, len(m.lanes))
	for i, nodes := range m.lanes {
		cols[i] = laneStyle.Render(m.laneView(i, nodes))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	if n, ok := m.Current(); ok {
		b.WriteString(detailStyle.Render(m.detailView(n)))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.failed {
			b.WriteString(styleIconError.Render(iconError) + " " + m.status)
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + listDimStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ExploreModel) laneView(lane int, nodes []graph.Node) string {
	var b strings.Builder
	b.WriteString(styleHeader.UnsetPadding().Render(scene.Caption(nodes[0].Category)))
	b.WriteString("\n")
	for i, n := range nodes {
		cursor := "  "
		if lane == m.lane && i == m.row {
			cursor = "▸ "
		}
		mark := " "
		if m.sc.IsSelected(n.ID) {
			mark = "●"
		}
		line := cursor + mark + " " + runewidth.Truncate(n.Label, laneLabelWidth, "…")

		switch {
		case lane == m.lane && i == m.row:
			b.WriteString(listSelectedStyle.Render(line))
		case m.sc.IsSelected(n.ID):
			b.WriteString(StyleHighlight.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m ExploreModel) detailView(n graph.Node) string {
	t := scene.NodeTooltipFor(n)

	var b strings.Builder
	b.WriteString(StyleValue.Bold(true).Render(t.Title))
	if t.Caption != "" {
		b.WriteString("  " + listDimStyle.Render(t.Caption))
	}
	b.WriteString("\n")

	if t.HasQuote() {
		q := t.Quote
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			listDimStyle.Render(scene.PriceLabel), StyleValue.Render(q.Price), trendStyle(q.Direction).Render(q.Text())))
	}
	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	if len(t.Evidence) > 0 {
		b.WriteString(listDimStyle.Render(t.EvidenceHeading))
		b.WriteString("\n")
		for _, ev := range t.Evidence {
			b.WriteString("  " + ev.Title + " " + StyleLink.Render(ev.URL) + "\n")
		}
	}

	d := m.sc.Data()
	for _, e := range d.Edges {
		if e.Source != n.ID {
			continue
		}
		target, ok := d.Node(e.Target)
		if !ok {
			continue
		}
		line := iconArrow + " " + target.Label
		if e.HasEvidence() {
			line += listDimStyle.Render(fmt.Sprintf(" (%s %d)", scene.EdgeEvidence, len(e.Data.Evidence)))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
