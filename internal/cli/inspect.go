package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenegraph/pkg/pipeline"
	"github.com/matzehuels/scenegraph/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the interactive node browser.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "inspect [file]",
		Short:             "Browse nodes and their edge attachments interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			popts, err := sceneOptions(args[0])
			if err != nil {
				return err
			}
			popts.Formats = []string{pipeline.FormatJSON}
			popts.Logger = sceneLogger(ctx, args[0])

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(ctx, popts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewInspectModel(args[0], res.Layout), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

// =============================================================================
// InspectModel - Interactive node browser
// =============================================================================

// Attachment is one edge end at the inspected node.
type Attachment struct {
	Peer  string // label of the node at the other end
	Label string
	Role  string // "out", "in", or "loop"
	Side  string
	Point render.Point
}

// InspectModel is the bubbletea model of the inspect command.
type InspectModel struct {
	Title  string
	Layout render.Layout
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates a browser over l.
func NewInspectModel(title string, l render.Layout) InspectModel {
	return InspectModel{Title: title, Layout: l, Height: 12}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/2-4, 3)
	}
	return m, nil
}

// Attachments returns the edge ends at the node under the cursor in
// layout order.
func (m InspectModel) Attachments() []Attachment {
	if len(m.Layout.Nodes) == 0 {
		return nil
	}
	id := m.Layout.Nodes[m.Cursor].ID
	label := func(i int) string { return m.Layout.Nodes[i].Label }

	var out []Attachment
	for _, e := range m.Layout.Edges {
		switch {
		case e.SelfLoop && e.From == id:
			out = append(out, Attachment{Peer: label(e.FromIndex), Label: e.Label, Role: "loop", Side: e.FromSide, Point: e.Start})
		case e.From == id:
			out = append(out, Attachment{Peer: label(e.ToIndex), Label: e.Label, Role: "out", Side: e.FromSide, Point: e.Start})
		case e.To == id:
			out = append(out, Attachment{Peer: label(e.FromIndex), Label: e.Label, Role: "in", Side: e.ToSide, Point: e.End})
		}
	}
	return out
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Layout.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (no nodes)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Layout.Nodes))
	for i := m.Offset; i < end; i++ {
		n := m.Layout.Nodes[i]
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", n.Depth), n.Label, listDimStyle.Render(string(n.Kind)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ ") + listSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	n := m.Layout.Nodes[m.Cursor]
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("bounds (%.1f, %.1f) %.1f×%.1f", n.X, n.Y, n.Width, n.Height)))
	if n.ToolTip != "" {
		b.WriteString(StyleDim.Render("  · " + n.ToolTip))
	}
	b.WriteString("\n")

	rows := [][]string{}
	for _, a := range m.Attachments() {
		rows = append(rows, []string{a.Role, a.Peer, a.Label, a.Side, fmtPoint(a.Point)})
	}
	if len(rows) == 0 {
		b.WriteString(listDimStyle.Render("  no edges"))
	} else {
		b.WriteString(table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("", "Peer", "Label", "Side", "Point").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tableHeaderStyle
				}
				return lipgloss.NewStyle()
			}).
			Render())
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Nodes))))

	return b.String()
}
