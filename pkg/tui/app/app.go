// Package teaui hosts the Bubble Tea program for the posts TUI.
package teaui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/posts/pkg/post"
	"tableflip.dev/posts/pkg/tui/components/posttable"
	"tableflip.dev/posts/pkg/tui/theme"
)

// Heading is the page title drawn above the table.
const Heading = "Data Table"

// Options configures the root program.
type Options struct {
	Fetcher   post.Fetcher
	Logger    *log.Logger
	Theme     theme.Theme
	CellWidth int
}

// Model is the root Bubble Tea model. It mounts the post table under a
// centered heading and owns the context the table's fetch runs in.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	table   *posttable.Model
	heading lipgloss.Style

	width  int
	height int
}

// New constructs the root model. Nothing is fetched until Init.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	table := posttable.New(posttable.Options{
		Fetcher:   opts.Fetcher,
		Context:   ctx,
		Logger:    opts.Logger,
		Theme:     opts.Theme.Table,
		CellWidth: opts.CellWidth,
	})
	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		table:   table,
		heading: opts.Theme.Heading,
	}
}

// Run launches the interactive TUI program and tears the view down when it
// exits, abandoning a fetch still in flight.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Table returns the mounted post table.
func (m *Model) Table() *posttable.Model {
	return m.table
}

// Close tears the view down.
func (m *Model) Close() {
	m.table.Close()
	m.cancel()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.table.Init()
}

// Update routes Bubble Tea messages to the table.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.table.SetSize(v.Width, max(0, v.Height-m.headingHeight()))
		return m, nil
	case tea.KeyPressMsg:
		if key.Matches(v, m.table.QuitBinding()) {
			m.Close()
			return m, tea.Quit
		}
	}

	next, cmd := m.table.Update(msg)
	if t, ok := next.(*posttable.Model); ok {
		m.table = t
	}
	return m, cmd
}

// View renders the heading and the table, each centered in the viewport.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width == 0 || m.height == 0 {
		return "Resizing…", nil
	}
	heading := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.heading.Render(Heading))
	body := m.table.View()
	if body == "" {
		return heading, nil
	}
	body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, heading, body), nil
}

func (m *Model) headingHeight() int {
	return lipgloss.Height(m.heading.Render(Heading))
}
