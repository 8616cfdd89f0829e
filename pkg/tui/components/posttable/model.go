// Package posttable implements the post table view: it fetches the posts
// once, holds them in a ViewState and renders them as a responsive table.
package posttable

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/posts/pkg/layout"
	"tableflip.dev/posts/pkg/post"
	"tableflip.dev/posts/pkg/tui/events"
	"tableflip.dev/posts/pkg/tui/theme"
	"tableflip.dev/posts/pkg/tui/ui"
	"tableflip.dev/posts/pkg/viewstate"
)

// Caption is drawn above the table.
const Caption = "Posts Data"

const (
	captionRows = 1
	tableChrome = 4 // top border, header, header rule, bottom border
	detailRows  = 3
	helpRows    = 1
)

var errNoFetcher = errors.New("no posts fetcher configured")

// Options configures a Model.
type Options struct {
	// Fetcher performs the one request. Required.
	Fetcher post.Fetcher
	// Context bounds the request; Close cancels a child of it.
	Context context.Context
	// Logger receives fetch diagnostics. Defaults to log.Default().
	Logger *log.Logger
	Theme  theme.TableTheme
	// CellWidth is the logical pixel width of one terminal column.
	CellWidth int
}

// Model is the post table view. It issues exactly one fetch in its lifetime.
type Model struct {
	state   *viewstate.ViewState
	fetcher post.Fetcher
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *log.Logger
	styles  theme.TableTheme
	keys    keyMap
	help    help.Model

	requested bool
	closed    bool

	cellWidth int
	width     int
	height    int

	selected int
	offset   int
}

var _ ui.Component = (*Model)(nil)
var _ ui.Closer = (*Model)(nil)

// New constructs a view with an empty ViewState. Nothing is fetched until
// Init runs.
func New(opts Options) *Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cellWidth := opts.CellWidth
	if cellWidth <= 0 {
		cellWidth = layout.DefaultCellWidth
	}
	return &Model{
		state:     viewstate.New(),
		fetcher:   opts.Fetcher,
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		styles:    opts.Theme,
		keys:      defaultKeyMap(),
		help:      help.New(),
		cellWidth: cellWidth,
	}
}

// State exposes the view's posts for rendering and inspection.
func (m *Model) State() *viewstate.ViewState {
	return m.state
}

// Init implements ui.Component. The first call returns the fetch command;
// every later call returns nil.
func (m *Model) Init() tea.Cmd {
	if m.requested || m.closed {
		return nil
	}
	m.requested = true
	return fetchPosts(m.ctx, m.fetcher)
}

func fetchPosts(ctx context.Context, fetcher post.Fetcher) tea.Cmd {
	return func() tea.Msg {
		if fetcher == nil {
			return events.PostsLoadedMsg{Err: errNoFetcher}
		}
		posts, err := fetcher.Fetch(ctx)
		return events.PostsLoadedMsg{Posts: posts, Err: err}
	}
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case events.PostsLoadedMsg:
		m.apply(v)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(v, m.keys.Down):
			m.move(1)
		case key.Matches(v, m.keys.Up):
			m.move(-1)
		case key.Matches(v, m.keys.PageDown):
			m.move(m.visibleRows())
		case key.Matches(v, m.keys.PageUp):
			m.move(-m.visibleRows())
		case key.Matches(v, m.keys.Top):
			m.move(-m.state.Len())
		case key.Matches(v, m.keys.Bottom):
			m.move(m.state.Len())
		}
	}
	return m, nil
}

// apply is the only place fetch results reach the ViewState.
func (m *Model) apply(msg events.PostsLoadedMsg) {
	if m.closed {
		return
	}
	if msg.Err != nil {
		m.logger.Printf("error fetching posts: %v", msg.Err)
		m.state.Resolve(nil, msg.Err)
		return
	}
	m.state.Resolve(msg.Posts, nil)
	m.selected = 0
	m.offset = 0
}

// Close abandons an in-flight fetch. Results arriving afterwards are dropped.
func (m *Model) Close() {
	m.closed = true
	m.cancel()
}

// SetSize implements ui.Component. width and height describe the whole
// viewport; the table takes the share its layout allows.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToSelection()
}

// Layout reports the container rule for the current viewport width.
func (m *Model) Layout() layout.Layout {
	return layout.ForColumns(m.width, m.cellWidth)
}

// ContainerWidth is the width in columns the table is drawn at.
func (m *Model) ContainerWidth() int {
	return m.Layout().ContainerWidth(m.width)
}

// View implements ui.Component. No line is wider than ContainerWidth.
func (m *Model) View() string {
	width := m.ContainerWidth()
	if width <= 0 {
		return ""
	}
	posts := m.state.Posts()
	win := m.window(len(posts))

	caption := m.styles.Caption.Width(width).Align(lipgloss.Center).Render(Caption)
	parts := []string{caption, RenderTable(posts, width, m.styles, win)}
	if len(posts) > 0 {
		parts = append(parts, m.detailView(posts[m.selected].Body, width))
	}
	m.help.Width = width
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) detailView(body string, width int) string {
	flat := strings.Join(strings.Fields(body), " ")
	lines := strings.Split(wrap.String(wordwrap.String(flat, width), width), "\n")
	if len(lines) > detailRows {
		lines = lines[:detailRows]
	}
	return m.styles.Detail.Render(strings.Join(lines, "\n"))
}

func (m *Model) window(n int) Window {
	if n == 0 {
		return Window{Selected: -1}
	}
	end := m.offset + m.visibleRows()
	if end > n {
		end = n
	}
	return Window{Start: m.offset, End: end, Selected: m.selected}
}

// visibleRows is the number of table rows that fit the viewport height.
// Before the height is known every row is drawn.
func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return max(1, m.state.Len())
	}
	return max(1, m.height-captionRows-tableChrome-detailRows-helpRows)
}

func (m *Model) move(delta int) {
	n := m.state.Len()
	if n == 0 {
		return
	}
	m.selected = clamp(m.selected+delta, 0, n-1)
	m.scrollToSelection()
}

func (m *Model) scrollToSelection() {
	visible := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	m.offset = clamp(m.offset, 0, max(0, m.state.Len()-visible))
}

// QuitBinding is the key binding that ends the program. The footer lists it.
func (m *Model) QuitBinding() key.Binding {
	return m.keys.Quit
}

// Selected returns the index of the highlighted row.
func (m *Model) Selected() int {
	return m.selected
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f", "space"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Top, k.Bottom, k.Quit}
}

func clamp(value, lower, upper int) int {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
