package posttable

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/posts/pkg/post"
	"tableflip.dev/posts/pkg/tui/theme"
)

// Headers are the fixed column labels.
var Headers = []string{"ID", "Title", "Body"}

const (
	// borderColumns is the horizontal space taken by the outer borders and
	// the two column separators.
	borderColumns = 4
	cellPadding   = 2
	// minTextColumn keeps one content cell in the title and body columns.
	minTextColumn = cellPadding + 1
)

// Window selects the rows drawn on screen. Start and End index into the full
// post sequence; Selected is an absolute index, or -1 for no selection.
type Window struct {
	Start    int
	End      int
	Selected int
}

// All returns a window covering n rows with nothing selected.
func All(n int) Window {
	return Window{Start: 0, End: n, Selected: -1}
}

// Rows projects posts into table rows: one row per post, in order, with the
// id, title and body columns.
func Rows(posts []post.Post) [][]string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Title, p.Body})
	}
	return rows
}

// RenderTable draws the rows of posts covered by win into a bordered table
// exactly width columns wide. The header row is always drawn. Below
// MinWidth(posts) the table is drawn at that minimum.
func RenderTable(posts []post.Post, width int, styles theme.TableTheme, win Window) string {
	win = clampWindow(win, len(posts))
	widths := columnWidths(posts, width)

	headers := make([]string, len(Headers))
	for col, h := range Headers {
		headers[col] = fitCell(h, widths[col]-cellPadding)
	}

	rows := Rows(posts[win.Start:win.End])
	for _, row := range rows {
		for col := range row {
			row[col] = fitCell(row[col], widths[col]-cellPadding)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			abs := win.Start + row
			switch {
			case row == table.HeaderRow:
				s = styles.Header
			case abs == win.Selected:
				s = styles.Selected
			case abs%2 == 1:
				s = styles.Stripe
			default:
				s = styles.Cell
			}
			if col < 0 || col >= len(widths) {
				return s
			}
			return s.Width(widths[col])
		})
	return t.Render()
}

// MinWidth is the narrowest table RenderTable can draw for posts: the id
// column plus one content cell each for title and body.
func MinWidth(posts []post.Post) int {
	return borderColumns + idColumn(posts) + 2*minTextColumn
}

func idColumn(posts []post.Post) int {
	idText := len(Headers[0])
	for _, p := range posts {
		if n := len(strconv.Itoa(p.ID)); n > idText {
			idText = n
		}
	}
	return idText + cellPadding
}

// columnWidths sizes the id column to its widest value and splits the rest
// two to three between title and body.
func columnWidths(posts []post.Post, width int) []int {
	id := idColumn(posts)
	rest := max(width-borderColumns-id, 2*minTextColumn)
	title := max(rest*2/5, minTextColumn)
	return []int{id, title, rest - title}
}

// fitCell flattens whitespace, including the newlines bodies carry, and
// truncates to width cells.
func fitCell(s string, width int) string {
	flat := strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(flat) <= width {
		return flat
	}
	return truncate.StringWithTail(flat, uint(width), "…")
}

func clampWindow(win Window, n int) Window {
	if win.Start < 0 {
		win.Start = 0
	}
	if win.End > n {
		win.End = n
	}
	if win.Start > win.End {
		win.Start = win.End
	}
	return win
}
