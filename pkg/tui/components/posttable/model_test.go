package posttable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/posts/pkg/post"
	"tableflip.dev/posts/pkg/tui/events"
	"tableflip.dev/posts/pkg/tui/theme"
	"tableflip.dev/posts/pkg/tui/tuitest"
	"tableflip.dev/posts/pkg/viewstate"
)

// tableRows returns the trimmed cells of every header or body line.
func tableRows(view string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(tuitest.StripANSI(view), "\n") {
		if !strings.Contains(line, "│") {
			continue
		}
		fields := strings.Split(line, "│")
		if len(fields) != 5 {
			continue
		}
		cells := make([]string, 0, 3)
		for _, f := range fields[1:4] {
			cells = append(cells, strings.TrimSpace(f))
		}
		rows = append(rows, cells)
	}
	return rows
}

type countingFetcher struct {
	calls int32
	posts []post.Post
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context) ([]post.Post, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.posts, f.err
}

func newTestModel(f post.Fetcher, logs *bytes.Buffer) *Model {
	return New(Options{
		Fetcher: f,
		Logger:  log.New(logs, "", 0),
		Theme:   theme.Default().Table,
	})
}

func load(t *testing.T, m *Model) {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd, "first Init must schedule the fetch")
	msg := cmd()
	_, next := m.Update(msg)
	assert.Nil(t, next)
}

func TestScenarioTwoPosts(t *testing.T) {
	f := &countingFetcher{posts: []post.Post{
		{ID: 1, Title: "A", Body: "a"},
		{ID: 2, Title: "B", Body: "b"},
	}}
	var logs bytes.Buffer
	m := newTestModel(f, &logs)
	m.SetSize(80, 30)
	load(t, m)

	rows := tableRows(m.View())
	require.Equal(t, [][]string{
		{"ID", "Title", "Body"},
		{"1", "A", "a"},
		{"2", "B", "b"},
	}, rows)
	assert.Equal(t, viewstate.Populated, m.State().Status())
	assert.Empty(t, logs.String())
	assert.Contains(t, tuitest.StripANSI(m.View()), Caption)
}

func TestRowsMatchResponseOrder(t *testing.T) {
	posts := make([]post.Post, 0, 20)
	for i := 20; i > 0; i-- {
		posts = append(posts, post.Post{ID: i, Title: fmt.Sprintf("title %d", i), Body: fmt.Sprintf("body %d", i)})
	}
	m := newTestModel(&countingFetcher{posts: posts}, &bytes.Buffer{})
	m.SetSize(200, 60)
	load(t, m)

	rows := tableRows(m.View())
	require.Len(t, rows, len(posts)+1)
	for i, p := range posts {
		assert.Equal(t, []string{fmt.Sprint(p.ID), p.Title, p.Body}, rows[i+1])
	}
}

func TestEmptyResponseRendersHeaderOnly(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(&countingFetcher{posts: []post.Post{}}, &logs)
	m.SetSize(80, 30)
	load(t, m)

	assert.Equal(t, [][]string{{"ID", "Title", "Body"}}, tableRows(m.View()))
	assert.Equal(t, viewstate.Populated, m.State().Status())
	assert.Empty(t, logs.String())
}

func TestFetchFailureRendersHeaderOnlyAndLogsOnce(t *testing.T) {
	failure := &post.FetchFailure{URL: "http://example.test/posts", Err: errors.New("connection refused")}
	var logs bytes.Buffer
	m := newTestModel(&countingFetcher{err: failure}, &logs)
	m.SetSize(80, 30)
	load(t, m)

	view := m.View()
	assert.Equal(t, [][]string{{"ID", "Title", "Body"}}, tableRows(view))
	assert.NotContains(t, tuitest.StripANSI(view), "connection refused", "errors are never shown to the user")
	assert.Equal(t, viewstate.Errored, m.State().Status())
	assert.Equal(t, 1, strings.Count(logs.String(), "\n"))
	assert.Contains(t, logs.String(), "error fetching posts:")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestExactlyOneFetchPerLifetime(t *testing.T) {
	f := &countingFetcher{posts: []post.Post{{ID: 1, Title: "A", Body: "a"}}}
	m := newTestModel(f, &bytes.Buffer{})
	m.SetSize(80, 30)
	load(t, m)

	assert.Nil(t, m.Init())
	for i := 0; i < 5; i++ {
		_ = m.View()
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&f.calls))
}

func TestSecondResultIsIgnored(t *testing.T) {
	m := newTestModel(&countingFetcher{posts: []post.Post{{ID: 1, Title: "A", Body: "a"}}}, &bytes.Buffer{})
	m.SetSize(80, 30)
	load(t, m)

	m.Update(events.PostsLoadedMsg{Posts: []post.Post{{ID: 9, Title: "Z", Body: "z"}}})
	rows := tableRows(m.View())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "A", "a"}, rows[1])
}

func TestCloseCancelsInFlightFetchAndDropsResult(t *testing.T) {
	started := make(chan struct{})
	fetcher := post.FetcherFunc(func(ctx context.Context) ([]post.Post, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	var logs bytes.Buffer
	m := newTestModel(fetcher, &logs)
	cmd := m.Init()
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	<-started
	m.Close()
	msg := <-done

	loaded, ok := msg.(events.PostsLoadedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, context.Canceled)

	m.Update(msg)
	assert.Equal(t, viewstate.Loading, m.State().Status(), "no update after teardown")
	assert.Empty(t, logs.String())
	assert.Nil(t, m.Init())
}

func TestMissingFetcherIsAFailure(t *testing.T) {
	var logs bytes.Buffer
	m := newTestModel(nil, &logs)
	load(t, m)
	assert.Equal(t, viewstate.Errored, m.State().Status())
	assert.Contains(t, logs.String(), "error fetching posts")
}

func TestResponsiveContainerWidth(t *testing.T) {
	m := newTestModel(&countingFetcher{posts: []post.Post{{ID: 1, Title: "A", Body: "a"}}}, &bytes.Buffer{})
	load(t, m)

	// 75 columns at 8px is exactly the 600px breakpoint.
	m.SetSize(75, 30)
	assert.Equal(t, 75, m.ContainerWidth())
	m.SetSize(60, 30)
	assert.Equal(t, 60, m.ContainerWidth())
	m.SetSize(76, 30)
	assert.Equal(t, 38, m.ContainerWidth())
	m.SetSize(160, 30)
	assert.Equal(t, 80, m.ContainerWidth())
}

func TestViewFitsContainerWidth(t *testing.T) {
	posts := []post.Post{
		{ID: 1, Title: "sunt aut facere repellat", Body: "quia et suscipit\nsuscipit recusandae consequuntur"},
		{ID: 2, Title: "qui est esse", Body: strings.Repeat("unbrokenword", 12)},
	}
	for _, viewport := range []int{20, 40, 60, 80, 100, 120, 160} {
		t.Run(fmt.Sprintf("%d columns", viewport), func(t *testing.T) {
			m := newTestModel(&countingFetcher{posts: posts}, &bytes.Buffer{})
			m.SetSize(viewport, 30)
			load(t, m)
			m.Update(tea.KeyPressMsg{Code: tea.KeyDown})

			width := m.ContainerWidth()
			lines := strings.Split(m.View(), "\n")
			widest := 0
			for i, line := range lines {
				assert.LessOrEqual(t, lipgloss.Width(line), width, "line %d: %q", i, tuitest.StripANSI(line))
				widest = max(widest, lipgloss.Width(line))
			}
			assert.Equal(t, width, widest, "the table spans the container")
		})
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := newTestModel(&countingFetcher{}, &bytes.Buffer{})
	assert.Equal(t, "", m.View())
}

func TestNavigationScrollsWindow(t *testing.T) {
	posts := make([]post.Post, 0, 50)
	for i := 1; i <= 50; i++ {
		posts = append(posts, post.Post{ID: i, Title: fmt.Sprintf("t%d", i), Body: fmt.Sprintf("body number %d", i)})
	}
	m := newTestModel(&countingFetcher{posts: posts}, &bytes.Buffer{})
	m.SetSize(100, 20)
	load(t, m)

	visible := m.visibleRows()
	rows := tableRows(m.View())
	require.Len(t, rows, visible+1)
	assert.Equal(t, "1", rows[1][0])

	for i := 0; i < visible; i++ {
		m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, visible, m.Selected())
	rows = tableRows(m.View())
	assert.Equal(t, fmt.Sprint(visible+1), rows[len(rows)-1][0], "selection stays on screen")
	assert.Contains(t, tuitest.StripANSI(m.View()), fmt.Sprintf("body number %d", visible+1))

	m.Update(tea.KeyPressMsg{Text: "G", Code: 'G'})
	assert.Equal(t, 49, m.Selected())
	rows = tableRows(m.View())
	assert.Equal(t, "50", rows[len(rows)-1][0])

	m.Update(tea.KeyPressMsg{Text: "g", Code: 'g'})
	assert.Equal(t, 0, m.Selected())
	m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected())
}

func TestRowsProjection(t *testing.T) {
	assert.Empty(t, Rows(nil))
	assert.Equal(t, [][]string{{"7", "T", "line one\nline two"}}, Rows([]post.Post{{ID: 7, Title: "T", Body: "line one\nline two"}}))
}

func TestRenderTableFlattensAndTruncates(t *testing.T) {
	posts := []post.Post{{ID: 1, Title: "short", Body: "first line\nsecond line " + strings.Repeat("x", 200)}}
	out := RenderTable(posts, 40, theme.Default().Table, All(len(posts)))
	rows := tableRows(out)
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[1][2], "first line second"), "got %q", rows[1][2])
	assert.True(t, strings.HasSuffix(rows[1][2], "…"))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestRenderTableClampsToMinWidth(t *testing.T) {
	posts := []post.Post{{ID: 1, Title: "Title", Body: "Body"}}
	require.Equal(t, 14, MinWidth(posts))

	for _, tc := range []struct{ width, want int }{{20, 20}, {14, 14}, {8, 14}} {
		out := RenderTable(posts, tc.width, theme.Default().Table, All(len(posts)))
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, tc.want, lipgloss.Width(line), "width %d: %q", tc.width, tuitest.StripANSI(line))
		}
		assert.Len(t, tableRows(out), 2)
	}
}

func TestQuitBindingMatchesFooter(t *testing.T) {
	m := newTestModel(&countingFetcher{}, &bytes.Buffer{})
	assert.Equal(t, []string{"q", "ctrl+c"}, m.QuitBinding().Keys())
	assert.Contains(t, m.keys.ShortHelp(), m.QuitBinding())
}
