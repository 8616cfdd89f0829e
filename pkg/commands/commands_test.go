package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/posts/pkg/post"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("POSTS_CONFIG_PATH", t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd := New()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func postsServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestListPrintsTable(t *testing.T) {
	srv, hits := postsServer(t, http.StatusOK, `[{"id":1,"title":"A","body":"a"},{"id":2,"title":"B","body":"b"}]`)

	out, errOut, err := execute(t, "list", "--url", srv.URL)
	require.NoError(t, err)
	assert.Empty(t, errOut)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Posts Data", lines[0])
	assert.Equal(t, []string{"ID", "Title", "Body"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "A", "a"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "B", "b"}, strings.Fields(lines[3]))
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestListJSON(t *testing.T) {
	srv, _ := postsServer(t, http.StatusOK, `[{"id":3,"title":"C","body":"c"}]`)

	out, _, err := execute(t, "list", "--json", "--url", srv.URL)
	require.NoError(t, err)
	var got []post.Post
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []post.Post{{ID: 3, Title: "C", Body: "c"}}, got)
}

func TestListFailureIsOperatorOnly(t *testing.T) {
	srv, _ := postsServer(t, http.StatusInternalServerError, `oops`)

	out, errOut, err := execute(t, "list", "--url", srv.URL)
	require.NoError(t, err, "fetch failures never fail the command")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "Title", "Body"}, strings.Fields(lines[1]))
	assert.NotContains(t, out, "500")
	assert.Equal(t, 1, strings.Count(errOut, "error fetching posts"))
}

func TestListVerboseLogsRoundTrip(t *testing.T) {
	srv, _ := postsServer(t, http.StatusOK, `[]`)

	_, errOut, err := execute(t, "list", "-v", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, errOut, "--> GET "+srv.URL)
	assert.Contains(t, errOut, "<-- 200")
}

func TestRootWithoutTerminalLists(t *testing.T) {
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })

	srv, hits := postsServer(t, http.StatusOK, `[{"id":1,"title":"A","body":"a"}]`)
	out, _, err := execute(t, "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Posts Data")
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestBadTimeoutIsReported(t *testing.T) {
	t.Setenv("POSTS_TIMEOUT", "whenever")
	_, _, err := execute(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"", "bash", "zsh", "fish", "powershell"} {
		args := []string{"completion"}
		if shell != "" {
			args = append(args, shell)
		}
		out, _, err := execute(t, args...)
		require.NoError(t, err, shell)
		assert.Contains(t, out, "posts", shell)
	}

	_, _, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
