package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/posts/pkg/post"
)

// PrettyPrint writes posts as a plain text table.
type PrettyPrint struct {
	// MaxColWidth truncates each cell; zero leaves cells whole.
	MaxColWidth uint
}

// Title prints an underlined heading line.
func (pp *PrettyPrint) Title(w io.Writer, title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(w, title)
}

// Posts prints a header row and one row per post, in order. An empty slice
// prints the header alone.
func (pp *PrettyPrint) Posts(w io.Writer, posts []post.Post) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.MaxColWidth > 0 {
		tbl.MaxColWidth = pp.MaxColWidth
	}
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Body"))
	for _, p := range posts {
		tbl.AddRow(strconv.Itoa(p.ID), flatten(p.Title), flatten(p.Body))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

// JSON prints posts as an indented JSON array. An empty slice prints [].
func (pp *PrettyPrint) JSON(w io.Writer, posts []post.Post) error {
	if posts == nil {
		posts = []post.Post{}
	}
	b, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
