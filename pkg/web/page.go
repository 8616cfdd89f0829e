package web

import (
	"html/template"
	"io"

	"tableflip.dev/posts/pkg/layout"
	"tableflip.dev/posts/pkg/post"
)

// pageData is everything the page template reads.
type pageData struct {
	Heading     string
	Caption     string
	Headers     []string
	Posts       []post.Post
	Breakpoint  int
	NarrowWidth int
	WideWidth   int
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Heading}}</title>
<style>
body { font-family: sans-serif; margin: 0; }
h1 { text-align: center; margin-top: 1.5rem; }
.table-container { width: {{.WideWidth}}%; margin: 0 auto; box-shadow: 0 0.5rem 1rem rgba(0,0,0,.15); border-radius: 0.5rem; }
@media (max-width: {{.Breakpoint}}px) { .table-container { width: {{.NarrowWidth}}%; } }
caption { caption-side: top; font-weight: bold; padding: 0.5rem; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #dee2e6; padding: 0.5rem; text-align: left; vertical-align: top; }
tbody tr:nth-of-type(odd) { background-color: rgba(0,0,0,.05); }
</style>
</head>
<body>
<h1>{{.Heading}}</h1>
<div class="table-container">
<table>
<caption>{{.Caption}}</caption>
<thead>
<tr>{{range .Headers}}<th><strong>{{.}}</strong></th>{{end}}</tr>
</thead>
<tbody>
{{- range .Posts}}
<tr data-key="{{.ID}}"><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Body}}</td></tr>
{{- end}}
</tbody>
</table>
</div>
</body>
</html>
`))

// renderPage writes the full page for posts.
func renderPage(w io.Writer, posts []post.Post) error {
	return pageTemplate.Execute(w, pageData{
		Heading:     "Data Table",
		Caption:     "Posts Data",
		Headers:     []string{"ID", "Title", "Body"},
		Posts:       posts,
		Breakpoint:  layout.Breakpoint,
		NarrowWidth: layout.Narrow.Percent(),
		WideWidth:   layout.Wide.Percent(),
	})
}
