package render

import (
	"bytes"
	"html/template"
)

const (
	PageTitle    = "United States Educational Attainment"
	PageSubtitle = "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
main { display: flex; flex-direction: column; align-items: center; justify-content: center; font-family: sans-serif; }
h1 { font-size: 3rem; font-weight: bold; margin-bottom: 1.25rem; }
</style>
</head>
<body>
<main>
<h1 id="title">{{.Title}}</h1>
<h2 id="description">{{.Subtitle}}</h2>
{{.SVG}}
</main>
</body>
</html>
`))

// Page：把 SVG 内联进独立 HTML 页面，标题与副标题固定
func Page(svg []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		Title, Subtitle string
		SVG             template.HTML
	}{PageTitle, PageSubtitle, template.HTML(svg)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
