package renderer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48em; margin: 2em auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; }
img { max-width: 100%%; }
</style>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

// HTML converts a markdown report into a standalone HTML page.
func HTML(title, md string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlHeader, html.EscapeString(title))
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("error converting markdown to html: %w", err)
	}
	buf.WriteString(htmlFooter)
	return buf.Bytes(), nil
}
