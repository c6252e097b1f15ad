package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"
)

// RenderCategories lists the selectable categories of a dataset, with the
// range of years it covers.
func RenderCategories(name string, categories []string, years []int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("CPI categories of %s", name))
	if len(years) > 0 {
		doc.PlainText(fmt.Sprintf("%d categories, from %d to %d.", len(categories), years[0], years[len(years)-1]))
	}

	// every row has exactly the two header cells, so Table records no
	// column mismatch error.
	table := md.TableSet{
		Header: []string{"#", "Category"},
		Rows:   [][]string{},
	}
	for i, c := range categories {
		table.Rows = append(table.Rows, []string{strconv.Itoa(i + 1), c})
	}
	doc.Table(table)

	return doc.String()
}

// RenderYears lists the years available for a range selection.
func RenderYears(years []int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Available years")
	items := make([]string, 0, len(years))
	for _, y := range years {
		items = append(items, strconv.Itoa(y))
	}
	doc.BulletList(items...)

	return doc.String()
}
