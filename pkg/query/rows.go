package query

import (
	"strings"

	"github.com/gardar/metsmine/pkg/mets"
	"github.com/gardar/metsmine/pkg/page"
)

// PageRow is one page exported as normalized text together with the
// metadata of its document.
type PageRow struct {
	Title      string `json:"title" yaml:"title"`
	Year       int    `json:"year,omitempty" yaml:"year,omitempty"`
	Place      string `json:"place" yaml:"place"`
	Archive    string `json:"archive" yaml:"archive"`
	PageName   string `json:"page_name" yaml:"page_name"`
	PageCode   string `json:"page_code" yaml:"page_code"`
	NumPages   int    `json:"num_pages" yaml:"num_pages"`
	Preprocess string `json:"preprocess" yaml:"preprocess"`
	PageString string `json:"page_string" yaml:"page_string"`
	NumWords   int    `json:"num_words" yaml:"num_words"`
}

// PageString normalizes every word of p and joins the non-empty results
// with single spaces.
func PageString(p *page.Page, norm Normalizer) string {
	norm = orNone(norm)
	words := make([]string, 0, len(p.Words))
	for _, w := range p.Words {
		if n := norm(w); n != "" {
			words = append(words, n)
		}
	}
	return strings.Join(words, " ")
}

// PageRows builds one row per page. preprocess is the name of norm and is
// recorded on every row.
func PageRows(doc *mets.Document, pages []page.Page, norm Normalizer, preprocess string) []PageRow {
	rows := make([]PageRow, 0, len(pages))
	for i := range pages {
		p := &pages[i]
		row := PageRow{
			Title:      doc.Title,
			Place:      doc.Place,
			Archive:    doc.Archive,
			PageName:   p.Name,
			PageCode:   p.Code,
			NumPages:   doc.NumPages(),
			Preprocess: preprocess,
			PageString: PageString(p, norm),
			NumWords:   len(p.Words),
		}
		if doc.HasYear {
			row.Year = doc.Year
		}
		rows = append(rows, row)
	}
	return rows
}
