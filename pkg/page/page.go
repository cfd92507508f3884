// Package page defines the page value consumed by the article resolver and
// the query engine, independent of the OCR format it was decoded from.
package page

import (
	"sort"
	"strings"

	"github.com/gardar/metsmine/pkg/pagecode"
)

// Page is one recognized page: its words, their confidences and the text
// regions the OCR engine identified.
type Page struct {
	Code            string      // page code, e.g. "0000164_19010101_0001"
	Name            string      // file name the page was read from
	Words           []string    // words in reading order
	WordConfidences []string    // one numeric string per word
	CharConfidences []string    // one numeric string per character
	Blocks          []TextBlock // text regions in reading order
}

// TextBlock is a text region of a page as identified by the OCR engine.
type TextBlock struct {
	ID     string   // region identifier, matching the METS region ID
	Words  []string // words of the region in reading order
	Coords string   // "left,top,right,bottom" when known
}

// String joins the page words with single spaces.
func (p *Page) String() string { return strings.Join(p.Words, " ") }

// Sort orders pages by page code. Pages whose code does not parse keep
// their relative order after the well-formed ones.
func Sort(pages []Page) {
	parsed := make([]pagecode.Code, len(pages))
	valid := make([]bool, len(pages))
	for i := range pages {
		if c, err := pagecode.Parse(pages[i].Code); err == nil {
			parsed[i], valid[i] = c, true
		}
	}
	idx := make([]int, len(pages))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if valid[ia] != valid[ib] {
			return valid[ia]
		}
		if !valid[ia] {
			return false
		}
		return pagecode.Compare(parsed[ia], parsed[ib]) < 0
	})
	sorted := make([]Page, len(pages))
	for i, j := range idx {
		sorted[i] = pages[j]
	}
	copy(pages, sorted)
}
