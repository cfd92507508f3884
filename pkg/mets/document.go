package mets

import (
	"errors"
	"fmt"
	"io"

	"github.com/gardar/metsmine/pkg/dates"
	"github.com/gardar/metsmine/pkg/pagecode"
)

// Document is one archive entry: its descriptive metadata, its pages in
// order and its article structure. A Document is immutable once built and
// may be shared between goroutines.
type Document struct {
	Code      string   // identifier of the document within its archive
	Archive   string   // archive the document was read from
	Title     string   // MODS title, empty when absent
	Publisher string   // MODS publisher, empty when absent
	Place     string   // MODS place term, empty when absent
	Years     []int    // candidate years, ascending
	Year      int      // earliest candidate year, valid when HasYear
	HasYear   bool     // whether any candidate year was found
	PageCodes []string // page codes in page order

	Structure *Structure // article layout, computed once

	tree *Tree
}

// NewDocument parses the METS metadata read from r and builds the document.
// pageCodes are the codes of the pages belonging to the document, in any
// order. A malformed structural block fails the whole document.
func NewDocument(code, archive string, r io.Reader, pageCodes []string) (*Document, error) {
	tree, err := ParseTree(r)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", code, err)
	}
	return NewDocumentFromTree(code, archive, tree, pageCodes)
}

// NewDocumentFromTree builds a document from an already parsed tree.
func NewDocumentFromTree(code, archive string, tree *Tree, pageCodes []string) (*Document, error) {
	sorted, err := pagecode.Sort(pageCodes)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", code, err)
	}

	doc := &Document{
		Code:      code,
		Archive:   archive,
		PageCodes: sorted,
		tree:      tree,
	}
	doc.Title, _ = tree.text(titlePath)
	doc.Publisher, _ = tree.text(publisherPath)
	doc.Place, _ = tree.text(placePath)
	issued, _ := tree.text(dateIssued)

	// the place term often carries a year too
	doc.Years = dates.Union(dates.ParseYears(issued), dates.ParseYears(doc.Place))
	doc.Year, doc.HasYear = dates.Earliest(doc.Years)

	doc.Structure, err = BuildStructure(tree)
	if err != nil {
		var se *StructureError
		if errors.As(err, &se) {
			se.Document = code
			return nil, err
		}
		return nil, fmt.Errorf("document %s: %w", code, err)
	}
	return doc, nil
}

// Query runs a path query against the document's metadata.
func (d *Document) Query(path string) (string, bool) {
	return d.tree.Text(path)
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int { return len(d.PageCodes) }

// NumArticles returns the number of logical articles in the document.
func (d *Document) NumArticles() int { return len(d.Structure.Articles) }
