package mets

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Namespaces binds the prefixes usable in path queries.
var Namespaces = map[string]string{
	"mods":    "http://www.loc.gov/mods/v3",
	"mets":    "http://www.loc.gov/METS/",
	"xsi":     "http://www.w3.org/2001/XMLSchema-instance",
	"premis":  "info:lc/xmlns/premis-v2",
	"dcterms": "http://purl.org/dc/terms/",
	"fits":    "http://hul.harvard.edu/ois/xml/ns/fits/fits_output",
	"xlink":   "http://www.w3.org/1999/xlink",
}

// Fixed metadata paths.
var (
	titlePath     = mustCompile(`//mods:title`)
	dateIssued    = mustCompile(`//mods:dateIssued`)
	publisherPath = mustCompile(`//mods:publisher`)
	placePath     = mustCompile(`//mods:placeTerm`)
)

// Tree is a parsed METS document with namespace-aware path queries.
type Tree struct {
	doc  *xmlquery.Node
	root *xmlquery.Node
}

// ParseTree reads a METS document. Legacy encodings declared in the XML
// prolog are decoded to UTF-8.
func ParseTree(r io.Reader) (*Tree, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse METS XML: %w", err)
	}
	root := firstElement(doc)
	if root == nil {
		return nil, fmt.Errorf("METS XML has no root element")
	}
	return &Tree{doc: doc, root: root}, nil
}

// Root returns the document element.
func (t *Tree) Root() *xmlquery.Node { return t.root }

// Find evaluates path relative to from (the root element when nil) and
// returns the first match, or nil.
func (t *Tree) Find(from *xmlquery.Node, path string) (*xmlquery.Node, error) {
	expr, err := xpath.CompileWithNS(path, Namespaces)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return t.find(from, expr), nil
}

// FindAll evaluates path relative to from (the root element when nil) and
// returns every match in document order.
func (t *Tree) FindAll(from *xmlquery.Node, path string) ([]*xmlquery.Node, error) {
	expr, err := xpath.CompileWithNS(path, Namespaces)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return t.findAll(from, expr), nil
}

// Text returns the trimmed text of the first match of path.
func (t *Tree) Text(path string) (string, bool) {
	expr, err := xpath.CompileWithNS(path, Namespaces)
	if err != nil {
		return "", false
	}
	return t.text(expr)
}

func (t *Tree) find(from *xmlquery.Node, expr *xpath.Expr) *xmlquery.Node {
	if from == nil {
		from = t.root
	}
	return xmlquery.QuerySelector(from, expr)
}

func (t *Tree) findAll(from *xmlquery.Node, expr *xpath.Expr) []*xmlquery.Node {
	if from == nil {
		from = t.root
	}
	return xmlquery.QuerySelectorAll(from, expr)
}

func (t *Tree) text(expr *xpath.Expr) (string, bool) {
	n := t.find(nil, expr)
	if n == nil {
		return "", false
	}
	return strings.TrimSpace(n.InnerText()), true
}

func mustCompile(path string) *xpath.Expr {
	expr, err := xpath.CompileWithNS(path, Namespaces)
	if err != nil {
		panic(fmt.Sprintf("mets: bad built-in path %q: %v", path, err))
	}
	return expr
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// attr returns the value of the attribute with the given local name,
// regardless of its namespace prefix.
func attr(n *xmlquery.Node, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
