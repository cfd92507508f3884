package mets

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ArticleID names a logical article. Unique within a document.
type ArticleID string

// RegionID names a physical text region on a page. Unique within a document.
type RegionID string

// NewArticleID normalizes a raw identifier or link target into an ArticleID.
// Fragment markers and namespace prefixes are removed: "#art0001" becomes "art0001".
func NewArticleID(raw string) ArticleID { return ArticleID(alnum(raw)) }

// NewRegionID normalizes a raw identifier or link target into a RegionID.
func NewRegionID(raw string) RegionID { return RegionID(alnum(raw)) }

func alnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Geometry is the shape of a region on its scanned page, as declared by the
// METS area pointer. Coords is typically "left,top,right,bottom".
type Geometry struct {
	Shape  string `json:"shape" yaml:"shape"`
	Coords string `json:"coords" yaml:"coords"`
}

// Box parses Coords as a "L,T,R,B" rectangle.
func (g Geometry) Box() (image.Rectangle, error) {
	parts := strings.Split(g.Coords, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("geometry %q: expected 4 coordinates, got %d", g.Coords, len(parts))
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("geometry %q: %w", g.Coords, err)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}

// RegionRef is one region of a resolved article with its geometry.
type RegionRef struct {
	ID       RegionID `json:"id" yaml:"id"`
	Geometry Geometry `json:"geometry" yaml:"geometry"`
}

// ResolvedArticle is an article with the geometry of each of its regions,
// in link order.
type ResolvedArticle struct {
	ID      ArticleID   `json:"id" yaml:"id"`
	Regions []RegionRef `json:"regions" yaml:"regions"`
}

// Diagnostic records a structural oddity that did not prevent parsing.
type Diagnostic struct {
	Block   string `json:"block" yaml:"block"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string { return d.Block + ": " + d.Message }

// Structure is the article layout of one document. It is built once by
// NewDocument and must be treated as read-only afterwards.
type Structure struct {
	Articles    []ArticleID              // logical articles in reading order
	Links       map[ArticleID][]RegionID // article -> member regions in link order
	Regions     map[RegionID]Geometry    // region -> geometry
	Resolved    []ResolvedArticle        // articles joined with their geometry
	Diagnostics []Diagnostic

	index map[ArticleID]int
}

// Lookup returns the resolved article with the given id.
func (s *Structure) Lookup(id ArticleID) (ResolvedArticle, bool) {
	if s == nil {
		return ResolvedArticle{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return ResolvedArticle{}, false
	}
	return s.Resolved[i], true
}

// Geometry returns the geometry of a region, if declared.
func (s *Structure) Geometry(id RegionID) (Geometry, bool) {
	if s == nil {
		return Geometry{}, false
	}
	g, ok := s.Regions[id]
	return g, ok
}
