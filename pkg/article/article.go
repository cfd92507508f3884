// Package article joins the resolved article structure of a document with
// the recognized text of its pages.
package article

import (
	"github.com/gardar/metsmine/pkg/mets"
	"github.com/gardar/metsmine/pkg/page"
)

// TextRegion is one region of an article together with the text the OCR
// engine recognized for it. Found is false when no page carried a text
// block with the region's identifier.
type TextRegion struct {
	ID       mets.RegionID `json:"id" yaml:"id"`
	Geometry mets.Geometry `json:"geometry" yaml:"geometry"`
	Words    []string      `json:"words,omitempty" yaml:"words,omitempty"`
	PageCode string        `json:"page_code,omitempty" yaml:"page_code,omitempty"`
	PageName string        `json:"page_name,omitempty" yaml:"page_name,omitempty"`
	Found    bool          `json:"found" yaml:"found"`
}

// Article is a logical article with its regions in link order.
type Article struct {
	ID      mets.ArticleID `json:"id" yaml:"id"`
	Regions []TextRegion   `json:"regions" yaml:"regions"`
}

// Words returns the words of every found region, in region order.
func (a Article) Words() []string {
	var words []string
	for _, r := range a.Regions {
		words = append(words, r.Words...)
	}
	return words
}

type position struct{ article, region int }

// Resolve attaches page text to every region of the resolved articles in s.
// Regions are indexed by identifier first so pages are scanned once; a
// region linked from several articles is filled in for each of them. Text
// block identifiers are normalized like link targets before lookup. When
// several blocks carry the same identifier the first one in page order wins.
//
// Resolve does not modify s or pages and returns equal results for equal
// inputs.
func Resolve(s *mets.Structure, pages []page.Page) []Article {
	if s == nil {
		return nil
	}

	articles := make([]Article, len(s.Resolved))
	index := make(map[mets.RegionID][]position)
	for i, ra := range s.Resolved {
		articles[i] = Article{ID: ra.ID, Regions: make([]TextRegion, len(ra.Regions))}
		for j, ref := range ra.Regions {
			articles[i].Regions[j] = TextRegion{ID: ref.ID, Geometry: ref.Geometry}
			index[ref.ID] = append(index[ref.ID], position{i, j})
		}
	}

	for _, p := range pages {
		for _, b := range p.Blocks {
			for _, pos := range index[mets.NewRegionID(b.ID)] {
				r := &articles[pos.article].Regions[pos.region]
				if r.Found {
					continue
				}
				r.Words = append([]string(nil), b.Words...)
				r.PageCode, r.PageName, r.Found = p.Code, p.Name, true
			}
		}
	}
	return articles
}
