// Package query runs keyword and text-quality queries over documents, their
// pages and their resolved articles.
//
// Every query takes a Normalizer that is applied to both the page words and
// the keywords before they are compared. Records keep the keyword as given.
package query

import (
	"sort"

	"github.com/gardar/metsmine/pkg/article"
	"github.com/gardar/metsmine/pkg/mets"
	"github.com/gardar/metsmine/pkg/page"
)

// PageMatch records that a page contains a keyword.
type PageMatch struct {
	Year     int
	HasYear  bool
	Document *mets.Document
	Page     *page.Page
	Keyword  string
}

// ArticleMatch records that one region of an article contains a keyword.
type ArticleMatch struct {
	Year     int
	HasYear  bool
	Document *mets.Document
	Article  mets.ArticleID
	Region   mets.RegionID
	Geometry mets.Geometry
	PageCode string
	PageName string
	Words    []string
	Keyword  string
}

// contains reports whether any word normalizes to target.
func contains(words []string, target string, norm Normalizer) bool {
	for _, w := range words {
		if norm(w) == target {
			return true
		}
	}
	return false
}

// PageMatches returns one record per page per keyword found on it, ordered
// by keyword and then by page.
func PageMatches(doc *mets.Document, pages []page.Page, keywords []string, norm Normalizer) []PageMatch {
	norm = orNone(norm)
	var matches []PageMatch
	for _, kw := range keywords {
		target := norm(kw)
		for i := range pages {
			if !contains(pages[i].Words, target, norm) {
				continue
			}
			matches = append(matches, PageMatch{
				Year:     doc.Year,
				HasYear:  doc.HasYear,
				Document: doc,
				Page:     &pages[i],
				Keyword:  kw,
			})
		}
	}
	return matches
}

// ArticleMatches returns one record per article region per keyword found in
// it, ordered by keyword, article and region. Regions with no recognized
// text never match.
func ArticleMatches(doc *mets.Document, articles []article.Article, keywords []string, norm Normalizer) []ArticleMatch {
	norm = orNone(norm)
	var matches []ArticleMatch
	for _, kw := range keywords {
		target := norm(kw)
		for _, a := range articles {
			for _, r := range a.Regions {
				if !contains(r.Words, target, norm) {
					continue
				}
				matches = append(matches, ArticleMatch{
					Year:     doc.Year,
					HasYear:  doc.HasYear,
					Document: doc,
					Article:  a.ID,
					Region:   r.ID,
					Geometry: r.Geometry,
					PageCode: r.PageCode,
					PageName: r.PageName,
					Words:    r.Words,
					Keyword:  kw,
				})
			}
		}
	}
	return matches
}

// DocumentKeywords returns the keywords that occur anywhere in pages,
// sorted and without duplicates.
func DocumentKeywords(pages []page.Page, keywords []string, norm Normalizer) []string {
	norm = orNone(norm)
	byTarget := make(map[string][]string)
	for _, kw := range keywords {
		t := norm(kw)
		byTarget[t] = append(byTarget[t], kw)
	}

	found := make(map[string]struct{})
	for _, p := range pages {
		for _, w := range p.Words {
			for _, kw := range byTarget[norm(w)] {
				found[kw] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(found))
	for kw := range found {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// DocumentContainsWord reports whether keyword occurs on any page.
func DocumentContainsWord(pages []page.Page, keyword string, norm Normalizer) bool {
	norm = orNone(norm)
	target := norm(keyword)
	for _, p := range pages {
		if contains(p.Words, target, norm) {
			return true
		}
	}
	return false
}
