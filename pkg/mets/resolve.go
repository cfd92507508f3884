package mets

import "sort"

// ResolveGeometry joins the logical articles with their link membership and
// the physical region geometry. Articles without membership and regions
// without geometry are left out. The inputs are not modified.
func ResolveGeometry(articles []ArticleID, links map[ArticleID][]RegionID, regions map[RegionID]Geometry) []ResolvedArticle {
	out := make([]ResolvedArticle, 0, len(articles))
	for _, id := range articles {
		members, ok := links[id]
		if !ok {
			continue
		}
		ra := ResolvedArticle{ID: id, Regions: make([]RegionRef, 0, len(members))}
		for _, r := range members {
			g, ok := regions[r]
			if !ok {
				continue
			}
			ra.Regions = append(ra.Regions, RegionRef{ID: r, Geometry: g})
		}
		out = append(out, ra)
	}
	return out
}

// BuildStructure runs the three structural passes over t and resolves the
// article geometry.
func BuildStructure(t *Tree) (*Structure, error) {
	articles, err := ParseLogical(t)
	if err != nil {
		return nil, err
	}
	regions, err := ParsePhysical(t)
	if err != nil {
		return nil, err
	}
	links, diags, err := ParseLinks(t)
	if err != nil {
		return nil, err
	}
	diags = append(diags, checkOwnership(articles, links)...)

	s := &Structure{
		Articles:    articles,
		Links:       links,
		Regions:     regions,
		Resolved:    ResolveGeometry(articles, links, regions),
		Diagnostics: diags,
	}
	s.index = make(map[ArticleID]int, len(s.Resolved))
	for i, ra := range s.Resolved {
		s.index[ra.ID] = i
	}
	return s, nil
}

func sortedOwners(links map[ArticleID][]RegionID) []ArticleID {
	owners := make([]ArticleID, 0, len(links))
	for a := range links {
		owners = append(owners, a)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	return owners
}
