package mets

import (
	"fmt"

	"github.com/antchfx/xmlquery"
)

// Block names used in errors and diagnostics.
const (
	BlockLogical    = "logical"
	BlockPhysical   = "physical"
	BlockStructLink = "structLink"
)

var (
	logicalMap  = mustCompile(`mets:structMap[@TYPE="LOGICAL"]`)
	physicalMap = mustCompile(`mets:structMap[@TYPE="PHYSICAL"]`)
	structLink  = mustCompile(`mets:structLink`)

	articleDivs = mustCompile(`*/mets:div[@TYPE="ARTICLE"]`)
	pageDivs    = mustCompile(`*/mets:div[@TYPE="page"]`)
	regionDivs  = mustCompile(`mets:div`)
	filePointer = mustCompile(`mets:fptr`)
	areaPointer = mustCompile(`.//*[@COORDS]`)
	linkGroups  = mustCompile(`mets:smLinkGrp`)
	locators    = mustCompile(`mets:smLocatorLink`)
)

// ParseLogical collects the ID of every article division of the logical
// structure map, in document order. A missing logical map yields no articles.
func ParseLogical(t *Tree) ([]ArticleID, error) {
	block := t.find(nil, logicalMap)
	if block == nil {
		return []ArticleID{}, nil
	}
	var ids []ArticleID
	for _, div := range t.findAll(block, articleDivs) {
		raw, ok := attr(div, "ID")
		if !ok || raw == "" {
			return nil, malformed(BlockLogical, "", "article division without ID")
		}
		ids = append(ids, NewArticleID(raw))
	}
	if ids == nil {
		ids = []ArticleID{}
	}
	return ids, nil
}

// ParsePhysical maps every region division nested in a page division of the
// physical structure map to the geometry of its area pointer.
func ParsePhysical(t *Tree) (map[RegionID]Geometry, error) {
	regions := make(map[RegionID]Geometry)
	block := t.find(nil, physicalMap)
	if block == nil {
		return regions, nil
	}
	for _, page := range t.findAll(block, pageDivs) {
		for _, div := range t.findAll(page, regionDivs) {
			raw, ok := attr(div, "ID")
			if !ok || raw == "" {
				return nil, malformed(BlockPhysical, "", "region division without ID")
			}
			geom, err := regionGeometry(t, div, raw)
			if err != nil {
				return nil, err
			}
			regions[NewRegionID(raw)] = geom
		}
	}
	return regions, nil
}

func regionGeometry(t *Tree, div *xmlquery.Node, id string) (Geometry, error) {
	fptr := t.find(div, filePointer)
	if fptr == nil {
		return Geometry{}, malformed(BlockPhysical, id, "region division without file pointer")
	}
	area := t.find(fptr, areaPointer)
	if area == nil {
		return Geometry{}, malformed(BlockPhysical, id, "file pointer without area coordinates")
	}
	shape, ok := attr(area, "SHAPE")
	if !ok {
		return Geometry{}, malformed(BlockPhysical, id, "area without SHAPE")
	}
	coords, _ := attr(area, "COORDS")
	return Geometry{Shape: shape, Coords: coords}, nil
}

// ParseLinks reads the structural link block. Within each link group the
// first target names the owning article and the remaining targets are its
// regions, in encounter order. Groups with fewer than two targets are
// skipped and reported as diagnostics.
func ParseLinks(t *Tree) (map[ArticleID][]RegionID, []Diagnostic, error) {
	links := make(map[ArticleID][]RegionID)
	var diags []Diagnostic

	for _, block := range t.findAll(nil, structLink) {
		for gi, group := range t.findAll(block, linkGroups) {
			var targets []string
			for _, loc := range t.findAll(group, locators) {
				href, ok := attr(loc, "href")
				if !ok {
					return nil, nil, malformed(BlockStructLink, groupName(group, gi), "locator without href")
				}
				targets = append(targets, alnum(href))
			}
			if len(targets) < 2 {
				diags = append(diags, Diagnostic{
					Block:   BlockStructLink,
					Message: fmt.Sprintf("link group %s has %d target(s), skipped", groupName(group, gi), len(targets)),
				})
				continue
			}
			owner := ArticleID(targets[0])
			for _, r := range targets[1:] {
				links[owner] = append(links[owner], RegionID(r))
			}
		}
	}
	return links, diags, nil
}

func groupName(group *xmlquery.Node, index int) string {
	if id, ok := attr(group, "ID"); ok && id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index+1)
}

// checkOwnership flags link groups whose owner is not a logical article while
// one of their members is. The positional convention is kept as is.
func checkOwnership(articles []ArticleID, links map[ArticleID][]RegionID) []Diagnostic {
	known := make(map[ArticleID]bool, len(articles))
	for _, a := range articles {
		known[a] = true
	}
	var diags []Diagnostic
	for _, owner := range sortedOwners(links) {
		if known[owner] {
			continue
		}
		for _, r := range links[owner] {
			if known[ArticleID(r)] {
				diags = append(diags, Diagnostic{
					Block:   BlockStructLink,
					Message: fmt.Sprintf("owner %s is not a logical article but member %s is; ownership may be mis-assigned", owner, r),
				})
				break
			}
		}
	}
	return diags
}
