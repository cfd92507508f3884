// Package dates derives candidate publication years from the free-text
// date fields found in MODS metadata.
//
// Catalogue dates are rarely clean. Fields such as "1862, [1861]" or
// "1873-80" carry several candidate years, some of them abbreviated to two
// digits. ParseYears applies a small set of heuristics to recover them:
//
//   - A text that is exactly a precise date (YYYY-MM-DD, or YYYY/MM/DD) with
//     a year between 1600 and 1999 yields that single year.
//   - Otherwise every four-digit year 16xx to 19xx is an anchor. Any two-digit
//     number between one anchor and the next is read as an abbreviated year
//     in the anchor's century.
package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	precisePattern = regexp.MustCompile(`^1[6-9]\d{2}[-/](0[1-9]|1[0-2])[-/](0[1-9]|[12]\d|3[01])$`)
	anchorPattern  = regexp.MustCompile(`1[6-9]\d\d`)
	shortPattern   = regexp.MustCompile(`\d\d`)
)

// ParseYears extracts the sorted set of candidate years from text.
//
// For example:
//
//	"1862, [1861]"    -> [1861 1862]
//	"1847 [1846, 47]" -> [1846 1847]
//	"1873-80"         -> [1873 1880]
//	"1870-09-01"      -> [1870]
//
// Empty or absent text yields an empty set.
func ParseYears(text string) []int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []int{}
	}
	if precisePattern.MatchString(trimmed) {
		year, _ := strconv.Atoi(trimmed[0:4])
		return []int{year}
	}

	seen := make(map[int]bool)
	anchors := anchorPattern.FindAllStringIndex(text, -1)
	for i, loc := range anchors {
		anchor := text[loc[0]:loc[1]]
		year, _ := strconv.Atoi(anchor)
		seen[year] = true

		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		century := anchor[0:2]
		for _, short := range shortPattern.FindAllString(text[loc[1]:end], -1) {
			derived, _ := strconv.Atoi(century + short)
			seen[derived] = true
		}
	}
	return sortedKeys(seen)
}

// Union merges year sets into one sorted, duplicate-free set.
func Union(sets ...[]int) []int {
	seen := make(map[int]bool)
	for _, set := range sets {
		for _, y := range set {
			seen[y] = true
		}
	}
	return sortedKeys(seen)
}

// Earliest returns the minimum year of a sorted set, if any.
func Earliest(years []int) (int, bool) {
	if len(years) == 0 {
		return 0, false
	}
	return years[0], true
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for y := range m {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
