package query

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/metsmine/pkg/article"
	"github.com/gardar/metsmine/pkg/mets"
	"github.com/gardar/metsmine/pkg/page"
)

func testDocument() *mets.Document {
	return &mets.Document{
		Code:      "0000164_18470101",
		Archive:   "/archive/0000164_18470101",
		Title:     "The Whaling Gazette",
		Place:     "London",
		Year:      1846,
		HasYear:   true,
		PageCodes: []string{"1_1", "1_2", "1_3", "1_4", "1_5"},
	}
}

func testPages() []page.Page {
	return []page.Page{
		{Code: "1_1", Words: []string{"Call", "me", "Ishmael."}},
		{Code: "1_2", Words: []string{"A", "whale!", "Whale,", "ho"}},
		{Code: "1_3", Words: []string{"Nothing", "here"}},
		{Code: "1_4"},
		{Code: "1_5", Words: []string{"the", "WHALE"}},
	}
}

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name string
		norm Normalizer
		in   string
		want string
	}{
		{"none", None, "Whale's,", "Whale's,"},
		{"normalize", Normalize, "Whale's,", "whales"},
		{"normalize drops non-ascii", Normalize, "Café", "caf"},
		{"fold", Fold, "Straße!", "strasse"},
		{"fold ligature", Fold, "ﬁsh", "fish"},
		{"unaccent", Unaccent, "Café-Noir", "cafenoir"},
		{"chain", Chain(strings.TrimSpace, strings.ToUpper), "  ahoy ", "AHOY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.norm(tt.in))
		})
	}
}

func TestParseNormalizer(t *testing.T) {
	n, err := ParseNormalizer("NORMALIZE")
	require.NoError(t, err)
	assert.Equal(t, "whale", n("Whale."))

	n, err = ParseNormalizer("")
	require.NoError(t, err)
	assert.Equal(t, "Whale.", n("Whale."))

	_, err = ParseNormalizer("lemmatize")
	assert.ErrorIs(t, err, ErrUnsupportedNormalizer)

	Register("truncate", func(s string) string {
		if len(s) > 3 {
			return s[:3]
		}
		return s
	})
	n, err = ParseNormalizer("truncate")
	require.NoError(t, err)
	assert.Equal(t, "wha", n("whales"))
	assert.Contains(t, Normalizers(), "truncate")
}

func TestPageMatches(t *testing.T) {
	doc, pages := testDocument(), testPages()

	matches := PageMatches(doc, pages, []string{"whale", "ishmael"}, Normalize)
	require.Len(t, matches, 3)

	// whale appears twice on 1_2 but yields one record
	assert.Equal(t, "whale", matches[0].Keyword)
	assert.Equal(t, "1_2", matches[0].Page.Code)
	assert.Equal(t, "1_5", matches[1].Page.Code)
	assert.Equal(t, "ishmael", matches[2].Keyword)
	assert.Equal(t, "1_1", matches[2].Page.Code)

	assert.Equal(t, 1846, matches[0].Year)
	assert.True(t, matches[0].HasYear)
	assert.Same(t, doc, matches[0].Document)
	assert.Same(t, &pages[1], matches[0].Page)
}

func TestPageMatches_NoNormalizer(t *testing.T) {
	matches := PageMatches(testDocument(), testPages(), []string{"whale"}, nil)
	assert.Empty(t, matches)
	matches = PageMatches(testDocument(), testPages(), []string{"WHALE"}, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "1_5", matches[0].Page.Code)
}

func TestArticleMatches(t *testing.T) {
	rect := mets.Geometry{Shape: "RECT", Coords: "1,2,3,4"}
	articles := []article.Article{
		{ID: "art0001", Regions: []article.TextRegion{
			{ID: "r1", Geometry: rect, Words: []string{"whale", "whale"}, PageCode: "1_1", PageName: "1_1.xml", Found: true},
			{ID: "r2", Words: []string{"a", "Whale"}, PageCode: "1_2", Found: true},
			{ID: "r3"},
		}},
		{ID: "art0002", Regions: []article.TextRegion{
			{ID: "r4", Words: []string{"ship"}, Found: true},
		}},
	}

	matches := ArticleMatches(testDocument(), articles, []string{"whale", "ship"}, Normalize)
	require.Len(t, matches, 3)
	assert.Equal(t, mets.RegionID("r1"), matches[0].Region)
	assert.Equal(t, rect, matches[0].Geometry)
	assert.Equal(t, "1_1.xml", matches[0].PageName)
	assert.Equal(t, []string{"whale", "whale"}, matches[0].Words)
	assert.Equal(t, mets.RegionID("r2"), matches[1].Region)
	assert.Equal(t, mets.ArticleID("art0002"), matches[2].Article)
	assert.Equal(t, "ship", matches[2].Keyword)
}

func TestDocumentKeywords(t *testing.T) {
	got := DocumentKeywords(testPages(), []string{"whale", "squid", "call", "Whale"}, Normalize)
	assert.Equal(t, []string{"Whale", "call", "whale"}, got)
	assert.True(t, DocumentContainsWord(testPages(), "ishmael", Normalize))
	assert.False(t, DocumentContainsWord(testPages(), "squid", Normalize))
}

func TestPageRows(t *testing.T) {
	rows := PageRows(testDocument(), testPages(), Normalize, "normalize")
	require.Len(t, rows, 5)
	assert.Equal(t, PageRow{
		Title:      "The Whaling Gazette",
		Year:       1846,
		Place:      "London",
		Archive:    "/archive/0000164_18470101",
		PageCode:   "1_2",
		NumPages:   5,
		Preprocess: "normalize",
		PageString: "a whale whale ho",
		NumWords:   4,
	}, rows[1])
	assert.Equal(t, "", rows[3].PageString)
}

func TestWordsWithinDictionary(t *testing.T) {
	dict := NewDictionary("call", "me", "whale", "a", "ho")
	pages := testPages()

	assert.Equal(t, "66", WordsWithinDictionary(&pages[0], dict, Normalize))
	assert.Equal(t, "100", WordsWithinDictionary(&pages[1], dict, Normalize))
	assert.Equal(t, "0", WordsWithinDictionary(&pages[3], dict, Normalize))
	assert.Equal(t, "0", WordsWithinDictionary(&page.Page{Words: []string{"!!", "--"}}, dict, Normalize))
}

func TestLoadDictionary(t *testing.T) {
	dict, err := LoadDictionary(strings.NewReader("# words\nwhale\n\n  ship \n"))
	require.NoError(t, err)
	assert.Len(t, dict, 2)
	assert.True(t, dict.Contains("ship"))
	assert.False(t, dict.Contains("# words"))
}

func TestConfidenceAverage(t *testing.T) {
	avg, err := ConfidenceAverage(&page.Page{WordConfidences: []string{"0.5", "1", "0.75"}})
	require.NoError(t, err)
	assert.Equal(t, "0.75", avg)

	avg, err = ConfidenceAverage(&page.Page{})
	require.NoError(t, err)
	assert.Equal(t, "0", avg)

	_, err = ConfidenceAverage(&page.Page{Code: "1_9", WordConfidences: []string{"0.5", "n/a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1_9")
}

func TestMeasurePage(t *testing.T) {
	q, err := MeasurePage(&page.Page{Code: "1_1", Name: "1_1.xml"}, NewDictionary(), Normalize)
	require.NoError(t, err)
	assert.Equal(t, PageQuality{PageCode: "1_1", PageName: "1_1.xml", DictionaryCoverage: "0", ConfidenceAverage: "0"}, q)
}

func TestQueriesConcurrent(t *testing.T) {
	doc, pages := testDocument(), testPages()
	want := PageMatches(doc, pages, []string{"whale"}, Fold)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, PageMatches(doc, pages, []string{"whale"}, Fold))
		}()
	}
	wg.Wait()
}
