package hocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHOCR = `<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
 <head>
  <title>The Whaling Gazette</title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name="ocr-system" content="tesseract 5.3.0"/>
 </head>
 <body>
  <div class="ocr_page" id="page_1" title='image "0001.tif"; bbox 0 0 3000 4000; ppageno 0'>
   <div class="ocr_carea" id="pa0001001" title="bbox 1220 5 2893 221">
    <p class="ocr_par" id="par_1_1" title="bbox 1220 5 2893 221">
     <span class="ocr_line" id="line_1_1" title="bbox 1220 5 2893 100; baseline 0 -5">
      <span class="ocrx_word" id="word_1_1" title="bbox 1220 5 1400 100; x_wconf 91; x_confs 90 92 91 89">Call</span>
      <span class="ocrx_word" id="word_1_2" title="bbox 1420 5 1500 100; x_wconf 88.5">me</span>
     </span>
    </p>
   </div>
   <div class="ocr_carea" id="pa0001002" title="bbox 2934 14 3709 211">
    <span class="ocr_line" id="line_1_2" title="bbox 2934 14 3709 211">
     <span class="ocrx_word" id="word_1_3" title="bbox 2934 14 3709 211; x_wconf 75"><strong>Ishmael.</strong></span>
    </span>
   </div>
   <span class="ocr_line" id="line_1_3" title="bbox 10 3900 200 3990">
    <span class="ocrx_word" id="word_1_4" title="bbox 10 3900 200 3990">FINIS</span>
   </span>
  </div>
 </body>
</html>`

func TestParseHOCR(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	require.NoError(t, err)

	assert.Equal(t, "The Whaling Gazette", doc.Title)
	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "tesseract 5.3.0", doc.Metadata["ocr-system"])

	require.Len(t, doc.Pages, 1)
	p := doc.Pages[0]
	assert.Equal(t, "page_1", p.ID)
	assert.Equal(t, "0001.tif", p.ImageName)
	assert.Equal(t, NewBoundingBox(0, 0, 3000, 4000), p.BBox)

	require.Len(t, p.Areas, 2)
	require.Len(t, p.Areas[0].Paragraphs, 1)
	words := p.Areas[0].Paragraphs[0].Lines[0].Words
	require.Len(t, words, 2)
	assert.Equal(t, "Call", words[0].Text)
	assert.True(t, words[0].HasConfidence)
	assert.Equal(t, 91.0, words[0].Confidence)
	assert.Equal(t, []float64{90, 92, 91, 89}, words[0].CharConfidences)
	assert.Equal(t, 88.5, words[1].Confidence)

	assert.Equal(t, "Ishmael.", p.Areas[1].Lines[0].Words[0].Text)
	require.Len(t, p.Lines, 1)
	assert.False(t, p.Lines[0].Words[0].HasConfidence)
}

func TestParseHOCR_NoPages(t *testing.T) {
	_, err := ParseHOCR([]byte(`<html><body><p>nothing</p></body></html>`))
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestParseHOCR_Latin1(t *testing.T) {
	src := "<html><head><meta http-equiv=\"Content-Type\" content=\"text/html; charset=iso-8859-1\"></head><body>" +
		"<div class=\"ocr_page\" id=\"p1\"><span class=\"ocr_line\"><span class=\"ocrx_word\" title=\"x_wconf 80\">caf\xe9</span></span></div></body></html>"
	doc, err := ParseHOCR([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, texts(doc.Pages[0].Words()))
}

func TestParseTitle(t *testing.T) {
	props := ParseTitle("bbox 100 200 300 400; x_wconf 95;  ")
	assert.Equal(t, []string{"100", "200", "300", "400"}, props["bbox"])
	assert.Equal(t, []string{"95"}, props["x_wconf"])
	assert.Len(t, props, 2)

	assert.Nil(t, ParseBoundingBoxFromTitle("bbox 1 2 3"))
	assert.Nil(t, ParseBoundingBoxFromTitle("bbox a b c d"))
}

func TestBoundingBoxCoords(t *testing.T) {
	assert.Equal(t, "1220,5,2893,221", NewBoundingBox(1220, 5, 2893, 220.6).Coords())
	assert.Equal(t, "", BoundingBox{}.Coords())
}

func TestToPages(t *testing.T) {
	doc, err := ParseHOCR([]byte(sampleHOCR))
	require.NoError(t, err)

	pages := ToPages(doc, "issue/0000164_18470101_0001.hocr")
	require.Len(t, pages, 1)
	p := pages[0]

	assert.Equal(t, "0000164_18470101_0001", p.Code)
	assert.Equal(t, []string{"Call", "me", "Ishmael.", "FINIS"}, p.Words)
	assert.Equal(t, []string{"91", "88.5", "75"}, p.WordConfidences)
	assert.Equal(t, []string{"90", "92", "91", "89"}, p.CharConfidences)

	require.Len(t, p.Blocks, 2)
	assert.Equal(t, "pa0001001", p.Blocks[0].ID)
	assert.Equal(t, []string{"Call", "me"}, p.Blocks[0].Words)
	assert.Equal(t, "1220,5,2893,221", p.Blocks[0].Coords)
	assert.Equal(t, "pa0001002", p.Blocks[1].ID)
}

func TestToPages_MultiPage(t *testing.T) {
	doc := HOCR{Pages: []Page{{ID: "a"}, {ID: "b"}}}
	pages := ToPages(doc, "0000164_18470101.hocr")
	require.Len(t, pages, 2)
	assert.Equal(t, "0000164_18470101_1", pages[0].Code)
	assert.Equal(t, "0000164_18470101_2", pages[1].Code)
}
