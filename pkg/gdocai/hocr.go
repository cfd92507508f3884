package gdocai

import (
	"fmt"
	"math"
	"strconv"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/metsmine/pkg/hocr"
)

// ToHOCR converts a Document AI proto to the HOCR struct
func ToHOCR(doc *documentaipb.Document) *hocr.HOCR {
	result := &hocr.HOCR{
		Title:    "Document OCR",
		Language: documentLanguage(doc),
		Metadata: map[string]string{
			"ocr-system":          "Document AI OCR",
			"ocr-number-of-pages": strconv.Itoa(len(doc.GetPages())),
			"ocr-capabilities":    "ocr_page ocr_carea ocr_par ocr_line ocrx_word",
		},
	}
	for i, p := range doc.GetPages() {
		n := int(p.GetPageNumber())
		if n == 0 {
			n = i + 1
		}
		result.Pages = append(result.Pages, convertPage(p, doc.GetText(), n))
	}
	return result
}

// convertPage builds the area → paragraph → line → word hierarchy from the
// flat element lists of a page. Containment is decided on text anchors:
// paragraphs outside every block and lines outside every paragraph are kept
// directly on the page.
func convertPage(p *documentaipb.Document_Page, fullText string, pageNumber int) hocr.Page {
	dim := p.GetDimension()
	ocrPage := hocr.Page{
		ID:         fmt.Sprintf("page_%d", pageNumber),
		PageNumber: pageNumber,
		BBox:       boundingBox(p.GetLayout(), dim),
	}

	assignedParagraphs := make(map[int]bool)
	assignedLines := make(map[int]bool)

	paragraph := func(pidx int, par *documentaipb.Document_Page_Paragraph, id string) hocr.Paragraph {
		assignedParagraphs[pidx] = true
		ocrPar := hocr.Paragraph{ID: id, BBox: boundingBox(par.GetLayout(), dim)}
		for lidx, line := range p.GetLines() {
			if assignedLines[lidx] || !isElementInParent(line.GetLayout(), par.GetLayout()) {
				continue
			}
			assignedLines[lidx] = true
			ocrPar.Lines = append(ocrPar.Lines, convertLine(line, p, fullText, fmt.Sprintf("%s_%d", id, lidx)))
		}
		return ocrPar
	}

	for bidx, block := range p.GetBlocks() {
		area := hocr.Area{
			ID:   fmt.Sprintf("block_%d_%d", pageNumber, bidx),
			BBox: boundingBox(block.GetLayout(), dim),
		}
		for pidx, par := range p.GetParagraphs() {
			if assignedParagraphs[pidx] || !isElementInParent(par.GetLayout(), block.GetLayout()) {
				continue
			}
			area.Paragraphs = append(area.Paragraphs, paragraph(pidx, par, fmt.Sprintf("par_%d_%d_%d", pageNumber, bidx, pidx)))
		}
		ocrPage.Areas = append(ocrPage.Areas, area)
	}

	for pidx, par := range p.GetParagraphs() {
		if !assignedParagraphs[pidx] {
			ocrPage.Paragraphs = append(ocrPage.Paragraphs, paragraph(pidx, par, fmt.Sprintf("par_%d_direct_%d", pageNumber, pidx)))
		}
	}

	for lidx, line := range p.GetLines() {
		if !assignedLines[lidx] {
			ocrPage.Lines = append(ocrPage.Lines, convertLine(line, p, fullText, fmt.Sprintf("line_%d_direct_%d", pageNumber, lidx)))
		}
	}

	return ocrPage
}

// convertLine collects the tokens of a line as words. Token confidence is
// scaled to the 0-100 range hOCR uses; symbols inside a token supply its
// character confidences.
func convertLine(line *documentaipb.Document_Page_Line, p *documentaipb.Document_Page, fullText, id string) hocr.Line {
	ocrLine := hocr.Line{ID: id, BBox: boundingBox(line.GetLayout(), p.GetDimension())}

	for tidx, token := range p.GetTokens() {
		if !isElementInParent(token.GetLayout(), line.GetLayout()) {
			continue
		}
		word := hocr.Word{
			ID:   fmt.Sprintf("word_%s_%d", id, tidx),
			Text: tokenText(token.GetLayout(), fullText),
			BBox: boundingBox(token.GetLayout(), p.GetDimension()),
		}
		if token.GetLayout() != nil {
			word.Confidence, word.HasConfidence = percent(token.GetLayout().GetConfidence()), true
		}
		for _, sym := range p.GetSymbols() {
			if isElementInParent(sym.GetLayout(), token.GetLayout()) {
				word.CharConfidences = append(word.CharConfidences, percent(sym.GetLayout().GetConfidence()))
			}
		}
		ocrLine.Words = append(ocrLine.Words, word)
	}
	return ocrLine
}

// percent scales a 0-1 confidence to 0-100 with two decimals.
func percent(c float32) float64 {
	return math.Round(float64(c)*10000) / 100
}

// boundingBox converts Document AI coordinates to pixel coordinates.
// Normalized vertices (0-1) are scaled by the page dimension; absolute
// vertices are used as they are.
func boundingBox(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) hocr.BoundingBox {
	poly := layout.GetBoundingPoly()
	if nv := poly.GetNormalizedVertices(); len(nv) >= 4 && dim != nil {
		return hocr.NewBoundingBox(
			math.Round(float64(nv[0].X*dim.Width)),
			math.Round(float64(nv[0].Y*dim.Height)),
			math.Round(float64(nv[2].X*dim.Width)),
			math.Round(float64(nv[2].Y*dim.Height)),
		)
	}
	if v := poly.GetVertices(); len(v) >= 4 {
		return hocr.NewBoundingBox(float64(v[0].X), float64(v[0].Y), float64(v[2].X), float64(v[2].Y))
	}
	return hocr.BoundingBox{}
}

// documentLanguage finds the most common language in the document
// by counting language occurrences across pages and tokens
func documentLanguage(doc *documentaipb.Document) string {
	langCount := make(map[string]int)
	for _, p := range doc.GetPages() {
		for _, lang := range p.GetDetectedLanguages() {
			langCount[lang.GetLanguageCode()]++
		}
		for _, token := range p.GetTokens() {
			for _, lang := range token.GetDetectedLanguages() {
				langCount[lang.GetLanguageCode()]++
			}
		}
	}

	var best string
	for lang, count := range langCount {
		if count > langCount[best] || (count == langCount[best] && lang < best) {
			best = lang
		}
	}
	return best
}

// isElementInParent reports whether the element's first text segment lies
// within the parent's first text segment.
func isElementInParent(element, parent *documentaipb.Document_Page_Layout) bool {
	es := element.GetTextAnchor().GetTextSegments()
	ps := parent.GetTextAnchor().GetTextSegments()
	if len(es) == 0 || len(ps) == 0 {
		return false
	}
	return es[0].StartIndex >= ps[0].StartIndex && es[0].EndIndex <= ps[0].EndIndex
}
