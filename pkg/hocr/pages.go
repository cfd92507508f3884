package hocr

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gardar/metsmine/pkg/page"
)

// ToPages converts every hOCR page into a page value. name is the file the
// document was read from; its stem becomes the page code. A multi-page
// document gets "_<n>" appended so codes stay distinct and ordered.
//
// Each ocr_carea becomes a text block whose ID is the area's id attribute.
// Word confidences come from x_wconf and character confidences from x_confs.
func ToPages(doc HOCR, name string) []page.Page {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	pages := make([]page.Page, 0, len(doc.Pages))
	for i, hp := range doc.Pages {
		code := stem
		if len(doc.Pages) > 1 {
			code = stem + "_" + strconv.Itoa(i+1)
		}
		p := page.Page{Code: code, Name: name}

		for _, w := range hp.Words() {
			p.Words = append(p.Words, w.Text)
			if w.HasConfidence {
				p.WordConfidences = append(p.WordConfidences, formatFloat(w.Confidence))
			}
			for _, c := range w.CharConfidences {
				p.CharConfidences = append(p.CharConfidences, formatFloat(c))
			}
		}
		for _, a := range hp.Areas {
			p.Blocks = append(p.Blocks, page.TextBlock{
				ID:     a.ID,
				Words:  texts(a.AllWords()),
				Coords: a.BBox.Coords(),
			})
		}
		pages = append(pages, p)
	}
	return pages
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
