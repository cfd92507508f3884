// Package alto decodes ALTO XML page files into page values.
//
// Only the parts needed for text mining are read: every String element's
// CONTENT, WC (word confidence) and CC (character confidences), and the
// TextBlock elements that group them. The decoder walks tokens rather than
// unmarshalling, so text blocks keep their reading order whether they sit
// directly in the print space or inside composed blocks. Any ALTO schema
// version is accepted since elements are matched by local name.
package alto

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/gardar/metsmine/pkg/page"
)

// ErrNotALTO is returned when the document element is not <alto>.
var ErrNotALTO = errors.New("alto: not an ALTO document")

// CodeFromName derives a page code from a page file name by dropping the
// directory and extension: "dir/0000164_19010101_0001.xml" -> "0000164_19010101_0001".
func CodeFromName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse decodes one ALTO page read from r. name is the page file name and
// is also used to derive the page code.
func Parse(r io.Reader, name string) (page.Page, error) {
	p := page.Page{Code: CodeFromName(name), Name: name}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		sawRoot bool
		block   *page.TextBlock
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return page.Page{}, fmt.Errorf("failed to decode ALTO page %s: %w", name, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if !sawRoot {
				if el.Name.Local != "alto" {
					return page.Page{}, fmt.Errorf("%w: %s has root <%s>", ErrNotALTO, name, el.Name.Local)
				}
				sawRoot = true
				continue
			}
			switch el.Name.Local {
			case "TextBlock":
				block = &page.TextBlock{ID: attrValue(el, "ID"), Coords: blockCoords(el)}
			case "String":
				word := attrValue(el, "CONTENT")
				p.Words = append(p.Words, word)
				if wc, ok := attr(el, "WC"); ok {
					p.WordConfidences = append(p.WordConfidences, wc)
				}
				if cc, ok := attr(el, "CC"); ok {
					p.CharConfidences = append(p.CharConfidences, strings.Fields(cc)...)
				}
				if block != nil {
					block.Words = append(block.Words, word)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "TextBlock" && block != nil {
				p.Blocks = append(p.Blocks, *block)
				block = nil
			}
		}
	}
	if !sawRoot {
		return page.Page{}, fmt.Errorf("%w: %s is empty", ErrNotALTO, name)
	}
	return p, nil
}

func attr(el xml.StartElement, local string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func attrValue(el xml.StartElement, local string) string {
	v, _ := attr(el, local)
	return v
}

// blockCoords converts HPOS/VPOS/WIDTH/HEIGHT into "left,top,right,bottom".
func blockCoords(el xml.StartElement) string {
	var v [4]float64
	for i, name := range []string{"HPOS", "VPOS", "WIDTH", "HEIGHT"} {
		raw, ok := attr(el, name)
		if !ok {
			return ""
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ""
		}
		v[i] = f
	}
	l, t := math.Round(v[0]), math.Round(v[1])
	r, b := math.Round(v[0]+v[2]), math.Round(v[1]+v[3])
	return fmt.Sprintf("%d,%d,%d,%d", int(l), int(t), int(r), int(b))
}
