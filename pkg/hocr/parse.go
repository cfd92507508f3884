package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

const (
	classPage      = "ocr_page"
	classArea      = "ocr_carea"
	classParagraph = "ocr_par"
	classLine      = "ocr_line"
	classWord      = "ocrx_word"
)

// ErrNoPages is returned when a document carries no ocr_page element.
var ErrNoPages = errors.New("no ocr_page elements found in hOCR data")

var metaCharset = regexp.MustCompile(`(?i)charset=["']?([\w-]+)`)

// ParseHOCR converts raw hOCR data into a structured HOCR object.
func ParseHOCR(data []byte) (HOCR, error) {
	result := HOCR{Metadata: make(map[string]string)}

	decoded, err := decode(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	extractDocumentMeta(&result, doc)

	for _, n := range collect(doc, classPage)[classPage] {
		result.Pages = append(result.Pages, processPage(n))
	}
	if len(result.Pages) == 0 {
		return result, ErrNoPages
	}
	return result, nil
}

// decode converts data to UTF-8 according to the charset declared in a
// meta tag. Unknown labels fall back to ISO-8859-1, the usual encoding of
// legacy hOCR output.
func decode(data []byte) ([]byte, error) {
	m := metaCharset.FindSubmatch(data)
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(string(m[1]))
	if label == "utf-8" || label == "utf8" {
		return data, nil
	}

	enc, _ := charset.Lookup(label)
	if enc == nil {
		enc = charmap.ISO8859_1
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", label, err)
	}
	return decoded, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if the title has no complete bbox property
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		v[i] = f
	}
	result := NewBoundingBox(v[0], v[1], v[2], v[3])
	return &result
}

// extractDocumentMeta reads the title, html lang and ocr-* meta tags.
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := getAttrVal(n, "lang"); lang != "" {
					result.Language = lang
				}
			case "title":
				result.Title = strings.TrimSpace(extractTextContent(n))
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				if strings.HasPrefix(name, "ocr-") && content != "" {
					result.Metadata[name] = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// collect gathers the nearest descendants of n whose class list contains
// one of classes, without descending into a match. Matches keep document
// order within each class.
func collect(n *html.Node, classes ...string) map[string][]*html.Node {
	found := make(map[string][]*html.Node)
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, class := range classes {
				if hasClass(node, class) {
					found[class] = append(found[class], node)
					return
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func processPage(n *html.Node) Page {
	title := getAttrVal(n, "title")
	page := Page{ID: getAttrVal(n, "id"), BBox: bboxOf(title)}

	props := ParseTitle(title)
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(image[0], `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	nodes := collect(n, classArea, classParagraph, classLine)
	for _, a := range nodes[classArea] {
		page.Areas = append(page.Areas, processArea(a))
	}
	for _, p := range nodes[classParagraph] {
		page.Paragraphs = append(page.Paragraphs, processParagraph(p))
	}
	for _, l := range nodes[classLine] {
		page.Lines = append(page.Lines, processLine(l))
	}
	return page
}

func processArea(n *html.Node) Area {
	area := Area{ID: getAttrVal(n, "id"), BBox: bboxOf(getAttrVal(n, "title"))}

	nodes := collect(n, classParagraph, classLine, classWord)
	for _, p := range nodes[classParagraph] {
		area.Paragraphs = append(area.Paragraphs, processParagraph(p))
	}
	for _, l := range nodes[classLine] {
		area.Lines = append(area.Lines, processLine(l))
	}
	for _, w := range nodes[classWord] {
		area.Words = append(area.Words, processWord(w))
	}
	return area
}

func processParagraph(n *html.Node) Paragraph {
	par := Paragraph{ID: getAttrVal(n, "id"), BBox: bboxOf(getAttrVal(n, "title"))}

	nodes := collect(n, classLine, classWord)
	for _, l := range nodes[classLine] {
		par.Lines = append(par.Lines, processLine(l))
	}
	for _, w := range nodes[classWord] {
		par.Words = append(par.Words, processWord(w))
	}
	return par
}

func processLine(n *html.Node) Line {
	line := Line{ID: getAttrVal(n, "id"), BBox: bboxOf(getAttrVal(n, "title"))}
	for _, w := range collect(n, classWord)[classWord] {
		line.Words = append(line.Words, processWord(w))
	}
	return line
}

func processWord(n *html.Node) Word {
	title := getAttrVal(n, "title")
	word := Word{
		ID:   getAttrVal(n, "id"),
		Text: extractTextContent(n),
		BBox: bboxOf(title),
	}

	props := ParseTitle(title)
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		if f, err := strconv.ParseFloat(conf[0], 64); err == nil {
			word.Confidence, word.HasConfidence = f, true
		}
	}
	for _, c := range props["x_confs"] {
		if f, err := strconv.ParseFloat(c, 64); err == nil {
			word.CharConfidences = append(word.CharConfidences, f)
		}
	}
	return word
}

func bboxOf(title string) BoundingBox {
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		return *bbox
	}
	return BoundingBox{}
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractTextContent(c))
	}
	return strings.TrimSpace(b.String())
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
