package hocr

import (
	"fmt"
	"math"
)

// HOCR represents the entire hOCR document structure
type HOCR struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-langs and similar meta tags
	Pages    []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // ppageno from the title attribute
	ImageName  string      // Source image filename
	BBox       BoundingBox // Page coordinates
	Areas      []Area      // Content areas (columns)
	Paragraphs []Paragraph // Paragraphs outside any area
	Lines      []Line      // Lines outside any area or paragraph
}

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string
	BBox       BoundingBox
	Paragraphs []Paragraph
	Lines      []Line // Lines directly under the area
	Words      []Word // Words directly under the area (no line parent)
}

// Paragraph corresponds to class 'ocr_par'
type Paragraph struct {
	ID    string
	BBox  BoundingBox
	Lines []Line
	Words []Word // Words directly under the paragraph (no line parent)
}

// Line corresponds to class 'ocr_line'
type Line struct {
	ID    string
	BBox  BoundingBox
	Words []Word
}

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID              string
	Text            string
	BBox            BoundingBox
	Confidence      float64   // x_wconf (0-100)
	HasConfidence   bool      // false when the title carries no x_wconf
	CharConfidences []float64 // x_confs, one per character when present
}

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from the x1, y1, x2, y2 values of a
// 'bbox' property.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// IsZero reports whether no bbox was recorded.
func (b BoundingBox) IsZero() bool { return b == BoundingBox{} }

// Coords renders the box as "left,top,right,bottom" in whole pixels, the
// form METS area COORDS use. A zero box renders as "".
func (b BoundingBox) Coords() string {
	if b.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d",
		int(math.Round(b.X1)), int(math.Round(b.Y1)),
		int(math.Round(b.X2)), int(math.Round(b.Y2)))
}
