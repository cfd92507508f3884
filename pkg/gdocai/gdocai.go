// Package gdocai reads stored Google Document AI OCR output and turns it
// into page values.
//
// Document AI responses are decoded from their JSON form, converted into the
// hOCR object model (blocks become content areas, tokens become words) and
// from there into page.Page values, so Document AI output flows through the
// same path as hOCR files.
//
// Main Functions:
//
// - LoadDocument: Decodes a Document or ProcessResponse JSON payload
// - ToHOCR: Converts a Document AI document to the hOCR object model
// - Pages: Converts a Document AI document to page values
package gdocai

import (
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/gardar/metsmine/pkg/hocr"
	"github.com/gardar/metsmine/pkg/page"
)

var unmarshal = protojson.UnmarshalOptions{DiscardUnknown: true}

// LoadDocument decodes a Document AI result stored as JSON. Both a bare
// Document and a ProcessResponse wrapping one are accepted.
func LoadDocument(data []byte) (*documentaipb.Document, error) {
	var resp documentaipb.ProcessResponse
	if err := unmarshal.Unmarshal(data, &resp); err == nil && resp.GetDocument() != nil {
		return resp.GetDocument(), nil
	}

	var doc documentaipb.Document
	if err := unmarshal.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode Document AI response: %w", err)
	}
	return &doc, nil
}

// Pages converts every page of doc into a page value. name is the file the
// response was read from and supplies the page codes.
func Pages(doc *documentaipb.Document, name string) []page.Page {
	return hocr.ToPages(*ToHOCR(doc), name)
}
