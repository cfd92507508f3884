package mets

import (
	"errors"
	"fmt"
)

// ErrMalformedStructure is matched by every *StructureError.
var ErrMalformedStructure = errors.New("mets: malformed structure")

// StructureError reports a structural block that exists but does not have the
// expected shape, for example a region division without a file pointer.
type StructureError struct {
	Document string // document code, filled in by NewDocument
	Block    string // "logical", "physical" or "structLink"
	Element  string // ID of the offending element, when it has one
	Reason   string
}

func (e *StructureError) Error() string {
	msg := "mets: malformed " + e.Block + " block"
	if e.Document != "" {
		msg = fmt.Sprintf("mets: document %s: malformed %s block", e.Document, e.Block)
	}
	if e.Element != "" {
		msg += fmt.Sprintf(" (element %q)", e.Element)
	}
	return msg + ": " + e.Reason
}

// Is makes errors.Is(err, ErrMalformedStructure) hold for structure errors.
func (e *StructureError) Is(target error) bool { return target == ErrMalformedStructure }

func malformed(block, element, reason string) *StructureError {
	return &StructureError{Block: block, Element: element, Reason: reason}
}
