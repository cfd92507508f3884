// Package mets builds the article structure of a digitized document from its
// METS/MODS metadata.
//
// A METS file describes a document three times over:
//
//   - the logical structure map lists the articles in reading order,
//   - the physical structure map lists, per page, the text regions and the
//     rectangle each one occupies on the scanned image,
//   - the structural link block ties each article to its regions.
//
// ParseLogical, ParsePhysical and ParseLinks read one of these each and
// ResolveGeometry joins them into articles carrying the geometry of their
// regions. NewDocument runs all of it once, together with the descriptive
// MODS fields and the candidate publication years, and keeps the result on
// an immutable Document.
//
// Absent blocks are not errors; they produce empty results. Blocks that are
// present but malformed fail with a *StructureError naming the block.
package mets
