// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"
)

// sampleContentLimit caps the content preview in FormatSample.
const sampleContentLimit = 300

// FormatSample writes a human-readable preview of one document to w: id,
// title, the first three authors, year, citations, and the first 300
// characters of the content.
func FormatSample(d RAGDocument, w io.Writer) {
	fmt.Fprintf(w, "ID: %s\n", d.ID)
	fmt.Fprintf(w, "Title: %s\n", d.Metadata.Title)

	authors := d.Metadata.Authors
	if len(authors) > 3 {
		authors = authors[:3]
	}
	fmt.Fprintf(w, "Authors: %s\n", strings.Join(authors, ", "))

	if d.Metadata.Year != nil {
		fmt.Fprintf(w, "Year: %d\n", *d.Metadata.Year)
	}
	fmt.Fprintf(w, "Citations: %d\n", d.Metadata.CitationCount)

	fmt.Fprintf(w, "\nContent Preview:\n%s\n", truncateRunes(d.Content, sampleContentLimit))
}
