// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholarag pipeline.
package types

import (
	"crypto/md5"
	"encoding/hex"
)

// PaperRecord holds the metadata for one paper as returned by the Semantic
// Scholar search API. Records are immutable once fetched; missing numeric
// fields decode to zero and missing strings to "".
type PaperRecord struct {
	// PaperID is the Semantic Scholar identifier. It may be absent; use ID
	// for a value that is always set.
	PaperID string `json:"paperId" yaml:"paper_id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract, or "" when the source has none.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// PublicationDate is the publication date in YYYY-MM-DD form, "" when unknown.
	PublicationDate string `json:"publicationDate" yaml:"publication_date"`

	// Venue is the publication venue.
	Venue string `json:"venue" yaml:"venue"`

	// URL is the Semantic Scholar page for the paper.
	URL string `json:"url" yaml:"url"`

	// Authors lists the author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// CitationCount is the number of citing papers.
	CitationCount int `json:"citationCount" yaml:"citation_count"`

	// ReferenceCount is the number of referenced papers.
	ReferenceCount int `json:"referenceCount" yaml:"reference_count"`

	// FieldsOfStudy lists the paper's research fields.
	FieldsOfStudy []string `json:"fieldsOfStudy" yaml:"fields_of_study"`

	// PublicationTypes lists publication type labels (e.g. "JournalArticle").
	PublicationTypes []string `json:"publicationTypes" yaml:"publication_types"`

	// DOI and ArxivID are external identifiers, "" when absent.
	DOI     string `json:"doi" yaml:"doi"`
	ArxivID string `json:"arxivId" yaml:"arxiv_id"`

	// TLDR is a short machine-generated summary, "" when absent.
	TLDR string `json:"tldr" yaml:"tldr"`
}

// ID returns PaperID, or a deterministic fallback derived from the title
// when the source omitted the identifier. The fallback is the hex MD5 digest
// of the title, so identical input always yields the same id.
func (p PaperRecord) ID() string {
	if p.PaperID != "" {
		return p.PaperID
	}
	sum := md5.Sum([]byte(p.Title))
	return hex.EncodeToString(sum[:])
}
