// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export reshapes collected papers into downstream-consumable
// documents and writes them to flat files (JSONL, JSON, CSV, YAML, plus a
// vector-database document list).
package export

import (
	"strings"

	"github.com/pdiddy/scholarag/pkg/types"
)

// RAGDocument is a paper reshaped for retrieval-augmented-generation
// indexing: a concatenated free-text content field plus a metadata sidecar
// for filtering and context.
type RAGDocument struct {
	ID       string      `json:"id" yaml:"id"`
	Source   string      `json:"source" yaml:"source"`
	Type     string      `json:"type" yaml:"type"`
	Content  string      `json:"content" yaml:"content"`
	Metadata RAGMetadata `json:"metadata" yaml:"metadata"`
	Abstract string      `json:"abstract" yaml:"abstract"`
	Summary  string      `json:"summary" yaml:"summary"`
}

// RAGMetadata carries the filterable paper fields. Year, publication date,
// and external identifiers are pointers so absent values serialize as null
// rather than a zero value.
type RAGMetadata struct {
	Title           string   `json:"title" yaml:"title"`
	Authors         []string `json:"authors" yaml:"authors"`
	Year            *int     `json:"year" yaml:"year"`
	PublicationDate *string  `json:"publication_date" yaml:"publication_date"`
	Venue           string   `json:"venue" yaml:"venue"`
	CitationCount   int      `json:"citation_count" yaml:"citation_count"`
	FieldsOfStudy   []string `json:"fields_of_study" yaml:"fields_of_study"`
	URL             string   `json:"url" yaml:"url"`
	DOI             *string  `json:"doi" yaml:"doi"`
	ArxivID         *string  `json:"arxiv_id" yaml:"arxiv_id"`
}

// NewRAGDocument builds the RAG shape for one paper. The content field
// concatenates the title, summary, abstract, and fields of study as labeled
// sections separated by blank lines; empty sections are omitted.
func NewRAGDocument(p types.PaperRecord) RAGDocument {
	var parts []string
	if p.Title != "" {
		parts = append(parts, "Title: "+p.Title)
	}
	if p.TLDR != "" {
		parts = append(parts, "Summary: "+p.TLDR)
	}
	if p.Abstract != "" {
		parts = append(parts, "Abstract: "+p.Abstract)
	}
	if len(p.FieldsOfStudy) > 0 {
		parts = append(parts, "Fields of Study: "+strings.Join(p.FieldsOfStudy, ", "))
	}

	return RAGDocument{
		ID:      p.ID(),
		Source:  "semantic_scholar",
		Type:    "academic_paper",
		Content: strings.Join(parts, "\n\n"),
		Metadata: RAGMetadata{
			Title:           p.Title,
			Authors:         p.Authors,
			Year:            yearPtr(p.Year),
			PublicationDate: strPtr(p.PublicationDate),
			Venue:           p.Venue,
			CitationCount:   p.CitationCount,
			FieldsOfStudy:   p.FieldsOfStudy,
			URL:             p.URL,
			DOI:             strPtr(p.DOI),
			ArxivID:         strPtr(p.ArxivID),
		},
		Abstract: p.Abstract,
		Summary:  p.TLDR,
	}
}

// RAGDocuments converts papers in order.
func RAGDocuments(papers []types.PaperRecord) []RAGDocument {
	docs := make([]RAGDocument, len(papers))
	for i, p := range papers {
		docs[i] = NewRAGDocument(p)
	}
	return docs
}

// yearPtr returns nil for an unknown year (0).
func yearPtr(year int) *int {
	if year == 0 {
		return nil
	}
	return &year
}

// strPtr returns nil for "".
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
