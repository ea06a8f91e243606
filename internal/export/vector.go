// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"

	"github.com/pdiddy/scholarag/pkg/types"
)

// VectorDocument is the flattened shape for vector databases: the text to
// embed plus a metadata map.
type VectorDocument struct {
	Text     string         `json:"text"`
	Metadata VectorMetadata `json:"metadata"`
}

// VectorMetadata carries the paper fields kept alongside an embedding.
type VectorMetadata struct {
	PaperID       string   `json:"paper_id"`
	Title         string   `json:"title"`
	Authors       string   `json:"authors"`
	Year          *int     `json:"year"`
	CitationCount int      `json:"citation_count"`
	Venue         string   `json:"venue"`
	URL           string   `json:"url"`
	Fields        []string `json:"fields"`
}

// VectorDocuments converts papers into the vector-database shape. The text
// is the title, summary, and abstract joined by blank lines.
func VectorDocuments(papers []types.PaperRecord) []VectorDocument {
	docs := make([]VectorDocument, len(papers))
	for i, p := range papers {
		text := strings.TrimSpace(p.Title + "\n\n" + p.TLDR + "\n\n" + p.Abstract)
		docs[i] = VectorDocument{
			Text: text,
			Metadata: VectorMetadata{
				PaperID:       p.ID(),
				Title:         p.Title,
				Authors:       strings.Join(p.Authors, ", "),
				Year:          yearPtr(p.Year),
				CitationCount: p.CitationCount,
				Venue:         p.Venue,
				URL:           p.URL,
				Fields:        p.FieldsOfStudy,
			},
		}
	}
	return docs
}
