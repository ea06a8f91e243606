// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// csvColumns is the fixed column subset of the CSV export.
var csvColumns = []string{"id", "title", "content", "year", "citation_count", "url"}

// csvContentLimit caps the content column length.
const csvContentLimit = 500

// WriteJSONL writes one JSON object per line. Non-ASCII text is written as
// UTF-8, not escaped.
func WriteJSONL(path string, docs []RAGDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			f.Close()
			return fmt.Errorf("encoding document %s: %w", d.ID, err)
		}
	}
	return f.Close()
}

// WriteJSON writes the documents as a single indented JSON array.
func WriteJSON(path string, docs []RAGDocument) error {
	return writeJSONFile(path, docs)
}

// WriteCSV writes the fixed column subset, truncating content to 500 chars.
func WriteCSV(path string, docs []RAGDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, d := range docs {
		year := ""
		if d.Metadata.Year != nil {
			year = strconv.Itoa(*d.Metadata.Year)
		}
		row := []string{
			d.ID,
			d.Metadata.Title,
			truncateRunes(d.Content, csvContentLimit),
			year,
			strconv.Itoa(d.Metadata.CitationCount),
			d.Metadata.URL,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV row %s: %w", d.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}

// WriteYAML writes the documents as a YAML list.
func WriteYAML(path string, docs []RAGDocument) error {
	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteVectorJSON writes the vector-database document list as indented JSON.
func WriteVectorJSON(path string, docs []VectorDocument) error {
	return writeJSONFile(path, docs)
}

// truncateRunes cuts s to at most n characters on a rune boundary,
// appending "..." when something was cut. Counting characters rather than
// bytes keeps multi-byte text valid after the cut.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + "..."
		}
		count++
	}
	return s
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
