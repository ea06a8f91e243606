// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes single-paper PDF files containing the title,
// a metadata line, and the abstract.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/scholarag/pkg/types"
)

const (
	pageMargin = 20.0 // mm

	titleSize     = 16.0
	metaSize      = 12.0
	headingSize   = 14.0
	bodySize      = 11.0
	titleLineHt   = 8.0
	metaLineHt    = 6.0
	headingLineHt = 7.0
	bodyLineHt    = 5.5
)

// Render writes one PDF for the paper at path. The layout is a wrapped bold
// title, an italic year/citations/authors line, a separator rule, an
// "Abstract" heading, and the wrapped abstract body. Page breaks are
// automatic when the body overflows.
func Render(p types.PaperRecord, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Core fonts are latin-1 only; translate what we can.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.MultiCell(0, titleLineHt, tr(p.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", metaSize)
	pdf.MultiCell(0, metaLineHt, tr(metadataLine(p)), "", "L", false)
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	pdf.SetLineWidth(0.4)
	pdf.Line(pageMargin, pdf.GetY(), pageWidth-pageMargin, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", headingSize)
	pdf.CellFormat(0, headingLineHt, "Abstract", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", bodySize)
	pdf.MultiCell(0, bodyLineHt, tr(p.Abstract), "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RenderAll writes one PDF per paper into dir, skipping papers without an
// abstract. Individual render failures are reported on w and do not abort
// the batch; the returned count is the number of files written.
func RenderAll(papers []types.PaperRecord, dir string, w io.Writer) (int, error) {
	if w == nil {
		w = io.Discard
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	rendered := 0
	for _, p := range papers {
		if strings.TrimSpace(p.Abstract) == "" {
			fmt.Fprintf(w, "skipped (no abstract): %s\n", p.Title)
			continue
		}
		path := filepath.Join(dir, Filename(p))
		if err := Render(p, path); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "wrote %s\n", path)
		rendered++
	}
	return rendered, nil
}

// metadataLine formats the year/citations/authors line under the title.
func metadataLine(p types.PaperRecord) string {
	parts := []string{
		fmt.Sprintf("Year: %d", p.Year),
		fmt.Sprintf("Citations: %d", p.CitationCount),
	}
	if len(p.Authors) > 0 {
		authors := p.Authors
		suffix := ""
		if len(authors) > 3 {
			authors = authors[:3]
			suffix = " et al."
		}
		parts = append(parts, strings.Join(authors, ", ")+suffix)
	}
	return strings.Join(parts, "  |  ")
}
