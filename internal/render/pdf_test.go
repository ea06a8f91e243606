// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/scholarag/pkg/types"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		paper types.PaperRecord
		want  string
	}{
		{
			"punctuation and spaces become underscores",
			types.PaperRecord{Title: "GPT-4: A Study", Year: 2023},
			"2023_GPT_4__A_Study.pdf",
		},
		{
			"plain title",
			types.PaperRecord{Title: "Attention", Year: 2017},
			"2017_Attention.pdf",
		},
		{
			"long title truncated to 50 chars",
			types.PaperRecord{Title: strings.Repeat("ab", 40), Year: 2020},
			"2020_" + strings.Repeat("ab", 25) + ".pdf",
		},
		{
			"missing year",
			types.PaperRecord{Title: "No Year"},
			"0_No_Year.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.paper); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderWritesPDF(t *testing.T) {
	dir := t.TempDir()
	p := types.PaperRecord{
		Title:         "A Paper With a Long Abstract",
		Year:          2021,
		CitationCount: 123,
		Authors:       []string{"Alice", "Bob", "Carol", "Dave"},
		Abstract:      strings.Repeat("This abstract spans several pages when rendered. ", 400),
	}

	path := filepath.Join(dir, Filename(p))
	if err := Render(p, path); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 || !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("output does not look like a PDF (%d bytes)", len(data))
	}
}

func TestRenderAllSkipsMissingAbstracts(t *testing.T) {
	dir := t.TempDir()
	papers := []types.PaperRecord{
		{Title: "Has Abstract", Year: 2022, Abstract: "Something substantive."},
		{Title: "No Abstract", Year: 2022},
		{Title: "Whitespace Abstract", Year: 2022, Abstract: "   "},
	}

	var progress strings.Builder
	n, err := RenderAll(papers, dir, &progress)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if n != 1 {
		t.Errorf("rendered %d files, want 1", n)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "2022_Has_Abstract.pdf" {
		t.Errorf("dir entries = %v", entries)
	}
	if !strings.Contains(progress.String(), "skipped (no abstract)") {
		t.Errorf("progress missing skip notice:\n%s", progress.String())
	}
}

func TestMetadataLine(t *testing.T) {
	p := types.PaperRecord{
		Year:          2023,
		CitationCount: 42,
		Authors:       []string{"A", "B", "C", "D", "E"},
	}
	got := metadataLine(p)
	if !strings.Contains(got, "Year: 2023") || !strings.Contains(got, "Citations: 42") {
		t.Errorf("metadataLine = %q", got)
	}
	if !strings.Contains(got, "A, B, C et al.") {
		t.Errorf("authors not capped: %q", got)
	}
}
