// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats summarizes a collection run.
package stats

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pdiddy/scholarag/pkg/types"
)

// Summary aggregates year and citation statistics over collected papers.
// Year bounds consider only papers with a known year.
type Summary struct {
	Count        int
	YearMin      int
	YearMax      int
	CitationMean float64
	CitationMax  int
	CitationMin  int
}

// Summarize computes the run summary.
func Summarize(papers []types.PaperRecord) Summary {
	s := Summary{Count: len(papers)}
	if len(papers) == 0 {
		return s
	}

	citationSum := 0
	s.CitationMin = papers[0].CitationCount
	for _, p := range papers {
		if p.Year > 0 {
			if s.YearMin == 0 || p.Year < s.YearMin {
				s.YearMin = p.Year
			}
			if p.Year > s.YearMax {
				s.YearMax = p.Year
			}
		}
		citationSum += p.CitationCount
		if p.CitationCount > s.CitationMax {
			s.CitationMax = p.CitationCount
		}
		if p.CitationCount < s.CitationMin {
			s.CitationMin = p.CitationCount
		}
	}
	s.CitationMean = float64(citationSum) / float64(len(papers))
	return s
}

// RenderTable writes the summary as a borderless two-column table.
func (s Summary) RenderTable(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"Metric", "Value"})

	rows := [][]string{
		{"Papers collected", fmt.Sprintf("%d", s.Count)},
	}
	if s.YearMin > 0 {
		rows = append(rows, []string{"Year range", fmt.Sprintf("%d - %d", s.YearMin, s.YearMax)})
	}
	if s.Count > 0 {
		rows = append(rows,
			[]string{"Average citations", fmt.Sprintf("%.1f", s.CitationMean)},
			[]string{"Max citations", fmt.Sprintf("%d", s.CitationMax)},
			[]string{"Min citations", fmt.Sprintf("%d", s.CitationMin)},
		)
	}
	table.Bulk(rows)
	table.Render()
}
