// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"sort"

	"github.com/pdiddy/scholarag/pkg/types"
)

// Finalize sorts papers most-recent-first and truncates to limit. The order
// is descending by the (year, publicationDate) pair; a missing year counts
// as 0 and a missing date as "", so within a year dated records come before
// undated ones. The sort is stable: fetch order is preserved among equal
// keys. Finalize is a pure post-pass over the accumulator; it never filters.
func Finalize(papers []types.PaperRecord, limit int) []types.PaperRecord {
	sort.SliceStable(papers, func(i, j int) bool {
		if papers[i].Year != papers[j].Year {
			return papers[i].Year > papers[j].Year
		}
		return papers[i].PublicationDate > papers[j].PublicationDate
	})
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	return papers
}
