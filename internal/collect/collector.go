// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect drives paginated paper collection against the Semantic
// Scholar search API: it advances an offset cursor page by page, filters each
// page by a citation floor, and stops on exhaustion, a short page, or too
// many consecutive failures.
package collect

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/scholarag/pkg/types"
)

const (
	defaultPageSize        = 100
	defaultMaxConsecutive  = 3
	defaultFailureCooldown = 30 * time.Second
)

// Request defines the filter and stopping criteria for one collection run.
type Request struct {
	Query        string
	MinCitations int
	TotalLimit   int

	// YearFrom restricts results to papers published in or after this year.
	// Zero means no lower bound.
	YearFrom int
}

// PageFetcher fetches one page of search results at the given offset.
// Implemented by Client; tests inject fakes to exercise the loop without
// network I/O.
type PageFetcher interface {
	FetchPage(ctx context.Context, req Request, offset, limit int) ([]types.PaperRecord, error)
}

// Collector runs the paginated collection loop.
type Collector struct {
	Fetcher PageFetcher

	// PageSize is the number of records requested per page (default 100).
	PageSize int

	// MaxConsecutiveFailures is the circuit-breaker threshold (default 3).
	// Once that many pages in a row fail, the run stops and returns what has
	// been accumulated.
	MaxConsecutiveFailures int

	// PageDelay is the politeness delay after each successful page.
	PageDelay time.Duration

	// FailureCooldown is the wait after a failed page before retrying the
	// same offset (default 30 s).
	FailureCooldown time.Duration

	// Progress receives per-page progress lines. Nil discards them.
	Progress io.Writer
}

// runState tracks one collection run. It is local to Collect; the
// accumulator holds records in fetch order until finalization sorts them.
type runState struct {
	papers   []types.PaperRecord
	offset   int
	failures int
}

// Collect fetches pages until the target count is reached or a stop
// condition fires, then returns the accumulated records sorted by recency
// and truncated to req.TotalLimit. Every returned record satisfies the
// citation floor.
//
// A tripped circuit breaker is degraded success, not an error: Collect
// reports the shortfall on the progress writer and returns the partial
// result. The only errors returned are context cancellation and an invalid
// request.
func (c *Collector) Collect(ctx context.Context, req Request) ([]types.PaperRecord, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is empty")
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxFailures := c.MaxConsecutiveFailures
	if maxFailures <= 0 {
		maxFailures = defaultMaxConsecutive
	}
	cooldown := c.FailureCooldown
	if cooldown == 0 {
		cooldown = defaultFailureCooldown
	}
	w := c.Progress
	if w == nil {
		w = io.Discard
	}

	var st runState
	for len(st.papers) < req.TotalLimit {
		page, err := c.Fetcher.FetchPage(ctx, req, st.offset, pageSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			st.failures++
			fmt.Fprintf(w, "page fetch failed at offset %d (%d/%d consecutive): %v\n",
				st.offset, st.failures, maxFailures, err)
			if st.failures >= maxFailures {
				fmt.Fprintf(w, "stopping after %d consecutive failures; keeping %d collected papers\n",
					maxFailures, len(st.papers))
				break
			}
			if serr := sleep(ctx, cooldown); serr != nil {
				return nil, serr
			}
			continue
		}

		if len(page) == 0 {
			fmt.Fprintf(w, "no more results (offset %d)\n", st.offset)
			break
		}

		kept := 0
		for _, p := range page {
			if p.CitationCount >= req.MinCitations {
				st.papers = append(st.papers, p)
				kept++
			}
		}
		st.failures = 0
		fmt.Fprintf(w, "collected %d papers (total %d, offset %d)\n", kept, len(st.papers), st.offset)

		if serr := sleep(ctx, c.PageDelay); serr != nil {
			return nil, serr
		}

		if len(page) < pageSize {
			fmt.Fprintf(w, "last page reached (%d results)\n", len(page))
			break
		}
		st.offset += pageSize
	}

	return Finalize(st.papers, req.TotalLimit), nil
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
