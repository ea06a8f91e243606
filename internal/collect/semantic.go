// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholarag/internal/httputil"
	"github.com/pdiddy/scholarag/pkg/types"
)

// searchAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var searchAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const searchFields = "paperId,title,abstract,year,authors,citationCount," +
	"publicationDate,venue,url,externalIds,referenceCount,fieldsOfStudy," +
	"publicationTypes,tldr"

// Client fetches search result pages from the Semantic Scholar API.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	UserAgent string

	// Retry governs the per-page retry budget and backoff.
	Retry httputil.Policy
}

// FetchPage requests one page of search results at the given offset. The
// request goes through the retry executor; an error means the retry budget
// for this page is exhausted.
func (c *Client) FetchPage(ctx context.Context, req Request, offset, limit int) ([]types.PaperRecord, error) {
	params := url.Values{
		"query":  {req.Query},
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
		"fields": {searchFields},
	}
	if req.YearFrom > 0 {
		params.Set("year", fmt.Sprintf("%d-", req.YearFrom))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		httpReq.Header.Set("x-api-key", c.APIKey)
	}

	var sr searchResponse
	if err := c.Retry.Do(ctx, c.HTTP, httpReq, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&sr)
	}); err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(sr.Data))
	for _, p := range sr.Data {
		records = append(records, p.toRecord())
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type searchResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Data   []searchPaper `json:"data"`
}

type searchPaper struct {
	PaperID          string            `json:"paperId"`
	Title            string            `json:"title"`
	Abstract         string            `json:"abstract"`
	Year             int               `json:"year"`
	PublicationDate  string            `json:"publicationDate"`
	Venue            string            `json:"venue"`
	URL              string            `json:"url"`
	CitationCount    int               `json:"citationCount"`
	ReferenceCount   int               `json:"referenceCount"`
	FieldsOfStudy    []string          `json:"fieldsOfStudy"`
	PublicationTypes []string          `json:"publicationTypes"`
	Authors          []searchAuthor    `json:"authors"`
	ExternalIDs      searchExternalIDs `json:"externalIds"`
	TLDR             *searchTLDR       `json:"tldr"`
}

type searchAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type searchExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}

type searchTLDR struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

func (p searchPaper) toRecord() types.PaperRecord {
	r := types.PaperRecord{
		PaperID:          p.PaperID,
		Title:            p.Title,
		Abstract:         p.Abstract,
		Year:             p.Year,
		PublicationDate:  p.PublicationDate,
		Venue:            p.Venue,
		URL:              p.URL,
		CitationCount:    p.CitationCount,
		ReferenceCount:   p.ReferenceCount,
		FieldsOfStudy:    p.FieldsOfStudy,
		PublicationTypes: p.PublicationTypes,
		DOI:              p.ExternalIDs.DOI,
		ArxivID:          p.ExternalIDs.ArXiv,
	}
	for _, a := range p.Authors {
		if a.Name != "" {
			r.Authors = append(r.Authors, a.Name)
		}
	}
	if p.TLDR != nil {
		r.TLDR = p.TLDR.Text
	}
	return r
}
