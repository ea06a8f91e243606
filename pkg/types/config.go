// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by modes that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholarag/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CollectorConfig holds settings for the collect mode.
type CollectorConfig struct {
	HTTPConfig `yaml:",inline"`

	// Query is the free-text search query.
	Query string `json:"query" yaml:"query"`

	// MinCitations is the citation floor; papers below it are discarded.
	MinCitations int `json:"min_citations" yaml:"min_citations"`

	// TotalLimit is the target number of papers to collect.
	TotalLimit int `json:"total_limit" yaml:"total_limit"`

	// YearFrom restricts results to papers published in or after this year.
	// Zero means no lower bound.
	YearFrom int `json:"year_from" yaml:"year_from"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// DataDir is the directory the export files are written to (default ".data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PDFExportConfig holds settings for the pdf mode.
type PDFExportConfig struct {
	HTTPConfig `yaml:",inline"`

	// Query is the free-text search query.
	Query string `json:"query" yaml:"query"`

	// Limit is the number of search results to request.
	Limit int `json:"limit" yaml:"limit"`

	// MinCitations is the citation floor; papers below it are not rendered.
	MinCitations int `json:"min_citations" yaml:"min_citations"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// OutputDir is the directory the PDF files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}
