// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarag/internal/collect"
	"github.com/pdiddy/scholarag/internal/httputil"
	"github.com/pdiddy/scholarag/internal/render"
	"github.com/pdiddy/scholarag/pkg/types"
)

const (
	pdfHTTPTimeout = 10 * time.Second
	pdfBaseDelay   = 2 * time.Second
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Render search results as one PDF file per paper",
	Long: `Pdf fetches a single page of search results and renders each paper with a
non-empty abstract as a PDF file: wrapped title, a year/citations/authors
line, and the abstract body with automatic page breaks.

Files are named {year}_{title}.pdf with the title sanitized to alphanumeric
characters and underscores.`,
	RunE: runPDF,
}

func init() {
	pdfFlags(pdfCmd)
	rootCmd.AddCommand(pdfCmd)
}

func pdfFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "free-text search query")
	cmd.Flags().Int("limit", 20, "number of search results to request")
	cmd.Flags().Int("min-citations", 100, "minimum citation count")
	cmd.Flags().String("out", ".data/pdf", "directory for PDF files")
}

func pdfConfig(cmd *cobra.Command) (types.PDFExportConfig, error) {
	query := stringSetting(cmd, "query", "pdf.query")
	if query == "" {
		return types.PDFExportConfig{}, fmt.Errorf("no query: pass --query or set pdf.query in the config file")
	}

	return types.PDFExportConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   pdfHTTPTimeout,
			UserAgent: "scholarag/" + version,
		},
		Query:        query,
		Limit:        intSetting(cmd, "limit", "pdf.limit"),
		MinCitations: intSetting(cmd, "min-citations", "pdf.min_citations"),
		APIKey:       secretDefault("semantic-scholar-api-key", viper.GetString("pdf.api_key")),
		OutputDir:    stringSetting(cmd, "out", "pdf.output_dir"),
	}, nil
}

func runPDF(cmd *cobra.Command, args []string) error {
	cfg, err := pdfConfig(cmd)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()

	fetcher := &collect.Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		Retry: httputil.Policy{
			BaseDelay: pdfBaseDelay,
			Progress:  stderr,
		},
	}

	fmt.Fprintf(stderr, "searching %q (limit %d)\n", cfg.Query, cfg.Limit)

	page, err := fetcher.FetchPage(cmd.Context(), collect.Request{Query: cfg.Query}, 0, cfg.Limit)
	if err != nil {
		return err
	}

	var eligible []types.PaperRecord
	for _, p := range page {
		if p.CitationCount >= cfg.MinCitations {
			eligible = append(eligible, p)
		}
	}

	n, err := render.RenderAll(eligible, cfg.OutputDir, stderr)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no PDFs rendered: no papers matched the citation floor with a non-empty abstract")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rendered %d PDF files to %s\n", n, cfg.OutputDir)
	return nil
}
