// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarag/internal/collect"
	"github.com/pdiddy/scholarag/internal/export"
	"github.com/pdiddy/scholarag/internal/httputil"
	"github.com/pdiddy/scholarag/internal/stats"
	"github.com/pdiddy/scholarag/pkg/types"
)

const (
	collectHTTPTimeout = 30 * time.Second
	collectBaseDelay   = 5 * time.Second
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect paper metadata and export RAG-ready documents",
	Long: `Collect pages through the Semantic Scholar search API until the target
count is reached, keeping only papers at or above the citation floor. The
accumulated set is sorted most-recent-first and written to the data
directory as JSONL, JSON, CSV, and YAML RAG documents plus a
vector-database document list.

Transient API failures are retried with backoff; after three consecutive
page failures the run stops and exports whatever was collected. A run that
collects nothing exits nonzero.`,
	RunE: runCollect,
}

func init() {
	collectFlags(collectCmd)
	rootCmd.AddCommand(collectCmd)
}

func collectFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "free-text search query")
	cmd.Flags().Int("min-citations", 100, "minimum citation count")
	cmd.Flags().Int("total-limit", 50, "target number of papers")
	cmd.Flags().Int("year-from", 0, "publication year lower bound (0 = none)")
	cmd.Flags().String("data-dir", ".data", "directory for export files")
}

func collectConfig(cmd *cobra.Command) (types.CollectorConfig, error) {
	query := stringSetting(cmd, "query", "collect.query")
	if query == "" {
		return types.CollectorConfig{}, fmt.Errorf("no query: pass --query or set collect.query in the config file")
	}

	return types.CollectorConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   collectHTTPTimeout,
			UserAgent: "scholarag/" + version,
		},
		Query:        query,
		MinCitations: intSetting(cmd, "min-citations", "collect.min_citations"),
		TotalLimit:   intSetting(cmd, "total-limit", "collect.total_limit"),
		YearFrom:     intSetting(cmd, "year-from", "collect.year_from"),
		APIKey:       secretDefault("semantic-scholar-api-key", viper.GetString("collect.api_key")),
		DataDir:      stringSetting(cmd, "data-dir", "collect.data_dir"),
	}, nil
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := collectConfig(cmd)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	fetcher := &collect.Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		Retry: httputil.Policy{
			BaseDelay:            collectBaseDelay,
			ExponentialRateLimit: true,
			Progress:             stderr,
		},
	}

	// Politeness delay between pages: shorter when a key is configured.
	pageDelay := 3 * time.Second
	if cfg.APIKey != "" {
		pageDelay = time.Second
	}

	collector := &collect.Collector{
		Fetcher:   fetcher,
		PageDelay: pageDelay,
		Progress:  stderr,
	}

	fmt.Fprintf(stderr, "searching %q (min citations %d, target %d)\n",
		cfg.Query, cfg.MinCitations, cfg.TotalLimit)

	papers, err := collector.Collect(cmd.Context(), collect.Request{
		Query:        cfg.Query,
		MinCitations: cfg.MinCitations,
		TotalLimit:   cfg.TotalLimit,
		YearFrom:     cfg.YearFrom,
	})
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		return fmt.Errorf("no papers collected; the API may be rate limited, try again in a few minutes")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	docs := export.RAGDocuments(papers)
	base := filepath.Join(cfg.DataDir, "papers_rag")
	writers := []struct {
		path  string
		write func() error
	}{
		{base + ".jsonl", func() error { return export.WriteJSONL(base+".jsonl", docs) }},
		{base + ".json", func() error { return export.WriteJSON(base+".json", docs) }},
		{base + ".csv", func() error { return export.WriteCSV(base+".csv", docs) }},
		{base + ".yaml", func() error { return export.WriteYAML(base+".yaml", docs) }},
		{filepath.Join(cfg.DataDir, "papers_vector_db.json"), func() error {
			return export.WriteVectorJSON(filepath.Join(cfg.DataDir, "papers_vector_db.json"),
				export.VectorDocuments(papers))
		}},
	}
	for _, w := range writers {
		if err := w.write(); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "wrote %d documents to %s\n", len(docs), w.path)
	}

	fmt.Fprintf(stdout, "\nCollected %d papers for %q\n\n", len(papers), cfg.Query)
	stats.Summarize(papers).RenderTable(stdout)

	fmt.Fprintf(stdout, "\nSample document:\n")
	export.FormatSample(docs[0], stdout)
	return nil
}
