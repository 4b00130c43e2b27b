package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivkit/internal/export"
	"github.com/pdiddy/arxivkit/internal/httputil"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search arXiv and print the decoded results",
	Long: `Search builds a query the same way as "arxivkit url", fetches it with a
single GET and decodes the Atom response. Results print as a table, JSON or
CSL-YAML (for Pandoc and reference managers).

Use --save-response to keep the raw XML for "arxivkit decode".`,
	RunE: runSearch,
}

func init() {
	addQueryFlags(searchCmd)
	addOutputFlags(searchCmd)
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default from config, 30s)")
	searchCmd.Flags().String("save-response", "", "write the raw response body to a file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	qf, err := queryFileFromFlags(cmd, cfg.Query)
	if err != nil {
		return err
	}
	q, err := buildQuery(cmd, qf, cfg.Query)
	if err != nil {
		return err
	}

	timeout := cfg.HTTP.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	client := &http.Client{Timeout: timeout}

	url := q.URL()
	fmt.Fprintln(os.Stderr, "GET", url)
	body, err := httputil.Fetch(context.Background(), client, url, cfg.HTTP.UserAgent)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save-response"); path != "" {
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("saving response: %w", err)
		}
	}

	out, err := decodeRecords(cmd, body)
	if err != nil {
		return err
	}
	if shown := out.Meta.StartIndex + len(out.Records); shown < out.Meta.TotalResults {
		fmt.Fprintf(os.Stderr, "warning: %d more results available (use --start %d)\n",
			out.Meta.TotalResults-shown, shown)
	}
	return export.Write(out, outputFormat(cmd, cfg), cmd.OutOrStdout())
}
