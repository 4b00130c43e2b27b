package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivkit/internal/bib"
	"github.com/pdiddy/arxivkit/internal/export"
	"github.com/pdiddy/arxivkit/internal/httputil"
	"github.com/pdiddy/arxivkit/pkg/feed"
)

// requestGap is the pause between resolve requests. The arXiv API asks
// clients to wait three seconds between calls.
var requestGap = 3 * time.Second

var bibCmd = &cobra.Command{
	Use:   "bib [file.bib]",
	Short: "Find arXiv records for BibTeX entries",
	Long: `Bib reads a BibTeX file and builds one arXiv query per entry: entries with
an eprint field become id lookups, the rest search by title and first author.

Without --resolve the query URLs are printed. With --resolve each query is
fetched and the best match is printed next to the citation key.`,
	Args: cobra.ExactArgs(1),
	RunE: runBib,
}

func init() {
	bibCmd.Flags().Bool("resolve", false, "fetch each query and print the first match")
	bibCmd.Flags().String("base-url", "", "API endpoint (default https://export.arxiv.org/api/query)")

	rootCmd.AddCommand(bibCmd)
}

func runBib(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()
	entries, err := bib.Read(f)
	if err != nil {
		return err
	}

	base := cfg.Query.BaseURL
	if b, _ := cmd.Flags().GetString("base-url"); b != "" {
		base = b
	}
	resolve, _ := cmd.Flags().GetBool("resolve")
	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	w := cmd.OutOrStdout()

	failed := 0
	for i, e := range entries {
		l, err := bib.ToLookup(e)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			failed++
			continue
		}
		l.Query.WithBase(base)
		if !resolve {
			fmt.Fprintf(w, "%-24s  %s\n", l.Key, l.Query.URL())
			continue
		}

		if i > 0 {
			time.Sleep(requestGap)
		}
		rec, err := resolveLookup(cmd.Context(), client, l, cfg.HTTP.UserAgent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", l.Key, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "%-24s  %-18s  %s\n", l.Key, rec.ID, truncateTitle(rec.Title))
	}

	if failed > 0 {
		return fmt.Errorf("%d entr(ies) failed", failed)
	}
	return nil
}

var errNoMatch = errors.New("no match")

// resolveLookup fetches l and returns its first record.
func resolveLookup(ctx context.Context, client *http.Client, l bib.Lookup, userAgent string) (export.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := httputil.Fetch(ctx, client, l.Query.URL(), userAgent)
	if err != nil {
		return export.Record{}, err
	}
	seq, err := feed.Sequence[export.Record](body)
	if err != nil {
		return export.Record{}, err
	}
	if len(seq.Items) == 0 {
		return export.Record{}, errNoMatch
	}
	return seq.Items[0], nil
}

func truncateTitle(s string) string {
	r := []rune(s)
	if len(r) <= 60 {
		return s
	}
	return string(r[:57]) + "..."
}
