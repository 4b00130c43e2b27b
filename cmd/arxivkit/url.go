package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivkit/internal/queryfile"
	"github.com/pdiddy/arxivkit/pkg/query"
	"github.com/pdiddy/arxivkit/pkg/types"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the arXiv API URL for a query",
	Long: `URL builds an arXiv API query from field flags or a YAML query file and
prints the request URL. Field flags are combined with AND; use a query file
for OR and ANDNOT.

  arxivkit url --title "quantum error correction" --category quant-ph --max-results 50
  arxivkit url --id 2201.13452 --id math.CA/0501001v2
  arxivkit url --query-file queries/qec.yaml`,
	RunE: runURL,
}

// fieldFlags maps a flag name to the search prefix it fills.
var fieldFlags = []struct {
	flag   string
	prefix string
	usage  string
}{
	{"title", "ti", "match in title"},
	{"author", "au", "match in author names"},
	{"abstract", "abs", "match in abstract"},
	{"comment", "co", "match in comment"},
	{"journal-ref", "jr", "match in journal reference"},
	{"category", "cat", "restrict to a category (e.g. hep-th, cs.AI)"},
	{"report-number", "rn", "match a report number"},
	{"all", "all", "match in any field"},
}

func init() {
	addQueryFlags(urlCmd)
	urlCmd.Flags().String("save", "", "write the query as a YAML query file")

	rootCmd.AddCommand(urlCmd)
}

// addQueryFlags registers the flags shared by url and search.
func addQueryFlags(cmd *cobra.Command) {
	for _, f := range fieldFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().String("from", "", "submitted on or after (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "submitted on or before (YYYY-MM-DD)")
	cmd.Flags().StringSlice("id", nil, "restrict to identifiers (repeatable or comma-separated)")
	cmd.Flags().String("sort", "", "sort key: relevance, lastUpdatedDate, submittedDate")
	cmd.Flags().String("order", "", "sort order: ascending, descending")
	cmd.Flags().Int("start", 0, "index of the first result")
	cmd.Flags().Int("max-results", 0, "page size (default from config, 10)")
	cmd.Flags().String("query-file", "", "load the query from a YAML file")
	cmd.Flags().String("base-url", "", "API endpoint (default https://export.arxiv.org/api/query)")
	cmd.Flags().Bool("http", false, "use plain http")
}

func runURL(cmd *cobra.Command, args []string) error {
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

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := queryfile.Save(path, qf); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Saved query to", path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), q.URL())
	return nil
}

// queryFileFromFlags collects the query either from --query-file or from the
// field flags. Config defaults fill sort and page size when not given.
func queryFileFromFlags(cmd *cobra.Command, defaults types.QueryConfig) (*queryfile.QueryFile, error) {
	var qf *queryfile.QueryFile
	if path, _ := cmd.Flags().GetString("query-file"); path != "" {
		for _, f := range fieldFlags {
			if cmd.Flags().Changed(f.flag) {
				return nil, fmt.Errorf("--%s cannot be combined with --query-file", f.flag)
			}
		}
		loaded, err := queryfile.Load(path)
		if err != nil {
			return nil, err
		}
		qf = loaded
	} else {
		qf = &queryfile.QueryFile{}
		var terms []queryfile.Node
		for _, f := range fieldFlags {
			if v, _ := cmd.Flags().GetString(f.flag); v != "" {
				terms = append(terms, queryfile.Node{Field: f.prefix, Value: v})
			}
		}
		switch len(terms) {
		case 0:
		case 1:
			qf.Query = &terms[0]
		default:
			qf.Query = &queryfile.Node{And: terms}
		}
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return nil, fmt.Errorf("--from and --to must be given together")
		}
		qf.Submitted = &queryfile.DateRange{From: from, To: to}
	}

	ids, _ := cmd.Flags().GetStringSlice("id")
	qf.IDs = append(qf.IDs, ids...)

	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		qf.SortBy = s
	} else if qf.SortBy == "" {
		qf.SortBy = defaults.SortBy
	}
	if o, _ := cmd.Flags().GetString("order"); o != "" {
		qf.SortOrder = o
	} else if qf.SortOrder == "" {
		qf.SortOrder = defaults.SortOrder
	}

	if cmd.Flags().Changed("start") {
		start, _ := cmd.Flags().GetInt("start")
		qf.Start = &start
	}
	if cmd.Flags().Changed("max-results") {
		n, _ := cmd.Flags().GetInt("max-results")
		qf.MaxResults = &n
	} else if qf.MaxResults == nil && defaults.MaxResults > 0 {
		n := defaults.MaxResults
		qf.MaxResults = &n
	}
	return qf, nil
}

// buildQuery turns qf into a query and applies endpoint settings.
func buildQuery(cmd *cobra.Command, qf *queryfile.QueryFile, defaults types.QueryConfig) (*query.Query, error) {
	q, err := qf.Build()
	if err != nil {
		return nil, err
	}
	base := defaults.BaseURL
	if b, _ := cmd.Flags().GetString("base-url"); b != "" {
		base = b
	}
	q.WithBase(base)
	if useHTTP, _ := cmd.Flags().GetBool("http"); useHTTP {
		q.HTTP()
	}
	return q, nil
}
