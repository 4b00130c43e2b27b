// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/arxivkit/pkg/types"
)

// Write renders out in the given format.
func Write(out Output, format types.OutputFormat, w io.Writer) error {
	switch format {
	case types.OutputTable, "":
		FormatTable(out, w)
		return nil
	case types.OutputJSON:
		return FormatJSON(out, w)
	case types.OutputCSL:
		return FormatCSL(out, w)
	}
	return fmt.Errorf("unknown output format %q (valid: table, json, csl)", format)
}

// FormatTable writes records as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-18s  %-56s  %-20s  %-10s  %s\n",
		"ID", "Title", "Authors", "Published", "Category")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range out.Records {
		fmt.Fprintf(w, "%-18s  %-56s  %-20s  %-10s  %s\n",
			r.ID, truncate(r.Title, 56), formatAuthors(r.AuthorNames()),
			r.Published.Format("2006-01-02"), r.PrimaryCategory)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Records))
	if out.Meta.TotalResults > len(out.Records) {
		fmt.Fprintf(w, " (%d-%d of %d)", out.Meta.StartIndex+1,
			out.Meta.StartIndex+len(out.Records), out.Meta.TotalResults)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Records)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
