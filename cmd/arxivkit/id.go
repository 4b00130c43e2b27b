package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

var idCmd = &cobra.Command{
	Use:   "id [identifiers...]",
	Short: "Validate and normalise arXiv identifiers",
	Long: `Id parses each argument as an arXiv identifier and prints its canonical
form, grammar, version-free base and submission month. Abstract-page URLs
such as https://arxiv.org/abs/2201.13452v1 are accepted.

With --sort the valid identifiers are printed in chronological order.`,
	RunE: runID,
}

func init() {
	idCmd.Flags().Bool("sort", false, "print identifiers in chronological order")
	idCmd.Flags().Bool("quiet", false, "print only the canonical form")

	rootCmd.AddCommand(idCmd)
}

func runID(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more arXiv identifiers")
	}

	var ids []arxivid.ArticleID
	failed := 0
	for _, arg := range args {
		text := strings.TrimSpace(arg)
		if stripped, ok := arxivid.StripAbsURL(text); ok {
			text = stripped
		}
		id, err := arxivid.Parse(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			failed++
			continue
		}
		ids = append(ids, id)
	}

	if sorted, _ := cmd.Flags().GetBool("sort"); sorted {
		arxivid.Sort(ids)
	}

	w := cmd.OutOrStdout()
	quiet, _ := cmd.Flags().GetBool("quiet")
	for _, id := range ids {
		if quiet {
			fmt.Fprintln(w, id)
			continue
		}
		fmt.Fprintf(w, "%-28s  %-3s  %-24s  %04d-%02d\n",
			id, id.Style(), id.Base(), id.Year(), id.Month())
	}

	if failed > 0 {
		return fmt.Errorf("%d identifier(s) failed to parse", failed)
	}
	return nil
}
