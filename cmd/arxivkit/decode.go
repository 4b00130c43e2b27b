package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxivkit/internal/export"
	"github.com/pdiddy/arxivkit/pkg/feed"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a saved arXiv API response",
	Long: `Decode reads an Atom response from a file (or stdin when the file is "-" or
omitted) and prints its entries. The whole document is validated first; a
malformed feed, a missing required element or an arXiv error entry fails
without printing partial results.

With --keyed, entries are indexed by identifier and a repeated identifier is
an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	addOutputFlags(decodeCmd)

	rootCmd.AddCommand(decodeCmd)
}

// addOutputFlags registers the flags shared by search and decode.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "table", "output format: table, json, csl")
	cmd.Flags().Bool("keyed", false, "index entries by identifier and reject duplicates")
	cmd.Flags().Bool("sort-ids", false, "print entries in identifier order instead of feed order")
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	out, err := decodeRecords(cmd, data)
	if err != nil {
		return err
	}
	return export.Write(out, outputFormat(cmd, cfg), cmd.OutOrStdout())
}

// decodeRecords runs the sequence or keyed decode selected by --keyed.
func decodeRecords(cmd *cobra.Command, data []byte) (export.Output, error) {
	var out export.Output
	if keyed, _ := cmd.Flags().GetBool("keyed"); keyed {
		m, err := feed.Keyed[export.Record](data)
		if err != nil {
			return export.Output{}, err
		}
		out = export.FromMap(m)
	} else {
		seq, err := feed.Sequence[export.Record](data)
		if err != nil {
			return export.Output{}, err
		}
		out = export.FromSeq(seq)
	}
	if sortIDs, _ := cmd.Flags().GetBool("sort-ids"); sortIDs {
		out.SortByID()
	}
	return out, nil
}
