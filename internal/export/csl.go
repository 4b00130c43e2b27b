package export

import (
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxivkit/pkg/feed"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID        string    `yaml:"id"`
	Type      string    `yaml:"type"`
	Title     string    `yaml:"title"`
	Author    []CSLName `yaml:"author,omitempty"`
	Abstract  string    `yaml:"abstract,omitempty"`
	Issued    *CSLDate  `yaml:"issued,omitempty"`
	DOI       string    `yaml:"DOI,omitempty"`
	URL       string    `yaml:"URL,omitempty"`
	Number    string    `yaml:"number,omitempty"`
	Publisher string    `yaml:"publisher,omitempty"`
	Note      string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Suffix  string `yaml:"suffix,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(out Output, w io.Writer) error {
	items := make([]CSLItem, len(out.Records))
	for i, r := range out.Records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Record to a CSLItem. Preprints are typed "article"
// with arXiv as publisher; the version-free id is the citation number.
func toCSLItem(r Record) CSLItem {
	base := r.ID.Base().String()
	item := CSLItem{
		ID:        "arxiv:" + base,
		Type:      "article",
		Title:     r.Title,
		Abstract:  r.Summary,
		DOI:       r.DOI,
		URL:       "https://arxiv.org/abs/" + r.ID.String(),
		Number:    base,
		Publisher: "arXiv",
		Note:      r.JournalRef,
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, cslName(feed.ParseAuthorName(a.Name)))
	}

	if !r.Published.IsZero() {
		d := r.Published.UTC()
		item.Issued = &CSLDate{
			DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}},
		}
	}
	return item
}

// cslName maps an inferred name onto CSL. Names that could not be split use
// the literal field.
func cslName(n feed.AuthorName) CSLName {
	if !n.Structured() {
		return CSLName{Literal: n.Verbatim}
	}
	return CSLName{Family: n.Family, Given: n.Given, Suffix: n.Suffix}
}
