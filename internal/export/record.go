// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export turns decoded feed entries into printable records.
package export

import (
	"slices"
	"time"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
	"github.com/pdiddy/arxivkit/pkg/feed"
)

// Record is the flat view of an entry printed by the CLI.
type Record struct {
	ID              arxivid.ArticleID `json:"id" yaml:"id"`
	Title           string            `json:"title" yaml:"title"`
	Authors         []feed.Author     `json:"authors" yaml:"authors"`
	Summary         string            `json:"summary" yaml:"summary"`
	Published       time.Time         `json:"published" yaml:"published"`
	Updated         time.Time         `json:"updated" yaml:"updated"`
	PrimaryCategory string            `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`
	Categories      []string          `json:"categories,omitempty" yaml:"categories,omitempty"`
	Comment         string            `json:"comment,omitempty" yaml:"comment,omitempty"`
	JournalRef      string            `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
	DOI             string            `json:"doi,omitempty" yaml:"doi,omitempty"`
	PDF             string            `json:"pdf,omitempty" yaml:"pdf,omitempty"`
}

// UnmarshalEntry implements feed.Unmarshaler.
func (r *Record) UnmarshalEntry(e feed.Entry) error {
	r.ID = e.ID()
	r.Title = e.Title()
	r.Authors = e.Authors()
	r.Summary = e.Summary()
	r.Published = e.Published()
	r.Updated = e.Updated()

	if pc, ok := e.PrimaryCategory(); ok {
		r.PrimaryCategory = pc.Term
	}
	for _, c := range e.Categories() {
		if c.IsArxiv() {
			r.Categories = append(r.Categories, c.Term)
		}
	}
	r.Comment, _ = e.Comment()
	r.JournalRef, _ = e.JournalRef()
	r.DOI, _ = e.DOI()
	if pdf, ok := e.PDF(); ok {
		r.PDF = pdf.Href()
	}
	return nil
}

// AuthorNames returns the author names in order.
func (r Record) AuthorNames() []string {
	names := make([]string, len(r.Authors))
	for i, a := range r.Authors {
		names[i] = a.Name
	}
	return names
}

// Output is a page of decoded records with the feed header.
type Output struct {
	Meta    feed.Meta
	Records []Record
}

// FromSeq wraps a sequence decode.
func FromSeq(s *feed.Seq[Record]) Output {
	return Output{Meta: s.Meta, Records: s.Items}
}

// FromMap wraps a keyed decode, keeping document order.
func FromMap(m *feed.Map[Record]) Output {
	out := Output{Meta: m.Meta, Records: make([]Record, 0, m.Len())}
	for _, r := range m.All() {
		out.Records = append(out.Records, r)
	}
	return out
}

// SortByID orders records chronologically by identifier.
func (o *Output) SortByID() {
	slices.SortFunc(o.Records, func(a, b Record) int { return arxivid.Compare(a.ID, b.ID) })
}
