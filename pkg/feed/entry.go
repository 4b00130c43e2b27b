// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"strings"
	"time"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

// Entry is a read-only view of one <entry>. Accessors may be called in any
// order and any number of times; each call returns fresh values. Entries come
// from a Feed; on the zero Entry every accessor returns a zero value.
type Entry struct {
	el        *element
	index     int
	rawID     string
	id        arxivid.ArticleID
	published time.Time
	updated   time.Time
}

var requiredFields = []string{"id", "title", "summary", "published", "updated"}

func newEntry(el *element, index int) (Entry, error) {
	e := Entry{el: el, index: index}
	e.rawID = el.child(AtomNS, "id").trimmed()

	if strings.Contains(e.rawID, "/api/errors") {
		msg := el.child(AtomNS, "summary").trimmed()
		return Entry{}, &Error{Kind: KindAPI, Entry: index, ID: e.rawID, Offset: el.offset, Raw: msg}
	}

	for _, name := range requiredFields {
		if el.child(AtomNS, name) == nil {
			return Entry{}, &Error{Kind: KindMissingRequiredField, Entry: index, ID: e.rawID, Field: name, Offset: el.offset}
		}
	}

	idEl := el.child(AtomNS, "id")
	text, ok := arxivid.StripAbsURL(e.rawID)
	if !ok {
		text = e.rawID
	}
	id, err := arxivid.Parse(text)
	if err != nil {
		return Entry{}, &Error{Kind: KindMalformedXML, Entry: index, ID: e.rawID, Field: "id", Offset: idEl.offset, Raw: e.rawID, Err: err}
	}
	e.id = id

	for _, ts := range []struct {
		name string
		dst  *time.Time
	}{
		{"published", &e.published},
		{"updated", &e.updated},
	} {
		tsEl := el.child(AtomNS, ts.name)
		t, err := parseTimestamp(tsEl.trimmed())
		if err != nil {
			return Entry{}, &Error{Kind: KindMalformedXML, Entry: index, ID: e.rawID, Field: ts.name, Offset: tsEl.offset, Raw: tsEl.trimmed(), Err: err}
		}
		*ts.dst = t
	}
	return e, nil
}

// Index returns the zero-based position of the entry in the feed.
func (e Entry) Index() int { return e.index }

// ID returns the parsed identifier, including its version.
func (e Entry) ID() arxivid.ArticleID { return e.id }

// RawID returns the <id> text, normally an abstract-page URL.
func (e Entry) RawID() string { return e.rawID }

// Title returns the title with runs of whitespace collapsed. The API wraps
// long titles across lines.
func (e Entry) Title() string {
	return strings.Join(strings.Fields(e.el.child(AtomNS, "title").trimmed()), " ")
}

// Summary returns the abstract with surrounding whitespace trimmed. Inner
// line breaks are kept.
func (e Entry) Summary() string { return e.el.child(AtomNS, "summary").trimmed() }

// Published returns the submission time of version 1.
func (e Entry) Published() time.Time { return e.published }

// Updated returns the submission time of the retrieved version.
func (e Entry) Updated() time.Time { return e.updated }

// Authors returns the authors in document order.
func (e Entry) Authors() []Author {
	var out []Author
	for a := range e.el.each(AtomNS, "author") {
		author := Author{
			Name: strings.Join(strings.Fields(a.child(AtomNS, "name").trimmed()), " "),
		}
		for aff := range a.each(ArxivNS, "affiliation") {
			author.Affiliations = append(author.Affiliations, aff.trimmed())
		}
		out = append(out, author)
	}
	return out
}

// Categories returns every <category>, arXiv and otherwise.
func (e Entry) Categories() []Category {
	var out []Category
	for c := range e.el.each(AtomNS, "category") {
		out = append(out, categoryOf(c))
	}
	return out
}

// PrimaryCategory returns the arxiv:primary_category element.
func (e Entry) PrimaryCategory() (Category, bool) {
	c := e.el.child(ArxivNS, "primary_category")
	if c == nil {
		return Category{}, false
	}
	return categoryOf(c), true
}

// Links returns every <link> with its attributes.
func (e Entry) Links() []Link {
	var out []Link
	for l := range e.el.each(AtomNS, "link") {
		out = append(out, linkOf(l))
	}
	return out
}

// PDF returns the link titled "pdf".
func (e Entry) PDF() (Link, bool) {
	for l := range e.el.each(AtomNS, "link") {
		if t, _ := l.attr("title"); t == "pdf" {
			return linkOf(l), true
		}
	}
	return nil, false
}

// Comment returns arxiv:comment.
func (e Entry) Comment() (string, bool) { return e.Text(ArxivNS, "comment") }

// JournalRef returns arxiv:journal_ref.
func (e Entry) JournalRef() (string, bool) { return e.Text(ArxivNS, "journal_ref") }

// DOI returns arxiv:doi.
func (e Entry) DOI() (string, bool) { return e.Text(ArxivNS, "doi") }

// Text returns the trimmed text of the first child element named name in
// namespace space, for elements without a dedicated accessor.
func (e Entry) Text(space, name string) (string, bool) {
	c := e.el.child(space, name)
	if c == nil {
		return "", false
	}
	return c.trimmed(), true
}

// Attr returns an unqualified attribute of the first child element named
// name in namespace space.
func (e Entry) Attr(space, name, attr string) (string, bool) {
	c := e.el.child(space, name)
	if c == nil {
		return "", false
	}
	return c.attr(attr)
}
