// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed decodes arXiv API responses.
//
// Parse performs a structural scan of the Atom document, validates the parts
// the API always provides and exposes each entry as an Entry: a read-only
// view with named accessors. Callers decide what a record looks like by
// implementing Unmarshaler (or passing a function) and pulling only the
// fields they need; Sequence and Keyed assemble the results.
//
//	type Paper struct {
//		ID    arxivid.ArticleID
//		Title string
//	}
//
//	func (p *Paper) UnmarshalEntry(e feed.Entry) error {
//		p.ID, p.Title = e.ID(), e.Title()
//		return nil
//	}
//
//	papers, err := feed.Keyed[Paper](body)
//
// Decoding is synchronous and allocates only what the input requires. Every
// value produced by this package is safe for concurrent reads.
package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

// XML namespaces used by the API.
const (
	AtomNS       = "http://www.w3.org/2005/Atom"
	OpenSearchNS = "http://a9.com/-/spec/opensearch/1.1/"
	ArxivNS      = "http://arxiv.org/schemas/atom"
)

// Meta is the feed header.
type Meta struct {
	TotalResults int
	StartIndex   int
	ItemsPerPage int
	// Updated is zero when the feed omits it.
	Updated time.Time
}

// Feed is a parsed response.
type Feed struct {
	Meta    Meta
	entries []Entry
}

// element is one node of the captured document tree. Elements are never
// modified after Parse returns.
type element struct {
	name     xml.Name
	attrs    []xml.Attr
	text     []byte
	children []*element
	offset   int64
}

// is reports whether el is named local in namespace space. Elements without
// a namespace match any space so unqualified documents still decode.
func (el *element) is(space, local string) bool {
	return el.name.Local == local && (el.name.Space == space || el.name.Space == "")
}

// child returns the first child named local in namespace space. A nil
// element has no children.
func (el *element) child(space, local string) *element {
	if el == nil {
		return nil
	}
	for _, c := range el.children {
		if c.is(space, local) {
			return c
		}
	}
	return nil
}

func (el *element) each(space, local string) iter.Seq[*element] {
	return func(yield func(*element) bool) {
		if el == nil {
			return
		}
		for _, c := range el.children {
			if c.is(space, local) && !yield(c) {
				return
			}
		}
	}
}

// attr returns an unqualified attribute. Namespaced attributes such as
// xml:lang never match.
func (el *element) attr(local string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (el *element) trimmed() string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(string(el.text))
}

// Parse scans data and validates the feed header and every entry.
// On error no entries are returned.
func Parse(data []byte) (*Feed, error) {
	root, err := scan(data)
	if err != nil {
		return nil, err
	}
	if !root.is(AtomNS, "feed") {
		return nil, &Error{
			Kind:   KindMalformedXML,
			Entry:  -1,
			Field:  root.name.Local,
			Offset: root.offset,
			Err:    errors.New("root element is not <feed>"),
		}
	}

	var f Feed
	for el := range root.each(AtomNS, "entry") {
		e, err := newEntry(el, len(f.entries))
		if err != nil {
			return nil, err
		}
		f.entries = append(f.entries, e)
	}

	// An API error feed has no usable header, so entries are checked first.
	if f.Meta, err = readMeta(root); err != nil {
		return nil, err
	}
	return &f, nil
}

func scan(data []byte) (*element, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *element
		stack []*element
	)
	for {
		offset := d.InputOffset()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{Kind: KindMalformedXML, Entry: -1, Offset: d.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name, attrs: t.Copy().Attr, offset: offset}
			if len(stack) == 0 {
				if root != nil {
					return nil, &Error{Kind: KindMalformedXML, Entry: -1, Field: t.Name.Local, Offset: offset,
						Err: errors.New("more than one root element")}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, &Error{Kind: KindMalformedXML, Entry: -1, Offset: offset,
						Raw: string(bytes.TrimSpace(t)), Err: errors.New("text outside the root element")}
				}
				continue
			}
			top := stack[len(stack)-1]
			top.text = append(top.text, t...)
		}
	}
	if root == nil {
		return nil, &Error{Kind: KindMalformedXML, Entry: -1, Err: errors.New("empty document")}
	}
	if len(stack) > 0 {
		return nil, &Error{Kind: KindMalformedXML, Entry: -1, Offset: int64(len(data)), Err: io.ErrUnexpectedEOF}
	}
	return root, nil
}

func readMeta(root *element) (Meta, error) {
	var m Meta
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"totalResults", &m.TotalResults},
		{"startIndex", &m.StartIndex},
		{"itemsPerPage", &m.ItemsPerPage},
	} {
		el := root.child(OpenSearchNS, f.name)
		if el == nil {
			return Meta{}, &Error{Kind: KindMissingRequiredField, Entry: -1, Field: f.name, Offset: root.offset}
		}
		n, err := strconv.Atoi(el.trimmed())
		if err != nil || n < 0 {
			return Meta{}, &Error{Kind: KindMalformedXML, Entry: -1, Field: f.name, Offset: el.offset,
				Raw: el.trimmed(), Err: errors.New("not a count")}
		}
		*f.dst = n
	}
	if el := root.child(AtomNS, "updated"); el != nil {
		t, err := parseTimestamp(el.trimmed())
		if err != nil {
			return Meta{}, &Error{Kind: KindMalformedXML, Entry: -1, Field: "updated", Offset: el.offset,
				Raw: el.trimmed(), Err: err}
		}
		m.Updated = t
	}
	return m, nil
}

// Len returns the number of entries.
func (f *Feed) Len() int { return len(f.entries) }

// Entries returns the entries in document order.
func (f *Feed) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// All iterates over entries in document order.
func (f *Feed) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range f.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Each calls fn for every entry in document order and stops at the first
// error, which is returned unchanged.
func (f *Feed) Each(fn func(Entry) error) error {
	for _, e := range f.All() {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// IDs returns the entry identifiers in document order.
func (f *Feed) IDs() []arxivid.ArticleID {
	ids := make([]arxivid.ArticleID, len(f.entries))
	for i, e := range f.entries {
		ids[i] = e.id
	}
	return ids
}
