// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"time"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

// Category is a <category> or arxiv:primary_category element. Terms from
// other schemes (ACM, MSC) are kept as they appear.
type Category struct {
	Term   string `json:"term" yaml:"term"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
}

// IsArxiv reports whether the term belongs to the arXiv taxonomy. A missing
// scheme is treated as arXiv.
func (c Category) IsArxiv() bool {
	return c.Scheme == "" || c.Scheme == ArxivNS
}

// Arxiv parses the term as an arXiv category.
func (c Category) Arxiv() (arxivid.Category, error) {
	return arxivid.ParseCategory(c.Term)
}

func categoryOf(el *element) Category {
	term, _ := el.attr("term")
	scheme, _ := el.attr("scheme")
	return Category{Term: term, Scheme: scheme}
}

// Link holds every attribute of a <link> element. Unqualified attributes are
// keyed by name; xml:lang and friends keep the "xml:" prefix and attributes
// in other namespaces are keyed as "{namespace}name". Namespace declarations
// are dropped.
type Link map[string]string

func (l Link) Href() string  { return l["href"] }
func (l Link) Rel() string   { return l["rel"] }
func (l Link) Type() string  { return l["type"] }
func (l Link) Title() string { return l["title"] }

// xmlNS is the namespace encoding/xml reports for the reserved xml: prefix.
const xmlNS = "http://www.w3.org/XML/1998/namespace"

func linkOf(el *element) Link {
	l := make(Link, len(el.attrs))
	for _, a := range el.attrs {
		switch {
		case a.Name.Space == "xmlns", a.Name.Space == "" && a.Name.Local == "xmlns":
		case a.Name.Space == "":
			l[a.Name.Local] = a.Value
		case a.Name.Space == xmlNS:
			l["xml:"+a.Name.Local] = a.Value
		default:
			l["{"+a.Name.Space+"}"+a.Name.Local] = a.Value
		}
	}
	return l
}

// parseTimestamp reads an RFC 3339 timestamp at whole-second precision.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Second), nil
}
