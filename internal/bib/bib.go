// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bib turns BibTeX entries into arXiv queries. An entry with an
// eprint identifier becomes an id lookup; otherwise its title and first
// author become a search.
package bib

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jschaf/bibtex"
	"github.com/jschaf/bibtex/ast"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
	"github.com/pdiddy/arxivkit/pkg/feed"
	"github.com/pdiddy/arxivkit/pkg/query"
)

// MaxCandidates is the page size for title searches.
const MaxCandidates = 5

const fieldEprint bibtex.Field = "eprint"

// ErrNoLookup is returned for entries with neither an eprint nor a title.
var ErrNoLookup = errors.New("entry has no eprint or title")

// Lookup is the arXiv query for one bibliography entry.
type Lookup struct {
	Key string
	// ID is set when the entry names its arXiv identifier.
	ID    arxivid.ArticleID
	Query *query.Query
}

// Read parses a BibTeX document and resolves its entries.
func Read(r io.Reader) ([]bibtex.Entry, error) {
	biber := &bibtex.Biber{}
	file, err := biber.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing bibtex: %w", err)
	}
	entries, err := biber.Resolve(file)
	if err != nil {
		return nil, fmt.Errorf("resolving bibtex: %w", err)
	}
	return entries, nil
}

// ToLookup builds the query for e.
func ToLookup(e bibtex.Entry) (Lookup, error) {
	l := Lookup{Key: string(e.Key)}

	if eprint := strings.TrimSpace(clean(text(e, fieldEprint))); eprint != "" {
		eprint = strings.TrimPrefix(eprint, "arXiv:")
		if id, err := arxivid.Parse(eprint); err == nil {
			l.ID = id
			l.Query = query.New().IDs(id)
			return l, nil
		}
	}

	title := sanitize(text(e, bibtex.FieldTitle))
	if strings.TrimSpace(title) == "" {
		return Lookup{}, fmt.Errorf("%s: %w", l.Key, ErrNoLookup)
	}
	ti, err := query.Ti(title)
	if err != nil {
		return Lookup{}, fmt.Errorf("%s: %w", l.Key, err)
	}
	expr := query.Init(ti)

	if surname := firstSurname(text(e, bibtex.FieldAuthor)); surname != "" {
		if au, err := query.Au(surname); err == nil {
			expr = expr.And(au)
		}
	}

	q := query.New().Search(expr)
	if err := q.Paginate(0, MaxCandidates); err != nil {
		return Lookup{}, err
	}
	l.Query = q
	return l, nil
}

// text returns the raw value of field f, or "".
func text(e bibtex.Entry, f bibtex.Field) string {
	if t, ok := e.Tags[f].(*ast.UnparsedText); ok {
		return t.Value
	}
	return ""
}

// firstSurname returns the family name of the first author. BibTeX names
// are either "Family, Given" or "Given Family".
func firstSurname(authors string) string {
	first, _, _ := strings.Cut(clean(authors), " and ")
	first = strings.TrimSpace(first)
	if first == "" {
		return ""
	}
	if family, _, ok := strings.Cut(first, ","); ok {
		return sanitize(family)
	}
	if n := feed.ParseAuthorName(first); n.Structured() {
		return sanitize(n.Family)
	}
	return sanitize(first)
}

func clean(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// sanitize reduces a BibTeX value to plain words the search grammar accepts.
// LaTeX commands and accents are dropped along with their backslash.
func sanitize(s string) string {
	var b strings.Builder
	command := false
	for _, r := range s {
		switch {
		case r == '\\':
			command = true
		case command && unicode.IsLetter(r):
			// command name
		case command && strings.ContainsRune(`"'^~.=`+"`", r):
			command = false
		case r == '{' || r == '}':
			command = false
		case r == '$' || strings.ContainsRune(`()":[]~^_`, r):
			command = false
			b.WriteByte(' ')
		default:
			command = false
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		if w == "AND" || w == "OR" || w == "ANDNOT" {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}
