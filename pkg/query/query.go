// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds search URLs for the arXiv API.
//
// A Query combines an optional boolean search expression, an optional id
// list, a single sort key and pagination. Encode renders identical builder
// state to byte-identical output, so a rendered URL can serve as a cache key.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

// DefaultBase is the public arXiv API endpoint.
const DefaultBase = "https://export.arxiv.org/api/query"

// API limits on a single request.
const (
	MaxStart      = 30000
	MaxMaxResults = 2000
)

// ErrPaginationRange is returned by Paginate for values outside the limits
// accepted by the API.
var ErrPaginationRange = errors.New("pagination out of range")

// SortBy is the sort key accepted by the API.
type SortBy int

const (
	Relevance SortBy = iota
	LastUpdatedDate
	SubmittedDate
)

func (s SortBy) String() string {
	switch s {
	case LastUpdatedDate:
		return "lastUpdatedDate"
	case SubmittedDate:
		return "submittedDate"
	default:
		return "relevance"
	}
}

// ParseSortBy reads a sortBy parameter value.
func ParseSortBy(s string) (SortBy, error) {
	for _, v := range []SortBy{Relevance, LastUpdatedDate, SubmittedDate} {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown sort key %q (valid: relevance, lastUpdatedDate, submittedDate)", s)
}

// SortOrder is the sort direction.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

func (o SortOrder) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// ParseSortOrder reads a sortOrder parameter value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "ascending":
		return Ascending, nil
	case "descending":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown sort order %q (valid: ascending, descending)", s)
}

type sortKey struct {
	by    SortBy
	order SortOrder
}

type page struct {
	start, max int
}

// Query holds the state of one API request. It is built by a single owner
// and is not safe for concurrent mutation.
type Query struct {
	search Expr
	ids    []arxivid.ArticleID
	sort   *sortKey
	page   *page
	base   string
	scheme string
}

// New returns an empty query against DefaultBase.
func New() *Query {
	return &Query{}
}

// Search sets the search expression, replacing any previous one.
func (q *Query) Search(t Term) *Query {
	q.search = Init(t)
	return q
}

// IDs appends to the id list. Order is preserved and rendered as given.
func (q *Query) IDs(ids ...arxivid.ArticleID) *Query {
	q.ids = append(q.ids, ids...)
	return q
}

// ParseIDs parses and appends identifiers. On the first invalid identifier it
// returns the parse error and leaves the id list unchanged.
func (q *Query) ParseIDs(texts ...string) error {
	parsed := make([]arxivid.ArticleID, 0, len(texts))
	for _, s := range texts {
		id, err := arxivid.Parse(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("id list: %w", err)
		}
		parsed = append(parsed, id)
	}
	q.ids = append(q.ids, parsed...)
	return nil
}

// ClearIDs removes the id list.
func (q *Query) ClearIDs() *Query {
	q.ids = nil
	return q
}

// Sort sets the sort key. The API accepts one key, so the last call wins.
func (q *Query) Sort(by SortBy, order SortOrder) *Query {
	q.sort = &sortKey{by: by, order: order}
	return q
}

// Paginate sets the offset of the first result and the page size.
func (q *Query) Paginate(start, maxResults int) error {
	if start < 0 || start > MaxStart {
		return fmt.Errorf("%w: start %d not in 0..%d", ErrPaginationRange, start, MaxStart)
	}
	if maxResults < 0 || maxResults > MaxMaxResults {
		return fmt.Errorf("%w: max_results %d not in 0..%d", ErrPaginationRange, maxResults, MaxMaxResults)
	}
	q.page = &page{start: start, max: maxResults}
	return nil
}

// HTTP forces the endpoint scheme to plain http.
func (q *Query) HTTP() *Query {
	q.scheme = "http"
	return q
}

// HTTPS forces the endpoint scheme to https.
func (q *Query) HTTPS() *Query {
	q.scheme = "https"
	return q
}

// WithBase overrides the endpoint. An empty base restores DefaultBase.
func (q *Query) WithBase(base string) *Query {
	q.base = base
	return q
}

// IsEmpty reports whether neither a search expression nor an id list is set.
// The API rejects such a request.
func (q *Query) IsEmpty() bool {
	return q.search.IsZero() && len(q.ids) == 0
}

// Expr returns the current search expression.
func (q *Query) Expr() Expr { return q.search }

// Encode renders the query string. Parameters always appear in the order
// search_query, id_list, start, max_results, sortBy, sortOrder and each value
// is percent-encoded.
func (q *Query) Encode() string {
	var parts []string
	add := func(k, v string) {
		parts = append(parts, k+"="+url.QueryEscape(v))
	}

	if !q.search.IsZero() {
		add("search_query", q.search.String())
	}
	if len(q.ids) > 0 {
		ids := make([]string, len(q.ids))
		for i, id := range q.ids {
			ids[i] = id.String()
		}
		add("id_list", strings.Join(ids, ","))
	}
	if q.page != nil {
		add("start", strconv.Itoa(q.page.start))
		add("max_results", strconv.Itoa(q.page.max))
	}
	if q.sort != nil {
		add("sortBy", q.sort.by.String())
		add("sortOrder", q.sort.order.String())
	}
	return strings.Join(parts, "&")
}

// URL renders the full request URL.
func (q *Query) URL() string {
	base := q.base
	if base == "" {
		base = DefaultBase
	}
	switch q.scheme {
	case "http":
		base = strings.Replace(base, "https://", "http://", 1)
	case "https":
		base = strings.Replace(base, "http://", "https://", 1)
	}
	enc := q.Encode()
	if enc == "" {
		return base
	}
	return base + "?" + enc
}
