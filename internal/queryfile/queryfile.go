// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryfile stores arXiv queries as YAML so a search can be kept in
// a repository, reviewed and rerun.
//
//	query:
//	  and:
//	    - field: all
//	      value: electron
//	    - or:
//	        - {field: ti, value: quantum dots}
//	        - {field: au, value: del_maestro}
//	ids: ["2201.13452"]
//	submitted: {from: "2022-01-01", to: "2022-12-31"}
//	sort_by: submittedDate
//	sort_order: ascending
//	max_results: 50
package queryfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxivkit/pkg/query"
)

// DefaultMaxResults is the page size used when only start is given.
const DefaultMaxResults = 10

const dateFmt = "2006-01-02"

// QueryFile is the on-disk form of a query.
type QueryFile struct {
	Query      *Node      `yaml:"query,omitempty"`
	IDs        []string   `yaml:"ids,omitempty"`
	Submitted  *DateRange `yaml:"submitted,omitempty"`
	SortBy     string     `yaml:"sort_by,omitempty"`
	SortOrder  string     `yaml:"sort_order,omitempty"`
	Start      *int       `yaml:"start,omitempty"`
	MaxResults *int       `yaml:"max_results,omitempty"`
}

// Node is one term of the search expression. Exactly one of Field, And, Or
// and AndNot is set. And and Or combine their children left to right;
// AndNot removes every later child from the first.
type Node struct {
	Field  string `yaml:"field,omitempty"`
	Value  string `yaml:"value,omitempty"`
	And    []Node `yaml:"and,omitempty"`
	Or     []Node `yaml:"or,omitempty"`
	AndNot []Node `yaml:"andnot,omitempty"`
}

// DateRange restricts results by submission date. Both ends are inclusive
// calendar days in UTC.
type DateRange struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Load reads and parses a query file.
func Load(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	qf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return qf, nil
}

// Parse decodes YAML. Unknown keys are rejected so typos surface early.
func Parse(data []byte) (*QueryFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var qf QueryFile
	if err := dec.Decode(&qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Save writes qf as YAML.
func Save(path string, qf *QueryFile) error {
	data, err := yaml.Marshal(qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Build converts the file into a query. The result renders exactly as the
// equivalent builder calls would.
func (qf *QueryFile) Build() (*query.Query, error) {
	q := query.New()

	var expr query.Expr
	if qf.Query != nil {
		e, err := qf.Query.expr("query")
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if qf.Submitted != nil {
		f, err := qf.Submitted.field()
		if err != nil {
			return nil, err
		}
		expr = expr.And(f)
	}
	if !expr.IsZero() {
		q.Search(expr)
	}

	if err := q.ParseIDs(qf.IDs...); err != nil {
		return nil, err
	}

	if qf.SortBy != "" || qf.SortOrder != "" {
		by, order := query.Relevance, query.Descending
		var err error
		if qf.SortBy != "" {
			if by, err = query.ParseSortBy(qf.SortBy); err != nil {
				return nil, err
			}
		}
		if qf.SortOrder != "" {
			if order, err = query.ParseSortOrder(qf.SortOrder); err != nil {
				return nil, err
			}
		}
		q.Sort(by, order)
	}

	if qf.Start != nil || qf.MaxResults != nil {
		start, maxResults := 0, DefaultMaxResults
		if qf.Start != nil {
			start = *qf.Start
		}
		if qf.MaxResults != nil {
			maxResults = *qf.MaxResults
		}
		if err := q.Paginate(start, maxResults); err != nil {
			return nil, err
		}
	}

	if q.IsEmpty() {
		return nil, errors.New("query file has neither a query nor ids")
	}
	return q, nil
}

func (n *Node) expr(path string) (query.Expr, error) {
	set := 0
	for _, ok := range []bool{n.Field != "", len(n.And) > 0, len(n.Or) > 0, len(n.AndNot) > 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return query.Expr{}, fmt.Errorf("%s: exactly one of field, and, or, andnot must be set", path)
	}

	switch {
	case n.Field != "":
		ft, ok := query.ParseFieldType(n.Field)
		if !ok {
			return query.Expr{}, fmt.Errorf("%s: unknown field %q", path, n.Field)
		}
		f, err := query.NewField(ft, n.Value)
		if err != nil {
			return query.Expr{}, fmt.Errorf("%s: %w", path, err)
		}
		return query.Init(f), nil
	case len(n.And) > 0:
		return fold(path+".and", n.And, query.Expr.And)
	case len(n.Or) > 0:
		return fold(path+".or", n.Or, query.Expr.Or)
	default:
		return fold(path+".andnot", n.AndNot, query.Expr.AndNot)
	}
}

func fold(path string, nodes []Node, combine func(query.Expr, query.Term) query.Expr) (query.Expr, error) {
	var acc query.Expr
	for i := range nodes {
		e, err := nodes[i].expr(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return query.Expr{}, err
		}
		if i == 0 {
			acc = e
			continue
		}
		acc = combine(acc, e)
	}
	return acc, nil
}

func (r *DateRange) field() (query.Field, error) {
	from, err := time.Parse(dateFmt, r.From)
	if err != nil {
		return query.Field{}, fmt.Errorf("invalid submitted.from %q: %w", r.From, err)
	}
	to, err := time.Parse(dateFmt, r.To)
	if err != nil {
		return query.Field{}, fmt.Errorf("invalid submitted.to %q: %w", r.To, err)
	}
	return query.SubmittedBetween(from, to.Add(24*time.Hour-time.Minute))
}
