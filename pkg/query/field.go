// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Field construction errors, wrapped by FieldError.
var (
	// ErrEmptyFieldValue is returned when a field value is blank after trimming.
	ErrEmptyFieldValue = errors.New("empty field value")

	// ErrInvalidFieldValue is returned when a field value contains a character
	// or keyword that would change the meaning of the search expression.
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// FieldError reports a rejected field value.
type FieldError struct {
	Type   FieldType
	Value  string
	Offset int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s:%q at offset %d: %v", e.Type.Prefix(), e.Value, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// FieldType is a searchable attribute of the arXiv API.
type FieldType int

const (
	FieldTitle FieldType = iota
	FieldAuthor
	FieldAbstract
	FieldComment
	FieldJournalRef
	FieldCategory
	FieldReportNumber
	FieldAll
	// FieldSubmittedDate is only produced by SubmittedBetween.
	FieldSubmittedDate
)

var fieldPrefixes = [...]string{
	FieldTitle:         "ti",
	FieldAuthor:        "au",
	FieldAbstract:      "abs",
	FieldComment:       "co",
	FieldJournalRef:    "jr",
	FieldCategory:      "cat",
	FieldReportNumber:  "rn",
	FieldAll:           "all",
	FieldSubmittedDate: "submittedDate",
}

// Prefix returns the query-grammar prefix, e.g. "ti" for Title.
func (t FieldType) Prefix() string {
	if t < 0 || int(t) >= len(fieldPrefixes) {
		return ""
	}
	return fieldPrefixes[t]
}

// ParseFieldType maps a prefix such as "au" back to its FieldType.
// FieldSubmittedDate is not accepted.
func ParseFieldType(prefix string) (FieldType, bool) {
	for i, p := range fieldPrefixes {
		if p == prefix && FieldType(i) != FieldSubmittedDate {
			return FieldType(i), true
		}
	}
	return 0, false
}

// operatorWords may not appear as bare words inside a value.
var operatorWords = map[string]bool{"AND": true, "OR": true, "ANDNOT": true}

// Field is a validated (attribute, value) pair. Fields are immutable.
type Field struct {
	typ   FieldType
	value string
	// rendered holds a pre-built term for fields whose value is generated
	// rather than user supplied.
	rendered string
}

// NewField validates value and builds a field. Leading and trailing space is
// trimmed and internal runs of whitespace collapse to one space.
func NewField(t FieldType, value string) (Field, error) {
	if t == FieldSubmittedDate || t.Prefix() == "" {
		return Field{}, &FieldError{Type: t, Value: value, Err: fmt.Errorf("%w: unsupported field type", ErrInvalidFieldValue)}
	}
	v := strings.Join(strings.Fields(value), " ")
	if v == "" {
		return Field{}, &FieldError{Type: t, Value: value, Err: ErrEmptyFieldValue}
	}
	if i := strings.IndexAny(value, `()":[]`); i >= 0 {
		return Field{}, &FieldError{Type: t, Value: value, Offset: i, Err: ErrInvalidFieldValue}
	}
	for _, word := range strings.Fields(v) {
		if operatorWords[word] {
			return Field{}, &FieldError{Type: t, Value: value, Offset: strings.Index(value, word), Err: ErrInvalidFieldValue}
		}
	}
	return Field{typ: t, value: v}, nil
}

func Ti(v string) (Field, error)  { return NewField(FieldTitle, v) }
func Au(v string) (Field, error)  { return NewField(FieldAuthor, v) }
func Abs(v string) (Field, error) { return NewField(FieldAbstract, v) }
func Co(v string) (Field, error)  { return NewField(FieldComment, v) }
func Jr(v string) (Field, error)  { return NewField(FieldJournalRef, v) }
func Cat(v string) (Field, error) { return NewField(FieldCategory, v) }
func Rn(v string) (Field, error)  { return NewField(FieldReportNumber, v) }
func All(v string) (Field, error) { return NewField(FieldAll, v) }

const submittedLayout = "200601021504"

// SubmittedBetween builds a submission-date range term. Times are rendered
// in UTC at minute precision.
func SubmittedBetween(from, to time.Time) (Field, error) {
	if from.After(to) {
		return Field{}, &FieldError{
			Type:  FieldSubmittedDate,
			Value: from.UTC().Format(submittedLayout) + " TO " + to.UTC().Format(submittedLayout),
			Err:   fmt.Errorf("%w: range start is after range end", ErrInvalidFieldValue),
		}
	}
	term := fmt.Sprintf("submittedDate:[%s TO %s]",
		from.UTC().Format(submittedLayout), to.UTC().Format(submittedLayout))
	return Field{typ: FieldSubmittedDate, rendered: term}, nil
}

// Type returns the field's attribute.
func (f Field) Type() FieldType { return f.typ }

// Value returns the normalised value.
func (f Field) Value() string { return f.value }

// String renders the field in query grammar. Multi-word values are quoted.
func (f Field) String() string {
	if f.rendered != "" {
		return f.rendered
	}
	if strings.Contains(f.value, " ") {
		return f.typ.Prefix() + `:"` + f.value + `"`
	}
	return f.typ.Prefix() + ":" + f.value
}

func (f Field) node() node {
	if f.value == "" && f.rendered == "" {
		return nil
	}
	return leaf{f}
}
