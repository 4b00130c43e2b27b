// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"iter"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

// Unmarshaler is implemented by record types that can fill themselves from
// an Entry. Errors returned by UnmarshalEntry reach the caller unchanged.
type Unmarshaler interface {
	UnmarshalEntry(Entry) error
}

// Seq is the result of a sequence decode.
type Seq[T any] struct {
	Meta  Meta
	Items []T
}

// Map is the result of a keyed decode. Keys lists the identifiers in
// document order.
type Map[T any] struct {
	Meta  Meta
	Items map[arxivid.ArticleID]T
	Keys  []arxivid.ArticleID
}

// Len returns the number of records.
func (m *Map[T]) Len() int { return len(m.Keys) }

// Get returns the record for id. The lookup is exact, including version.
func (m *Map[T]) Get(id arxivid.ArticleID) (T, bool) {
	v, ok := m.Items[id]
	return v, ok
}

// All iterates over records in document order.
func (m *Map[T]) All() iter.Seq2[arxivid.ArticleID, T] {
	return func(yield func(arxivid.ArticleID, T) bool) {
		for _, id := range m.Keys {
			if !yield(id, m.Items[id]) {
				return
			}
		}
	}
}

// Sequence decodes every entry into a T in document order. Entries with the
// same identifier are all kept.
func Sequence[T any, PT interface {
	*T
	Unmarshaler
}](data []byte) (*Seq[T], error) {
	return SequenceFunc(data, unmarshal[T, PT])
}

// Keyed decodes every entry into a T and indexes the results by identifier.
// A repeated identifier is an error.
func Keyed[T any, PT interface {
	*T
	Unmarshaler
}](data []byte) (*Map[T], error) {
	return KeyedFunc(data, unmarshal[T, PT])
}

// SequenceFunc is Sequence with a decode function in place of a method.
func SequenceFunc[T any](data []byte, decode func(Entry) (T, error)) (*Seq[T], error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return SequenceOf(f, decode)
}

// KeyedFunc is Keyed with a decode function in place of a method.
func KeyedFunc[T any](data []byte, decode func(Entry) (T, error)) (*Map[T], error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return KeyedOf(f, decode)
}

// SequenceOf decodes the entries of an already parsed feed.
func SequenceOf[T any](f *Feed, decode func(Entry) (T, error)) (*Seq[T], error) {
	items := make([]T, 0, f.Len())
	err := f.Each(func(e Entry) error {
		v, err := decode(e)
		if err != nil {
			return err
		}
		items = append(items, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Seq[T]{Meta: f.Meta, Items: items}, nil
}

// KeyedOf decodes the entries of an already parsed feed into a Map.
func KeyedOf[T any](f *Feed, decode func(Entry) (T, error)) (*Map[T], error) {
	items := make(map[arxivid.ArticleID]T, f.Len())
	keys := make([]arxivid.ArticleID, 0, f.Len())
	seen := make(map[arxivid.ArticleID]int, f.Len())
	err := f.Each(func(e Entry) error {
		id := e.ID()
		if first, dup := seen[id]; dup {
			return &Error{
				Kind:   KindDuplicateIdentifier,
				Entry:  e.Index(),
				First:  first,
				ID:     id.String(),
				Field:  "id",
				Offset: e.el.offset,
				Raw:    e.RawID(),
			}
		}
		seen[id] = e.Index()

		v, err := decode(e)
		if err != nil {
			return err
		}
		items[id] = v
		keys = append(keys, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Map[T]{Meta: f.Meta, Items: items, Keys: keys}, nil
}

func unmarshal[T any, PT interface {
	*T
	Unmarshaler
}](e Entry) (T, error) {
	var v T
	err := PT(&v).UnmarshalEntry(e)
	return v, err
}
