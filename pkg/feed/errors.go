// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by errors.Is against an *Error.
var (
	ErrMalformedXML         = errors.New("malformed xml")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrDuplicateIdentifier  = errors.New("duplicate identifier")
	ErrAPI                  = errors.New("arXiv API error")
)

// Kind classifies a decode failure.
type Kind int

const (
	KindMalformedXML Kind = iota + 1
	KindMissingRequiredField
	KindDuplicateIdentifier
	KindAPI
)

func (k Kind) sentinel() error {
	switch k {
	case KindMalformedXML:
		return ErrMalformedXML
	case KindMissingRequiredField:
		return ErrMissingRequiredField
	case KindDuplicateIdentifier:
		return ErrDuplicateIdentifier
	case KindAPI:
		return ErrAPI
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error describes why a feed could not be decoded. It carries enough context
// to locate the problem without parsing the document again.
type Error struct {
	Kind Kind

	// Entry is the zero-based position of the offending entry, or -1 when
	// the problem is in the feed header.
	Entry int
	// First is the position of the earlier entry for duplicate identifiers.
	First int
	// ID is the entry's raw <id> text, when it was read.
	ID string
	// Field is the local name of the element at fault.
	Field string
	// Offset is the byte offset in the input.
	Offset int64
	// Raw is the offending text, if any.
	Raw string

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("feed: ")
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		fmt.Fprintf(&b, " <%s>", e.Field)
	}
	switch {
	case e.Kind == KindDuplicateIdentifier:
		fmt.Fprintf(&b, " in entries %d and %d", e.First, e.Entry)
	case e.Entry >= 0:
		fmt.Fprintf(&b, " in entry %d", e.Entry)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " (id %s)", e.ID)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	if e.Raw != "" {
		fmt.Fprintf(&b, ": %q", e.Raw)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }
