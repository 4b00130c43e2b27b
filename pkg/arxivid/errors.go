// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxivid

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError.
var (
	// ErrInvalidIdentifier is returned when text matches neither identifier grammar.
	ErrInvalidIdentifier = errors.New("invalid arXiv identifier")

	// ErrUnknownArchive is returned when an archive code is not in the archive table.
	ErrUnknownArchive = errors.New("unknown archive")

	// ErrInvalidNumberWidth is returned when the serial number has the wrong
	// number of digits for its era.
	ErrInvalidNumberWidth = errors.New("invalid number width")

	// ErrInvalidVersion is returned when the version suffix is malformed.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrDateOutOfRange is returned when the year/month block is not a valid
	// date for the grammar in use.
	ErrDateOutOfRange = errors.New("date out of range")

	// ErrInvalidCategory is returned when a category term has a malformed
	// subject class.
	ErrInvalidCategory = errors.New("invalid category")
)

// ParseError records the text that failed to parse and where.
type ParseError struct {
	Input  string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(input string, offset int, err error) error {
	return &ParseError{Input: input, Offset: offset, Err: err}
}
