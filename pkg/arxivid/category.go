// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxivid

import (
	"fmt"
	"strings"
)

// Category is an arXiv subject category such as "math.CA", "hep-th" or
// "physics.acc-ph". It shares the archive table and subject-class grammar
// with old-style identifiers, but also accepts archives that only exist in
// the category scheme ("stat", "econ", "eess", "q-fin").
type Category struct {
	Archive Archive
	Subject string
}

// ParseCategory reads a category term.
func ParseCategory(term string) (Category, error) {
	code, subject, hasSubject := strings.Cut(term, ".")
	archive, ok := ParseArchive(code)
	if !ok {
		return Category{}, fmt.Errorf("category %q: %w", term, ErrUnknownArchive)
	}
	if hasSubject && !validSubjectClass(subject) {
		return Category{}, fmt.Errorf("category %q: %w", term, ErrInvalidCategory)
	}
	return Category{Archive: archive, Subject: subject}, nil
}

// String renders the category term.
func (c Category) String() string {
	if c.Subject == "" {
		return c.Archive.String()
	}
	return c.Archive.String() + "." + c.Subject
}
