// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxivid parses, validates, renders and orders arXiv identifiers.
//
// Two grammars are in use. Old-style identifiers (August 1991 to March 2007)
// name their archive: "math.CA/0501001v2". New-style identifiers (April 2007
// onward) are purely numeric: "0704.0001", "2201.13452v1". The serial number
// has four digits through December 2014 and five digits from January 2015.
//
// ArticleID values are comparable. Two ids are equal only if every component,
// including the version, matches; use SameArticle to ignore the version.
package arxivid

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Style distinguishes the two identifier grammars.
type Style int

const (
	StyleNew Style = iota
	StyleOld
)

func (s Style) String() string {
	if s == StyleOld {
		return "old"
	}
	return "new"
}

// ArticleID is a parsed arXiv identifier. The zero value is not a valid id.
type ArticleID struct {
	archive Archive
	subject string
	year    uint16
	month   uint8
	number  uint32
	version uint16
}

const (
	maxVersion   = 1<<16 - 1
	maxOldNumber = 999
)

// NewOld validates the components of an old-style identifier.
// A version of 0 means no version.
func NewOld(archive Archive, subjectClass string, year, month, number, version int) (ArticleID, error) {
	if !archive.Legacy() {
		return ArticleID{}, fmt.Errorf("%w: %q", ErrUnknownArchive, archive.String())
	}
	if subjectClass != "" && !validSubjectClass(subjectClass) {
		return ArticleID{}, fmt.Errorf("%w: subject class %q", ErrInvalidIdentifier, subjectClass)
	}
	if err := checkOldDate(year, month); err != nil {
		return ArticleID{}, err
	}
	if number < 1 || number > maxOldNumber {
		return ArticleID{}, fmt.Errorf("%w: number %d", ErrInvalidNumberWidth, number)
	}
	if version < 0 || version > maxVersion {
		return ArticleID{}, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	return ArticleID{
		archive: archive,
		subject: subjectClass,
		year:    uint16(year),
		month:   uint8(month),
		number:  uint32(number),
		version: uint16(version),
	}, nil
}

// NewNew validates the components of a new-style identifier.
// A version of 0 means no version.
func NewNew(year, month, number, version int) (ArticleID, error) {
	if err := checkNewDate(year, month); err != nil {
		return ArticleID{}, err
	}
	if number < 1 || number >= pow10(newWidth(year)) {
		return ArticleID{}, fmt.Errorf("%w: number %d", ErrInvalidNumberWidth, number)
	}
	if version < 0 || version > maxVersion {
		return ArticleID{}, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	return ArticleID{
		year:    uint16(year),
		month:   uint8(month),
		number:  uint32(number),
		version: uint16(version),
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level values.
func MustParse(s string) ArticleID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Parse reads an identifier in either grammar.
func Parse(s string) (ArticleID, error) {
	if len(s) >= 5 && isDigit(s[0]) && s[4] == '.' {
		return parseNew(s)
	}
	if strings.IndexByte(s, '/') > 0 {
		return parseOld(s)
	}
	return ArticleID{}, parseErr(s, 0, ErrInvalidIdentifier)
}

func parseNew(s string) (ArticleID, error) {
	year, month, err := readDate(s, 0)
	if err != nil {
		return ArticleID{}, err
	}
	year += 2000
	if err := checkNewDate(year, month); err != nil {
		return ArticleID{}, parseErr(s, 0, err)
	}

	const numStart = 5
	n := digitRun(s, numStart)
	if n != newWidth(year) {
		return ArticleID{}, parseErr(s, numStart, ErrInvalidNumberWidth)
	}
	number, _ := strconv.Atoi(s[numStart : numStart+n])
	if number == 0 {
		return ArticleID{}, parseErr(s, numStart, ErrInvalidIdentifier)
	}

	version, err := readVersion(s, numStart+n)
	if err != nil {
		return ArticleID{}, err
	}
	return ArticleID{
		year:    uint16(year),
		month:   uint8(month),
		number:  uint32(number),
		version: version,
	}, nil
}

func parseOld(s string) (ArticleID, error) {
	slash := strings.IndexByte(s, '/')
	prefix := s[:slash]

	code, subject, _ := strings.Cut(prefix, ".")
	archive, ok := ParseArchive(code)
	if !ok || !archive.Legacy() {
		return ArticleID{}, parseErr(s, 0, ErrUnknownArchive)
	}
	if strings.Contains(prefix, ".") && !validSubjectClass(subject) {
		return ArticleID{}, parseErr(s, len(code)+1, ErrInvalidIdentifier)
	}

	dateStart := slash + 1
	yy, month, err := readDate(s, dateStart)
	if err != nil {
		return ArticleID{}, err
	}
	year := oldYear(yy)
	if err := checkOldDate(year, month); err != nil {
		return ArticleID{}, parseErr(s, dateStart, err)
	}

	numStart := dateStart + 4
	n := digitRun(s, numStart)
	if n != 3 {
		return ArticleID{}, parseErr(s, numStart, ErrInvalidNumberWidth)
	}
	number, _ := strconv.Atoi(s[numStart : numStart+n])
	if number == 0 {
		return ArticleID{}, parseErr(s, numStart, ErrInvalidIdentifier)
	}

	version, err := readVersion(s, numStart+n)
	if err != nil {
		return ArticleID{}, err
	}
	return ArticleID{
		archive: archive,
		subject: subject,
		year:    uint16(year),
		month:   uint8(month),
		number:  uint32(number),
		version: version,
	}, nil
}

// readDate reads the YYMM block at s[at:at+4]. The year is returned as
// two digits.
func readDate(s string, at int) (int, int, error) {
	if len(s) < at+4 || digitRun(s, at) < 4 {
		return 0, 0, parseErr(s, at, ErrInvalidIdentifier)
	}
	yy := int(s[at]-'0')*10 + int(s[at+1]-'0')
	mm := int(s[at+2]-'0')*10 + int(s[at+3]-'0')
	return yy, mm, nil
}

// readVersion reads an optional "v<N>" suffix starting at s[at:]. The suffix
// must run to the end of s.
func readVersion(s string, at int) (uint16, error) {
	if at == len(s) {
		return 0, nil
	}
	if s[at] != 'v' {
		return 0, parseErr(s, at, ErrInvalidVersion)
	}
	digits := s[at+1:]
	if digits == "" || digits[0] == '0' || digitRun(digits, 0) != len(digits) {
		return 0, parseErr(s, at, ErrInvalidVersion)
	}
	v, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, parseErr(s, at, ErrInvalidVersion)
	}
	return uint16(v), nil
}

func digitRun(s string, at int) int {
	n := 0
	for at+n < len(s) && isDigit(s[at+n]) {
		n++
	}
	return n
}

func oldYear(yy int) int {
	if yy >= 91 {
		return 1900 + yy
	}
	return 2000 + yy
}

func checkOldDate(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %02d", ErrDateOutOfRange, month)
	}
	if year < 1991 || year > 2007 || (year == 1991 && month < 8) || (year == 2007 && month > 3) {
		return fmt.Errorf("%w: %04d-%02d is outside 1991-08..2007-03", ErrDateOutOfRange, year, month)
	}
	return nil
}

func checkNewDate(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %02d", ErrDateOutOfRange, month)
	}
	if year < 2007 || year > 2099 || (year == 2007 && month < 4) {
		return fmt.Errorf("%w: %04d-%02d is outside 2007-04..2099-12", ErrDateOutOfRange, year, month)
	}
	return nil
}

// newWidth is the serial-number width for a new-style id in year.
func newWidth(year int) int {
	if year <= 2014 {
		return 4
	}
	return 5
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// Style reports which grammar the id belongs to.
func (id ArticleID) Style() Style {
	if id.archive != 0 {
		return StyleOld
	}
	return StyleNew
}

// Archive returns the archive of an old-style id, or the zero Archive.
func (id ArticleID) Archive() Archive { return id.archive }

// SubjectClass returns the subject class of an old-style id, if it has one.
func (id ArticleID) SubjectClass() string { return id.subject }

// Year returns the four-digit submission year.
func (id ArticleID) Year() int { return int(id.year) }

// Month returns the submission month, 1 through 12.
func (id ArticleID) Month() int { return int(id.month) }

// Number returns the serial number within the month.
func (id ArticleID) Number() int { return int(id.number) }

// Version returns the version and whether one is present.
func (id ArticleID) Version() (int, bool) { return int(id.version), id.version != 0 }

// WithVersion returns a copy of id with the given version. A version of 0
// removes it; versions run up to 65535 as in NewOld and NewNew.
func (id ArticleID) WithVersion(v int) (ArticleID, error) {
	if v < 0 || v > maxVersion {
		return ArticleID{}, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
	id.version = uint16(v)
	return id, nil
}

// Base returns the id without its version.
func (id ArticleID) Base() ArticleID {
	id.version = 0
	return id
}

// SameArticle reports whether id and other name the same work, regardless
// of version.
func (id ArticleID) SameArticle(other ArticleID) bool {
	return id.Base() == other.Base()
}

// IsZero reports whether id is the zero value.
func (id ArticleID) IsZero() bool { return id == ArticleID{} }

// String renders the canonical form.
func (id ArticleID) String() string {
	if id.IsZero() {
		return ""
	}
	var b strings.Builder
	yy := int(id.year) % 100
	if id.archive != 0 {
		b.WriteString(id.archive.String())
		if id.subject != "" {
			b.WriteByte('.')
			b.WriteString(id.subject)
		}
		fmt.Fprintf(&b, "/%02d%02d%03d", yy, id.month, id.number)
	} else {
		fmt.Fprintf(&b, "%02d%02d.%0*d", yy, id.month, newWidth(int(id.year)), id.number)
	}
	if id.version != 0 {
		fmt.Fprintf(&b, "v%d", id.version)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ArticleID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ArticleID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Compare orders ids chronologically: by year, then month. Remaining ties
// are broken by archive (new-style ids have none and sort first), subject
// class, number and finally version, so Compare returns 0 only for equal ids.
func Compare(a, b ArticleID) int {
	return cmp.Or(
		cmp.Compare(a.year, b.year),
		cmp.Compare(a.month, b.month),
		cmp.Compare(a.archive, b.archive),
		cmp.Compare(a.subject, b.subject),
		cmp.Compare(a.number, b.number),
		cmp.Compare(a.version, b.version),
	)
}

// Sort orders ids in place using Compare.
func Sort(ids []ArticleID) {
	slices.SortFunc(ids, Compare)
}

// StripAbsURL extracts the identifier text from an abstract-page URL such as
// "http://arxiv.org/abs/2301.07041v1". It reports false when the URL has no
// "/abs/" segment.
func StripAbsURL(u string) (string, bool) {
	const marker = "/abs/"
	idx := strings.Index(u, marker)
	if idx < 0 {
		return "", false
	}
	return u[idx+len(marker):], true
}
