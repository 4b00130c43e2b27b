// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Author is one <author> element.
type Author struct {
	Name         string   `json:"name" yaml:"name"`
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// Parsed splits the author's name. See ParseAuthorName.
func (a Author) Parsed() AuthorName { return ParseAuthorName(a.Name) }

// AuthorName is a best-effort split of a free-text author name.
// When the name cannot be split with confidence only Verbatim is set.
type AuthorName struct {
	Given    string
	Family   string
	Suffix   string
	Verbatim string
}

// Structured reports whether the name was split.
func (n AuthorName) Structured() bool { return n.Family != "" }

var nameSuffixes = map[string]bool{
	"Jr": true, "Jr.": true, "Sr": true, "Sr.": true,
	"II": true, "III": true, "IV": true,
}

var groupWords = map[string]bool{
	"collaboration": true, "consortium": true, "team": true, "group": true,
}

// ParseAuthorName splits a name written in "Given Family" order. arXiv
// supplies one string per author, so the split relies on the single-surname
// convention: the last token is the family name, lowercase particles in
// front of a capitalised family name ("von", "de", "van der") belong to it,
// and a trailing Jr./Sr./II/III/IV is a suffix.
//
// Names that do not fit (commas, brackets, digits, collaborations, a trailing
// initial) are returned with only Verbatim set. ParseAuthorName never fails.
func ParseAuthorName(raw string) AuthorName {
	name := strings.Join(strings.Fields(raw), " ")
	verbatim := AuthorName{Verbatim: name}
	if name == "" || strings.ContainsAny(name, ",;()[]{}") || strings.ContainsFunc(name, unicode.IsDigit) {
		return verbatim
	}

	tokens := strings.Fields(name)
	for i, tok := range tokens {
		w := strings.ToLower(strings.TrimSuffix(tok, "."))
		if groupWords[w] {
			return verbatim
		}
		if w == "et" && i+1 < len(tokens) && strings.HasPrefix(strings.ToLower(tokens[i+1]), "al") {
			return verbatim
		}
	}
	var suffix string
	if len(tokens) > 1 && nameSuffixes[tokens[len(tokens)-1]] {
		suffix = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	last := len(tokens) - 1
	if isInitial(tokens[last]) {
		return verbatim
	}
	familyStart := last
	if isCapitalised(tokens[last]) {
		for familyStart > 0 && isParticle(tokens[familyStart-1]) {
			familyStart--
		}
	}

	return AuthorName{
		Given:    strings.Join(tokens[:familyStart], " "),
		Family:   strings.Join(tokens[familyStart:], " "),
		Suffix:   suffix,
		Verbatim: name,
	}
}

// isInitial matches "J." and "J.-P.".
func isInitial(tok string) bool {
	if !strings.HasSuffix(tok, ".") {
		return false
	}
	for part := range strings.SplitSeq(strings.TrimSuffix(tok, "."), "-") {
		part = strings.TrimSuffix(part, ".")
		if utf8.RuneCountInString(part) != 1 {
			return false
		}
	}
	return true
}

func isCapitalised(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
}

func isParticle(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsLower(r) && !strings.HasSuffix(tok, ".")
}
