// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxivid

import "strings"

// Archive is a top-level subject classification such as "math" or "astro-ph".
// The zero value means "no archive" and is what new-style identifiers carry.
type Archive uint8

type archiveInfo struct {
	code string
	// legacy archives may appear in old-style identifiers; the rest only
	// appear in category terms.
	legacy bool
}

// archives is indexed by Archive. Rows are in code order so that comparing
// two Archive values orders them alphabetically.
var archives = [...]archiveInfo{
	{"", false},
	{"acc-phys", true},
	{"adap-org", true},
	{"alg-geom", true},
	{"ao-sci", true},
	{"astro-ph", true},
	{"atom-ph", true},
	{"bayes-an", true},
	{"chao-dyn", true},
	{"chem-ph", true},
	{"cmp-lg", true},
	{"comp-gas", true},
	{"cond-mat", true},
	{"cs", true},
	{"dg-ga", true},
	{"econ", false},
	{"eess", false},
	{"funct-an", true},
	{"gr-qc", true},
	{"hep-ex", true},
	{"hep-lat", true},
	{"hep-ph", true},
	{"hep-th", true},
	{"math", true},
	{"math-ph", true},
	{"mtrl-th", true},
	{"nlin", true},
	{"nucl-ex", true},
	{"nucl-th", true},
	{"patt-sol", true},
	{"physics", true},
	{"plasm-ph", true},
	{"q-alg", true},
	{"q-bio", true},
	{"q-fin", false},
	{"quant-ph", true},
	{"solv-int", true},
	{"stat", false},
	{"supr-con", true},
}

var archiveByCode = func() map[string]Archive {
	m := make(map[string]Archive, len(archives))
	for i, a := range archives {
		if a.code != "" {
			m[a.code] = Archive(i)
		}
	}
	return m
}()

// ParseArchive looks up an archive code. It reports false for unknown codes.
func ParseArchive(code string) (Archive, bool) {
	a, ok := archiveByCode[code]
	return a, ok
}

// String returns the archive code, or "" for the zero Archive.
func (a Archive) String() string {
	if int(a) >= len(archives) {
		return ""
	}
	return archives[a].code
}

// Legacy reports whether the archive is valid in old-style identifiers.
func (a Archive) Legacy() bool {
	return int(a) < len(archives) && archives[a].legacy
}

// validSubjectClass checks the subject-class grammar shared by identifiers
// and category terms: two upper-case letters ("CA", "AI") or a lower-case
// hyphenated token ("acc-ph", "mes-hall").
func validSubjectClass(s string) bool {
	if len(s) == 2 && isUpper(s[0]) && isUpper(s[1]) {
		return true
	}
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !(isLower(s[i]) || s[i] == '-') {
			return false
		}
	}
	return true
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
