// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		raw    string
		given  string
		family string
		suffix string
	}{
		{"Ada Lovelace", "Ada", "Lovelace", ""},
		{"John von Neumann", "John", "von Neumann", ""},
		{"Johannes Diderik van der Waals", "Johannes Diderik", "van der Waals", ""},
		{"A. B. Doe", "A. B.", "Doe", ""},
		{"J.-P. Serre", "J.-P.", "Serre", ""},
		{"Martin Luther King Jr.", "Martin Luther", "King", "Jr."},
		{"mac Arthur III", "", "mac Arthur", "III"},
		{"only lowercase names", "only lowercase", "names", ""},
		{"Robert Jr.", "", "Robert", "Jr."},
		{"  Grace \n Hopper ", "Grace", "Hopper", ""},
		{"Plato", "", "Plato", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n := ParseAuthorName(tt.raw)
			require.True(t, n.Structured())
			assert.Equal(t, tt.given, n.Given)
			assert.Equal(t, tt.family, n.Family)
			assert.Equal(t, tt.suffix, n.Suffix)
		})
	}
}

func TestParseAuthorNameFallsBackToVerbatim(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Lovelace, Ada", "Lovelace, Ada"},
		{"ATLAS Collaboration", "ATLAS Collaboration"},
		{"The LIGO Scientific Consortium", "The LIGO Scientific Consortium"},
		{"Smith et al", "Smith et al"},
		{"Doe J.", "Doe J."},
		{"Jane Doe (MIT)", "Jane Doe (MIT)"},
		{"Agent 47", "Agent 47"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n := ParseAuthorName(tt.raw)
			assert.False(t, n.Structured())
			assert.Equal(t, tt.want, n.Verbatim)
			assert.Empty(t, n.Given)
		})
	}
}

func TestAuthorParsed(t *testing.T) {
	a := Author{Name: "John von Neumann"}
	assert.Equal(t, "von Neumann", a.Parsed().Family)
	assert.Equal(t, "John von Neumann", a.Parsed().Verbatim)
}

func TestCategoryArxiv(t *testing.T) {
	c := Category{Term: "math.CA", Scheme: ArxivNS}
	require.True(t, c.IsArxiv())
	parsed, err := c.Arxiv()
	require.NoError(t, err)
	assert.Equal(t, "math", parsed.Archive.String())
	assert.Equal(t, "CA", parsed.Subject)

	msc := Category{Term: "68T05", Scheme: "http://www.ams.org/msc/msc2010"}
	assert.False(t, msc.IsArxiv())
	_, err = msc.Arxiv()
	assert.Error(t, err)
}

func TestLinkHelpers(t *testing.T) {
	l := Link{"href": "http://arxiv.org/pdf/2201.13452v1", "rel": "related", "type": "application/pdf", "title": "pdf"}
	assert.Equal(t, "http://arxiv.org/pdf/2201.13452v1", l.Href())
	assert.Equal(t, "related", l.Rel())
	assert.Equal(t, "application/pdf", l.Type())
	assert.Equal(t, "pdf", l.Title())

	var empty Link
	assert.Empty(t, empty.Href())
}

func TestLinkKeepsNamespacedAttributes(t *testing.T) {
	f, err := Parse(feedWith("1", `<entry xmlns:ext="urn:ext">`+
		`<id>http://arxiv.org/abs/2201.13452v1</id><updated>2022-01-31T18:59:59Z</updated>`+
		`<published>2022-01-31T18:59:59Z</published><title>T</title><summary>S</summary>`+
		`<link href="http://arxiv.org/abs/2201.13452v1" lang="en" xml:lang="fr" ext:lang="de"/>`+
		`</entry>`))
	require.NoError(t, err)

	links := f.Entries()[0].Links()
	require.Len(t, links, 1)
	assert.Equal(t, Link{
		"href":          "http://arxiv.org/abs/2201.13452v1",
		"lang":          "en",
		"xml:lang":      "fr",
		"{urn:ext}lang": "de",
	}, links[0])
}
