// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// feedWith wraps entries in a minimal valid feed header.
func feedWith(total string, entries ...string) []byte {
	return []byte(`<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">` +
		`<opensearch:totalResults>` + total + `</opensearch:totalResults>` +
		`<opensearch:startIndex>0</opensearch:startIndex>` +
		`<opensearch:itemsPerPage>10</opensearch:itemsPerPage>` +
		strings.Join(entries, "") + `</feed>`)
}

func entryXML(id, published string) string {
	return fmt.Sprintf(`<entry><id>%s</id><updated>2022-01-31T18:59:59Z</updated>`+
		`<published>%s</published><title>T</title><summary>S</summary></entry>`, id, published)
}

// paper is a caller-defined record used across the decode tests.
type paper struct {
	ID         arxivid.ArticleID
	Title      string
	Authors    int
	JournalRef string
	HasJournal bool
}

func (p *paper) UnmarshalEntry(e Entry) error {
	p.ID = e.ID()
	p.Title = e.Title()
	p.Authors = len(e.Authors())
	p.JournalRef, p.HasJournal = e.JournalRef()
	return nil
}

// idOnly pulls a single field and ignores the rest.
type idOnly struct{ id arxivid.ArticleID }

func (r *idOnly) UnmarshalEntry(e Entry) error {
	r.id = e.ID()
	return nil
}

// --- Structural scan ---

func TestParseMeta(t *testing.T) {
	f, err := Parse(readFixture(t, "query.xml"))
	require.NoError(t, err)

	assert.Equal(t, 2, f.Meta.TotalResults)
	assert.Equal(t, 0, f.Meta.StartIndex)
	assert.Equal(t, 2, f.Meta.ItemsPerPage)
	assert.True(t, f.Meta.Updated.Equal(time.Date(2022, 2, 1, 5, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []arxivid.ArticleID{
		arxivid.MustParse("2201.13452v1"),
		arxivid.MustParse("2201.13453v2"),
	}, f.IDs())
}

func TestEntryAccessors(t *testing.T) {
	f, err := Parse(readFixture(t, "query.xml"))
	require.NoError(t, err)
	e := f.Entries()[0]

	assert.Equal(t, 0, e.Index())
	assert.Equal(t, arxivid.MustParse("2201.13452v1"), e.ID())
	assert.Equal(t, "http://arxiv.org/abs/2201.13452v1", e.RawID())
	assert.Equal(t, "Electron transport in disordered graphene", e.Title())
	assert.Equal(t, "We study electron transport\nin disordered graphene.", e.Summary())
	assert.True(t, e.Published().Equal(time.Date(2022, 1, 31, 18, 59, 59, 0, time.UTC)))

	authors := e.Authors()
	require.Len(t, authors, 1)
	assert.Equal(t, "John von Neumann", authors[0].Name)
	assert.Equal(t, []string{"Institute for Advanced Study"}, authors[0].Affiliations)

	comment, ok := e.Comment()
	assert.True(t, ok)
	assert.Equal(t, "12 pages, 4 figures", comment)
	_, ok = e.JournalRef()
	assert.False(t, ok)
	_, ok = e.DOI()
	assert.False(t, ok)

	primary, ok := e.PrimaryCategory()
	require.True(t, ok)
	assert.Equal(t, "cond-mat.mes-hall", primary.Term)

	cats := e.Categories()
	require.Len(t, cats, 2)
	assert.True(t, cats[0].IsArxiv())
	assert.False(t, cats[1].IsArxiv())
	assert.Equal(t, "82D80", cats[1].Term)

	links := e.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "alternate", links[0].Rel())
	assert.Equal(t, "text/html", links[0].Type())

	pdf, ok := e.PDF()
	require.True(t, ok)
	assert.Equal(t, "http://arxiv.org/pdf/2201.13452v1", pdf.Href())
	assert.Equal(t, "application/pdf", pdf.Type())
}

func TestAccessorsAreRepeatable(t *testing.T) {
	f, err := Parse(readFixture(t, "query.xml"))
	require.NoError(t, err)
	e := f.Entries()[1]

	first := e.Links()
	first[0]["href"] = "mutated"
	assert.Equal(t, "http://arxiv.org/abs/2201.13453v2", e.Links()[0].Href())
	assert.Equal(t, e.Authors(), e.Authors())
	assert.Equal(t, e.Title(), e.Title())
}

func TestTimestampsTruncatedToSeconds(t *testing.T) {
	f, err := Parse(readFixture(t, "query.xml"))
	require.NoError(t, err)
	updated := f.Entries()[1].Updated()

	assert.Zero(t, updated.Nanosecond())
	assert.True(t, updated.Equal(time.Date(2022, 2, 3, 8, 15, 0, 0, time.UTC)))
}

func TestUnknownElementsTolerated(t *testing.T) {
	f, err := Parse(readFixture(t, "query.xml"))
	require.NoError(t, err)
	e := f.Entries()[1]

	const futureNS = "http://example.org/future"
	text, ok := e.Text(futureNS, "extension")
	assert.True(t, ok)
	assert.Equal(t, "kept", text)
	level, ok := e.Attr(futureNS, "extension", "level")
	assert.True(t, ok)
	assert.Equal(t, "3", level)

	_, ok = e.Text(AtomNS, "extension")
	assert.False(t, ok, "lookups are namespace qualified")
	_, ok = e.Text(futureNS, "nothing")
	assert.False(t, ok)
}

func TestForeignElementsDoNotShadowKnownFields(t *testing.T) {
	entry := `<entry xmlns:media="http://search.yahoo.com/mrss/" xmlns:other="urn:other" xmlns:arxiv="http://arxiv.org/schemas/atom">` +
		`<media:title>Thumbnail</media:title>` +
		`<other:id>urn:other:1</other:id>` +
		`<id>http://arxiv.org/abs/2201.13452v1</id>` +
		`<updated>2022-01-31T18:59:59Z</updated><published>2022-01-31T18:59:59Z</published>` +
		`<title>Real Title</title><summary>S</summary>` +
		`<other:comment>wrong</other:comment><arxiv:comment>right</arxiv:comment>` +
		`<author><other:name>Alias</other:name><name>Ada Lovelace</name></author>` +
		`</entry>`
	doc := []byte(`<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/" xmlns:other="urn:other">` +
		`<other:totalResults>99</other:totalResults>` +
		`<opensearch:totalResults>1</opensearch:totalResults>` +
		`<opensearch:startIndex>0</opensearch:startIndex>` +
		`<opensearch:itemsPerPage>10</opensearch:itemsPerPage>` +
		entry + `</feed>`)

	f, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Meta.TotalResults)

	e := f.Entries()[0]
	assert.Equal(t, "Real Title", e.Title())
	assert.Equal(t, "2201.13452v1", e.ID().String())
	comment, ok := e.Comment()
	assert.True(t, ok)
	assert.Equal(t, "right", comment)
	require.Len(t, e.Authors(), 1)
	assert.Equal(t, "Ada Lovelace", e.Authors()[0].Name)
}

func TestUnqualifiedDocumentDecodes(t *testing.T) {
	doc := []byte(`<feed><totalResults>1</totalResults><startIndex>0</startIndex><itemsPerPage>1</itemsPerPage>` +
		entryXML("http://arxiv.org/abs/2201.13452v1", "2022-01-31T18:59:59Z") + `</feed>`)
	f, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, "T", f.Entries()[0].Title())
}

func TestZeroEntryAccessors(t *testing.T) {
	var e Entry
	assert.Empty(t, e.Title())
	assert.Empty(t, e.Summary())
	assert.Empty(t, e.Authors())
	assert.Empty(t, e.Categories())
	assert.Empty(t, e.Links())
	assert.True(t, e.ID().IsZero())

	_, ok := e.PDF()
	assert.False(t, ok)
	_, ok = e.PrimaryCategory()
	assert.False(t, ok)
	_, ok = e.Comment()
	assert.False(t, ok)
	_, ok = e.Attr(AtomNS, "link", "href")
	assert.False(t, ok)
}

func TestFeedUpdatedIsOptional(t *testing.T) {
	f, err := Parse(feedWith("1", entryXML("http://arxiv.org/abs/2201.13452v1", "2022-01-31T18:59:59Z")))
	require.NoError(t, err)
	assert.True(t, f.Meta.Updated.IsZero())
}

// --- Error taxonomy ---

func TestEmptyResult(t *testing.T) {
	data := readFixture(t, "empty.xml")

	seq, err := Sequence[paper](data)
	require.NoError(t, err)
	assert.Empty(t, seq.Items)
	assert.Equal(t, 0, seq.Meta.TotalResults)

	m, err := Keyed[paper](data)
	require.NoError(t, err)
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Items)
}

func TestDuplicateIdentifier(t *testing.T) {
	data := readFixture(t, "duplicate.xml")

	m, err := Keyed[paper](data)
	assert.Nil(t, m)
	require.ErrorIs(t, err, ErrDuplicateIdentifier)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "hep-th/9901001v1", fe.ID)
	assert.Equal(t, 0, fe.First)
	assert.Equal(t, 1, fe.Entry)
	assert.Contains(t, err.Error(), "hep-th/9901001v1")

	seq, err := Sequence[paper](data)
	require.NoError(t, err)
	require.Len(t, seq.Items, 2)
	assert.Equal(t, "First copy", seq.Items[0].Title)
	assert.Equal(t, "Second copy", seq.Items[1].Title)
}

func TestMissingRequiredField(t *testing.T) {
	seq, err := Sequence[paper](readFixture(t, "missing_title.xml"))
	assert.Nil(t, seq)
	require.ErrorIs(t, err, ErrMissingRequiredField)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "title", fe.Field)
	assert.Equal(t, "http://arxiv.org/abs/2201.13452v1", fe.ID)
	assert.Equal(t, 0, fe.Entry)
}

func TestTruncatedDocument(t *testing.T) {
	m, err := Keyed[paper](readFixture(t, "truncated.xml"))
	assert.Nil(t, m)
	require.ErrorIs(t, err, ErrMalformedXML)
	assert.NotErrorIs(t, err, ErrMissingRequiredField)
}

func TestAPIErrorFeed(t *testing.T) {
	_, err := Parse(readFixture(t, "api_error.xml"))
	require.ErrorIs(t, err, ErrAPI)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "incorrect id format for 1234.12345", fe.Raw)
}

func TestMalformedDocuments(t *testing.T) {
	good := entryXML("http://arxiv.org/abs/2201.13452v1", "2022-01-31T18:59:59Z")
	tests := []struct {
		name  string
		data  []byte
		want  error
		field string
	}{
		{"not xml", []byte("not xml at all"), ErrMalformedXML, ""},
		{"empty input", nil, ErrMalformedXML, ""},
		{"wrong root", []byte(`<rss><channel/></rss>`), ErrMalformedXML, "rss"},
		{"unbalanced", []byte(`<feed><entry></feed>`), ErrMalformedXML, ""},
		{"bad timestamp", feedWith("1", entryXML("http://arxiv.org/abs/2201.13452v1", "2022-01-31 18:59:59")), ErrMalformedXML, "published"},
		{"bad id", feedWith("1", entryXML("http://arxiv.org/abs/not-an-id", "2022-01-31T18:59:59Z")), ErrMalformedXML, "id"},
		{"bad count", feedWith("many", good), ErrMalformedXML, "totalResults"},
		{"missing count", []byte(`<feed>` + good + `</feed>`), ErrMissingRequiredField, "totalResults"},
		{"text after root", append(feedWith("0"), "junk text"...), ErrMalformedXML, ""},
		{"text before root", append([]byte("junk"), feedWith("0")...), ErrMalformedXML, ""},
		{"foreign root", []byte(`<feed xmlns="urn:not-atom"/>`), ErrMalformedXML, "feed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.data)
			assert.Nil(t, f)
			require.ErrorIs(t, err, tt.want)

			var fe *Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBadIDKeepsCause(t *testing.T) {
	_, err := Parse(feedWith("1", entryXML("http://arxiv.org/abs/2201.1345", "2022-01-31T18:59:59Z")))
	assert.ErrorIs(t, err, ErrMalformedXML)
	assert.ErrorIs(t, err, arxivid.ErrInvalidNumberWidth)
}

var errRejected = errors.New("rejected by caller")

type picky struct{}

func (*picky) UnmarshalEntry(e Entry) error {
	if e.Index() == 1 {
		return errRejected
	}
	return nil
}

func TestCallerErrorPropagatesUnchanged(t *testing.T) {
	data := readFixture(t, "query.xml")

	seq, err := Sequence[picky](data)
	assert.Nil(t, seq)
	assert.True(t, err == errRejected, "got %v", err)

	m, err := Keyed[picky](data)
	assert.Nil(t, m)
	assert.True(t, err == errRejected, "got %v", err)

	_, err = SequenceFunc(data, func(Entry) (int, error) { return 0, errRejected })
	assert.True(t, err == errRejected, "got %v", err)
}

// --- Decode entry points ---

func TestEndToEndKeyed(t *testing.T) {
	m, err := Keyed[paper](readFixture(t, "query.xml"))
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	first := arxivid.MustParse("2201.13452v1")
	second := arxivid.MustParse("2201.13453v2")
	assert.Equal(t, []arxivid.ArticleID{first, second}, m.Keys)

	p, ok := m.Get(first)
	require.True(t, ok)
	assert.Equal(t, 1, p.Authors)
	assert.False(t, p.HasJournal)

	p, ok = m.Get(second)
	require.True(t, ok)
	assert.Equal(t, 2, p.Authors)
	assert.True(t, p.HasJournal)
	assert.Equal(t, "Phys. Rev. D 105, 012345 (2022)", p.JournalRef)

	_, ok = m.Get(second.Base())
	assert.False(t, ok, "lookup is version-sensitive")

	var order []arxivid.ArticleID
	for id := range m.All() {
		order = append(order, id)
	}
	assert.Equal(t, m.Keys, order)
}

func TestPartialRecordDecode(t *testing.T) {
	seq, err := Sequence[idOnly](readFixture(t, "query.xml"))
	require.NoError(t, err)
	require.Len(t, seq.Items, 2)
	assert.Equal(t, "2201.13453v2", seq.Items[1].id.String())
}

func TestFuncVariantsMatchMethodVariants(t *testing.T) {
	data := readFixture(t, "query.xml")
	titles, err := SequenceFunc(data, func(e Entry) (string, error) { return e.Title(), nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"Electron transport in disordered graphene", "Proton decay bounds"}, titles.Items)

	byID, err := KeyedFunc(data, func(e Entry) (int, error) { return e.Index(), nil })
	require.NoError(t, err)
	v, ok := byID.Get(arxivid.MustParse("2201.13453v2"))
	require.True(t, ok)
	assert.Equal(t, 1, v)

	f, err := Parse(data)
	require.NoError(t, err)
	again, err := SequenceOf(f, func(e Entry) (string, error) { return e.Title(), nil })
	require.NoError(t, err)
	assert.Equal(t, titles.Items, again.Items)
}

func TestEachStopsAtFirstError(t *testing.T) {
	f, err := Parse(readFixture(t, "query.xml"))
	require.NoError(t, err)

	calls := 0
	err = f.Each(func(Entry) error {
		calls++
		return errRejected
	})
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, 1, calls)
}
