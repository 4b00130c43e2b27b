// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxivkit/pkg/arxivid"
	"github.com/pdiddy/arxivkit/pkg/feed"
	"github.com/pdiddy/arxivkit/pkg/types"
)

func decodeSample(t *testing.T) Output {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "sample.xml"))
	require.NoError(t, err)
	seq, err := feed.Sequence[Record](data)
	require.NoError(t, err)
	return FromSeq(seq)
}

func TestRecordUnmarshalEntry(t *testing.T) {
	out := decodeSample(t)
	require.Len(t, out.Records, 2)

	r := out.Records[0]
	assert.Equal(t, "2201.13452v1", r.ID.String())
	assert.Equal(t, "Electron transport in disordered graphene", r.Title)
	assert.Equal(t, []string{"John von Neumann"}, r.AuthorNames())
	assert.Equal(t, "cond-mat.mes-hall", r.PrimaryCategory)
	assert.Equal(t, []string{"cond-mat.mes-hall"}, r.Categories, "non-arXiv schemes are dropped")
	assert.Equal(t, "12 pages, 4 figures", r.Comment)
	assert.Empty(t, r.JournalRef)
	assert.Equal(t, "http://arxiv.org/pdf/2201.13452v1", r.PDF)

	r = out.Records[1]
	assert.Len(t, r.Authors, 2)
	assert.Equal(t, "10.1103/PhysRevD.105.012345", r.DOI)
	assert.Equal(t, []string{"hep-ex", "hep-ph"}, r.Categories)
	assert.Empty(t, r.PDF)
}

func TestFromMapKeepsDocumentOrder(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample.xml"))
	require.NoError(t, err)
	m, err := feed.Keyed[Record](data)
	require.NoError(t, err)

	out := FromMap(m)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "2201.13452v1", out.Records[0].ID.String())
	assert.Equal(t, 2, out.Meta.TotalResults)
}

func TestSortByID(t *testing.T) {
	out := Output{Records: []Record{
		{ID: arxivid.MustParse("2201.13453")},
		{ID: arxivid.MustParse("math/0501001")},
		{ID: arxivid.MustParse("2201.13452v2")},
	}}
	out.SortByID()
	assert.Equal(t, "math/0501001", out.Records[0].ID.String())
	assert.Equal(t, "2201.13452v2", out.Records[1].ID.String())
	assert.Equal(t, "2201.13453", out.Records[2].ID.String())
}

func TestFormatTable(t *testing.T) {
	out := decodeSample(t)
	out.Meta.TotalResults = 40

	var buf bytes.Buffer
	FormatTable(out, &buf)
	s := buf.String()

	assert.Contains(t, s, "2201.13452v1")
	assert.Contains(t, s, "John von Neumann")
	assert.Contains(t, s, "Ada Lovelace et al.")
	assert.Contains(t, s, "2022-01-31")
	assert.Contains(t, s, "2 results (1-2 of 40)")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{}, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	out := decodeSample(t)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(out, &buf))

	var decoded []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, out.Records[1].ID, decoded[1].ID)
	assert.True(t, out.Records[1].Updated.Equal(decoded[1].Updated))
	assert.Contains(t, buf.String(), `"id": "2201.13453v2"`)
	assert.NotContains(t, buf.String(), `"journal_ref": ""`)
}

func TestWriteDispatch(t *testing.T) {
	out := decodeSample(t)
	for _, format := range []types.OutputFormat{types.OutputTable, types.OutputJSON, types.OutputCSL, ""} {
		var buf bytes.Buffer
		require.NoError(t, Write(out, format, &buf), "format %q", format)
		assert.NotEmpty(t, buf.String())
	}

	err := Write(out, "bibtex", &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown output format "bibtex"`)
}

func TestTruncateIsRuneSafe(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate(strings.Repeat("é", 30), 10)
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
}
