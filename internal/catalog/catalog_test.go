package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desperati0n/ismism/internal/catalog"
	"github.com/desperati0n/ismism/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Ism{
		{Code: "1-2-3-4", Name: "German Idealism"},
		{Code: "$-2-3-4", Name: "Subjectless Variant"},
		{Code: "2-2-3-4", Name: "Neighbor"},
		{Code: "4-4-4-4", Name: "Far Corner"},
	})
}

func TestSearchExactMatch(t *testing.T) {
	c := testCatalog()

	results := c.Search("1-2-3-4")
	require.Len(t, results, 1)
	assert.Equal(t, "German Idealism", results[0].Name)
}

func TestSearchWildcardMatchesAllPositions(t *testing.T) {
	c := testCatalog()

	// Wildcard in position 0 matches literal symbols and the $ entry alike.
	results := c.Search("$-2-3-4")
	require.Len(t, results, 3)
	assert.Equal(t, "German Idealism", results[0].Name)
	assert.Equal(t, "Subjectless Variant", results[1].Name)
	assert.Equal(t, "Neighbor", results[2].Name)

	// All wildcards match every entry.
	assert.Len(t, c.Search("$-$-$-$"), c.Len())
}

func TestSearchResultOrderIsCatalogOrder(t *testing.T) {
	c := testCatalog()

	results := c.Search("$-$-$-$")
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"German Idealism", "Subjectless Variant", "Neighbor", "Far Corner"}, names)
}

func TestSearchNoMatchReturnsEmpty(t *testing.T) {
	c := testCatalog()

	assert.Empty(t, c.Search("3-1-1-1"))
}

func TestSearchMalformedQuery(t *testing.T) {
	c := testCatalog()

	assert.Empty(t, c.Search("1-2-3"))
	assert.Empty(t, c.Search("1-2-3-4-5"))
	assert.Empty(t, c.Search("a-b-c-d"))
	assert.Empty(t, c.Search(""))
}

func TestSearchIsDeterministic(t *testing.T) {
	c := testCatalog()

	first := c.Search("$-2-3-4")
	second := c.Search("$-2-3-4")
	assert.Equal(t, first, second)
}

func TestSearchSkipsMalformedEntryCodes(t *testing.T) {
	c := catalog.New([]domain.Ism{
		{Code: "1-2-3", Name: "Truncated"},
		{Code: "1-2-3-4", Name: "Whole"},
	})

	results := c.Search("$-$-$-$")
	require.Len(t, results, 1)
	assert.Equal(t, "Whole", results[0].Name)
}

func TestGet(t *testing.T) {
	c := testCatalog()

	entry, ok := c.Get("4-4-4-4")
	require.True(t, ok)
	assert.Equal(t, "Far Corner", entry.Name)

	_, ok = c.Get("3-3-3-3")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	data := `[
		{"code": "1-2-3-4", "name": "One", "description": "first entry",
		 "fourGrid": {"ontology": {"value": "1", "text": "field"}},
		 "aliases": ["uno"], "keyPoints": ["a point"]},
		{"code": "$-1-1-1", "name": "Two", "description": ""}
	]`

	c, err := catalog.Load(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	entry, ok := c.Get("1-2-3-4")
	require.True(t, ok)
	assert.Equal(t, "One", entry.Name)
	assert.Equal(t, []string{"uno"}, entry.Aliases)
	require.NotNil(t, entry.FourGrid.Ontology)
	assert.Equal(t, "field", entry.FourGrid.Ontology.Text)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := catalog.Load(strings.NewReader(`{"not": "an array"`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "isms.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":"2-2-2-2","name":"File Entry","description":""}]`), 0o600))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = catalog.LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestProviderReplace(t *testing.T) {
	p := catalog.NewProvider(testCatalog())
	assert.Equal(t, 4, p.Current().Len())

	p.Replace(catalog.New([]domain.Ism{{Code: "1-1-1-1", Name: "Only"}}))
	assert.Equal(t, 1, p.Current().Len())

	// nil is ignored
	p.Replace(nil)
	assert.Equal(t, 1, p.Current().Len())
}
