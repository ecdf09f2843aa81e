package add

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/persistence"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

func TestRunWithDetails(t *testing.T) {
	dir := t.TempDir()
	detailsPath := filepath.Join(dir, "details.json")
	require.NoError(t, os.WriteFile(detailsPath, []byte(`{
		"methods": [{"model_name": "M1"}],
		"datasets": [{"name": "D1"}]
	}`), 0644))

	db, err := manuscript.Open(persistence.NewJSONStore(filepath.Join(dir, "m.json")))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = run(&buf, db, options{
		title:        "P1",
		authors:      "Ada, Alan",
		affiliations: "Lab",
		abstract:     "text",
		details:      detailsPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "Added entry 0.\n", buf.String())

	got, err := db.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.Title())
	assert.Equal(t, []string{"Ada", "Alan"}, got.Authors())
	assert.Equal(t, []string{"Lab"}, got.Affiliations())
	assert.Equal(t, "text", got.Abstract())
	assert.True(t, got.HasModel("M1"))
	assert.True(t, got.HasDataset("D1"))
	assert.Equal(t, []string{"title", "authors", "affiliations", "abstract", "methods", "datasets", "metrics"}, got.Keys())
	raw, _ := got.Raw(types.KeyMetrics)
	assert.Equal(t, "[]", string(raw))
}

func TestRunKeepsPromptShapedDetails(t *testing.T) {
	dir := t.TempDir()
	detailsPath := filepath.Join(dir, "details.json")
	require.NoError(t, os.WriteFile(detailsPath, []byte(`{
		"methods": [{"model_name": "M1", "embedding_size": "integer", "parameters": "7B"}]
	}`), 0644))

	db, err := manuscript.Open(persistence.NewJSONStore(filepath.Join(dir, "m.json")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, run(&buf, db, options{title: "P1", details: detailsPath}))

	got, err := db.Get(0)
	require.NoError(t, err)
	raw, _ := got.Raw(types.KeyMethods)
	assert.JSONEq(t, `[{"model_name": "M1", "embedding_size": "integer", "parameters": "7B"}]`, string(raw))
}

func TestRunMalformedDetails(t *testing.T) {
	dir := t.TempDir()
	detailsPath := filepath.Join(dir, "details.json")
	require.NoError(t, os.WriteFile(detailsPath, []byte(`{"methods": [`), 0644))

	db, err := manuscript.Open(persistence.NewJSONStore(filepath.Join(dir, "m.json")))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = run(&buf, db, options{title: "P1", details: detailsPath})
	assert.ErrorIs(t, err, manuscript.ErrMalformedInput)
	assert.Equal(t, 0, db.Len())
}
