package importbib

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/persistence"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "refs.bib")
	require.NoError(t, os.WriteFile(bibPath, []byte(`
@article{turing1936,
  title = {On Computable Numbers},
  author = {Alan Turing}
}
`), 0644))

	db, err := manuscript.Open(persistence.NewJSONStore(filepath.Join(dir, "m.json")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, run(&buf, db, bibPath))
	assert.Equal(t, "Imported 1 entries.\n", buf.String())
	require.Equal(t, 1, db.Len())
	assert.Equal(t, "On Computable Numbers", db.List()[0].Title())
}

func TestRunMissingFile(t *testing.T) {
	db, err := manuscript.Open(persistence.NewJSONStore(filepath.Join(t.TempDir(), "m.json")))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = run(&buf, db, filepath.Join(t.TempDir(), "absent.bib"))
	assert.Error(t, err)
	assert.Equal(t, 0, db.Len())
}
