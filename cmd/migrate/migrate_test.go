package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaomi388/manuscripts/pkg/persistence"
)

func TestMigrateJSONToSQLiteAndBack(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "m.json")
	dbPath := filepath.Join(dir, "m.db")
	backPath := filepath.Join(dir, "back.json")

	in := `[
  {"title": "P1", "authors": ["Ada"], "methods": [{"model_name": "M1", "parameters": "7B"}], "doi": "10.1/x"},
  {"title": "P2 <draft>", "metrics": [{"name": "Acc", "value": 0.50}]}
]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(in), 0644))

	n, err := Migrate("json", jsonPath, "sqlite", dbPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Migrate("sqlite", dbPath, "json", backPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	original, err := persistence.LoadRecords(jsonPath)
	require.NoError(t, err)
	back, err := persistence.LoadRecords(backPath)
	require.NoError(t, err)
	assert.Equal(t, original, back)

	out, err := os.ReadFile(backPath)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
	assert.Contains(t, string(out), "P2 <draft>")
	assert.Contains(t, string(out), "0.50")
}

func TestMigrateSameStore(t *testing.T) {
	_, err := Migrate("json", "a.json", "json", "a.json")
	assert.Error(t, err)
}
