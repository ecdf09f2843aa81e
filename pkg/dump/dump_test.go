package dump

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaomi388/manuscripts/pkg/types"
)

func testRecords() []types.Record {
	var records []types.Record
	if err := json.Unmarshal([]byte(`[
  {
    "title": "P1",
    "authors": ["Ada", "Alan"],
    "affiliations": ["Lab"],
    "abstract": "Abstract text.",
    "methods": [{"model_name": "M1", "type": "LLM", "parameters": 7e9}, {"model_name": "M2", "parameters": "7B"}],
    "datasets": [{"name": "D1", "usage": "evaluation", "num_samples": 300}],
    "metrics": [{"name": "Acc", "model_name": "M1", "value": 0.87}]
  },
  {"title": ""},
  {"authors": "not a list", "methods": "none"}
]`), &records); err != nil {
		panic(err)
	}

	return records
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRecords(), FormatMarkdown))

	out := buf.String()
	for _, want := range []string{
		"3 record(s).",
		"## 0. P1",
		"**Authors:** Ada, Alan",
		"> Abstract text.",
		"| M1 | LLM |  | 7e9 |",
		"| M2 |  |  | 7B |",
		"| D1 | evaluation |  | 300 |",
		"| Acc | M1 | 0.87 |  |",
		"## 1. <no title>",
		"## 2. <no title>",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, strings.Count(out, "| Model |"))
}

func TestWriteBibTeX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRecords(), FormatBibTeX))
	assert.Contains(t, buf.String(), "@misc")
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, testRecords(), Format("pdf")))
}

func TestDumpToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, Dump(path, testRecords(), FormatMarkdown))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Manuscripts")
}
