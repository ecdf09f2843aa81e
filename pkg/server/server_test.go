package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/persistence"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

func newTestServer(t *testing.T) (*Server, *manuscript.DB) {
	t.Helper()
	db, err := manuscript.Open(persistence.NewJSONStore(filepath.Join(t.TempDir(), "m.json")))
	require.NoError(t, err)
	return New(db), db
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func addForm(title, methods string) url.Values {
	return url.Values{
		"title":        {title},
		"authors":      {"Ada, Alan"},
		"affiliations": {"Lab"},
		"abstract":     {"text"},
		"methods":      {methods},
		"datasets":     {`[{"name": "D1"}]`},
		"metrics":      {""},
	}
}

func TestAddEditDeleteFlow(t *testing.T) {
	s, db := newTestServer(t)
	h := s.Handler()

	rec := postForm(t, h, "/records", addForm("P1", `[{"model_name": "M1"}]`))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, 1, db.Len())

	got, err := db.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.Title())
	assert.Equal(t, []string{"Ada", "Alan"}, got.Authors())
	assert.True(t, got.HasModel("M1"))
	assert.Equal(t, []string{"title", "authors", "affiliations", "abstract", "methods", "datasets", "metrics"}, got.Keys())
	raw, _ := got.Raw(types.KeyMetrics)
	assert.Equal(t, "[]", string(raw))

	form := addForm("P1 revised", `[]`)
	form.Set("index", "0")
	rec = postForm(t, h, "/records/edit", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	got, err = db.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "P1 revised", got.Title())
	assert.Empty(t, got.Methods())

	rec = postForm(t, h, "/records/delete", url.Values{"index": {"0"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, db.Len())
}

func TestEditKeepsKeysOutsideTheForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "P1", "doi": "10.1/x", "methods": "see appendix"}]`), 0644))
	db, err := manuscript.Open(persistence.NewJSONStore(path))
	require.NoError(t, err)
	h := New(db).Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "&#34;see appendix&#34;")

	form := addForm("P1 revised", `"see appendix"`)
	form.Set("index", "0")
	require.Equal(t, http.StatusSeeOther, postForm(t, h, "/records/edit", form).Code)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title": "P1 revised", "doi": "10.1/x", "methods": "see appendix",
		"authors": ["Ada", "Alan"], "affiliations": ["Lab"], "abstract": "text",
		"datasets": [{"name": "D1"}], "metrics": []}]`, string(out))
}

func TestMalformedJSONDoesNotMutate(t *testing.T) {
	s, db := newTestServer(t)
	h := s.Handler()

	rec := postForm(t, h, "/records", addForm("P1", `[{"model_name": `))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, db.Len())
}

func TestOutOfRangeIndex(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := postForm(t, h, "/records/delete", url.Values{"index": {"3"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	form := addForm("x", "")
	form.Set("index", "-1")
	rec = postForm(t, h, "/records/edit", form)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postForm(t, h, "/records/delete", url.Values{"index": {"zero"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexPage(t *testing.T) {
	s, db := newTestServer(t)
	require.NoError(t, db.Add(types.NewRecord("Paper <one>", nil, nil, "")))

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Paper &lt;one&gt;")
	assert.Contains(t, body, `name="index" value="0"`)

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/missing").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, postForm(t, s.Handler(), "/", nil).Code)
}

func TestAPI(t *testing.T) {
	s, db := newTestServer(t)
	p1 := types.NewRecord("P1", nil, nil, "")
	p1.SetObjects(types.KeyMethods, []types.Object{types.NewMethod("M1")})
	p1.SetObjects(types.KeyDatasets, []types.Object{types.NewDataset("D1")})
	p2 := types.NewRecord("P2", nil, nil, "")
	p2.SetObjects(types.KeyMethods, []types.Object{types.NewMethod("M2")})
	require.NoError(t, db.Add(p1))
	require.NoError(t, db.Add(p2))
	h := s.Handler()

	var records []types.Record
	rec := get(t, h, "/api/records")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 2)

	var fields types.Fields
	rec = get(t, h, "/api/fields")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, types.Fields{Models: []string{"M1", "M2"}, Datasets: []string{"D1"}, Metrics: []string{}}, fields)

	rec = get(t, h, "/api/filter?model=M1")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "P1", records[0].Title())

	rec = get(t, h, "/api/filter")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 2)

	rec = get(t, h, "/api/prompt")
	assert.Contains(t, rec.Body.String(), `"instruction"`)
}

func TestStartAndShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	baseURL, err := s.Start(ctx, "")
	require.NoError(t, err)

	httpClient := http.Client{Timeout: 2 * time.Second}
	resp, err := httpClient.Get(baseURL + "/api/records")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Shutdown(context.Background()))
}
