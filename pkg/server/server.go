// Package server serves a local browser form over a manuscript.DB.
package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/prompt"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

//go:embed static/index.html
var indexPage string

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"join": strings.Join,
	// fieldJSON shows the stored value of key as indented JSON, [] when absent.
	"fieldJSON": func(r types.Record, key string) string {
		raw, ok := r.Raw(key)
		if !ok {
			return "[]"
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return string(raw)
		}
		return buf.String()
	},
}).Parse(indexPage))

// Server holds the store behind a mutex so requests reach it one at a time.
type Server struct {
	mu  sync.Mutex
	db  *manuscript.DB
	srv *http.Server
	mux *http.ServeMux
}

func New(db *manuscript.DB) *Server {
	s := &Server{
		db:  db,
		mux: http.NewServeMux(),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/records", s.handleAdd)
	s.mux.HandleFunc("/records/edit", s.handleEdit)
	s.mux.HandleFunc("/records/delete", s.handleDelete)
	s.mux.HandleFunc("/api/records", s.handleRecords)
	s.mux.HandleFunc("/api/fields", s.handleFields)
	s.mux.HandleFunc("/api/filter", s.handleFilter)
	s.mux.HandleFunc("/api/prompt", s.handlePrompt)

	s.srv = &http.Server{Handler: s.mux}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr and serves until ctx is done. It returns the base URL.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("form server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()

	return "http://" + ln.Addr().String(), nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, manuscript.ErrMalformedInput):
		status = http.StatusBadRequest
	case errors.Is(err, manuscript.ErrIndexOutOfRange):
		status = http.StatusNotFound
	}

	logrus.Debugf("request failed with %d: %v", status, err)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	return true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	records := s.db.List()
	s.mu.Unlock()

	data := struct {
		Records []types.Record
		Empty   types.Record
	}{
		Records: records,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		writeError(w, fmt.Errorf("failed to render page: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// patchFromForm reads every record field from the form. Text areas hold
// JSON; invalid JSON is ErrMalformedInput. The patch carries all seven
// fields, so applying it keeps only keys the form does not know about.
func patchFromForm(r *http.Request) (types.RecordPatch, error) {
	if err := r.ParseForm(); err != nil {
		return types.RecordPatch{}, fmt.Errorf("%w: %v", manuscript.ErrMalformedInput, err)
	}

	var patch types.RecordPatch
	patch.SetString(types.KeyTitle, strings.TrimSpace(r.FormValue("title")))
	patch.SetStrings(types.KeyAuthors, manuscript.SplitNames(r.FormValue("authors")))
	patch.SetStrings(types.KeyAffiliations, manuscript.SplitNames(r.FormValue("affiliations")))
	patch.SetString(types.KeyAbstract, strings.TrimSpace(r.FormValue("abstract")))

	for _, key := range []string{types.KeyMethods, types.KeyDatasets, types.KeyMetrics} {
		raw, err := manuscript.ParseJSON(key, r.FormValue(key))
		if err != nil {
			return types.RecordPatch{}, err
		}
		patch.SetRaw(key, raw)
	}

	return patch, nil
}

func formIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: index: %v", manuscript.ErrMalformedInput, err)
	}

	return index, nil
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	patch, err := patchFromForm(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	err = s.db.Add(patch.Apply(types.Record{}))
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	patch, err := patchFromForm(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := formIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	err = s.db.Edit(index, patch)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", manuscript.ErrMalformedInput, err))
		return
	}
	index, err := formIndex(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	err = s.db.Delete(index)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	records := s.db.List()
	s.mu.Unlock()

	writeJSON(w, records)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	fields := s.db.ListFields()
	s.mu.Unlock()

	writeJSON(w, fields)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	query := types.Query{
		Model:   strings.TrimSpace(q.Get("model")),
		Dataset: strings.TrimSpace(q.Get("dataset")),
		Metric:  strings.TrimSpace(q.Get("metric")),
	}

	s.mu.Lock()
	records := s.db.Filter(query)
	s.mu.Unlock()

	writeJSON(w, records)
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, prompt.Build())
}
