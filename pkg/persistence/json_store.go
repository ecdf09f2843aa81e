package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xiaomi388/manuscripts/pkg/types"
)

// JSONStore implements Store using a single pretty-printed JSON array file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store for the file at path. The file is not touched
// until the first load or dump.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) LoadRecords() ([]types.Record, error) {
	return LoadRecords(s.path)
}

func (s *JSONStore) DumpRecords(records []types.Record) error {
	return DumpRecords(s.path, records)
}

func (s *JSONStore) Close() error {
	return nil
}

// MarshalRecords renders records as a 2-space indented JSON array, leaving
// non-ASCII and HTML characters unescaped.
func MarshalRecords(records []types.Record) ([]byte, error) {
	if records == nil {
		records = []types.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DumpRecords rewrites the whole file. There is no temp file or lock, the
// last writer wins.
func DumpRecords(path string, records []types.Record) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadRecords reads the array at path. An absent or blank file is an empty
// list; anything that is not a JSON array of objects is an error.
func LoadRecords(path string) ([]types.Record, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []types.Record{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []types.Record{}, nil
	}

	records := []types.Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	return records, nil
}
