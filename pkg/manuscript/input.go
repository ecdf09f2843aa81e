package manuscript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xiaomi388/manuscripts/pkg/types"
)

// detailKeys are the keys a --details file may contribute.
var detailKeys = []string{types.KeyMethods, types.KeyDatasets, types.KeyMetrics}

// ParseDetails decodes a JSON object and keeps its methods, datasets and
// metrics values as they are. Keys absent from data are left out of the
// returned patch; other keys are ignored.
func ParseDetails(data []byte) (types.RecordPatch, error) {
	var obj types.Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return types.RecordPatch{}, fmt.Errorf("%w: details: %v", ErrMalformedInput, err)
	}

	var patch types.RecordPatch
	for _, key := range detailKeys {
		if raw, ok := obj.Raw(key); ok {
			patch.SetRaw(key, raw)
		}
	}

	return patch, nil
}

// LoadDetails reads and parses a --details file.
func LoadDetails(path string) (types.RecordPatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RecordPatch{}, fmt.Errorf("failed to read details file: %w", err)
	}

	return ParseDetails(data)
}

// ParseJSON checks that text holds exactly one JSON value and returns it.
// Blank text is an empty array.
func ParseJSON(field, text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return json.RawMessage("[]"), nil
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, field, err)
	}

	return raw, nil
}

// SplitNames splits a comma separated list, trimming and dropping blanks.
func SplitNames(s string) []string {
	names := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}

	return names
}
