package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object that keeps every key it was decoded with, in
// order, and every value as the raw JSON it was read as. Nothing about the
// values is checked beyond them being valid JSON.
type Object struct {
	keys   []string
	values map[string]json.RawMessage
}

func NewObject() Object {
	return Object{values: map[string]json.RawMessage{}}
}

func (o Object) Len() int {
	return len(o.keys)
}

func (o Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Raw returns a copy of the encoded value stored under key.
func (o Object) Raw(key string) (json.RawMessage, bool) {
	raw, ok := o.values[key]
	if !ok {
		return nil, false
	}

	return append(json.RawMessage(nil), raw...), true
}

// SetRaw stores an encoded value under key, compacted. A new key goes last;
// an existing key keeps its position.
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	if o.values == nil {
		o.values = map[string]json.RawMessage{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	o.values[key] = buf.Bytes()
}

func (o *Object) SetString(key, s string) {
	o.SetRaw(key, encodeString(s))
}

// SetStrings stores ss as an array. A nil slice is stored as [].
func (o *Object) SetStrings(key string, ss []string) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, s := range ss {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(encodeString(s))
	}
	buf.WriteByte(']')
	o.SetRaw(key, buf.Bytes())
}

// SetObjects stores objs as an array. A nil slice is stored as [].
func (o *Object) SetObjects(key string, objs []Object) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, obj := range objs {
		if i > 0 {
			buf.WriteByte(',')
		}
		obj.writeTo(&buf)
	}
	buf.WriteByte(']')
	o.SetRaw(key, buf.Bytes())
}

// StringValue returns the value under key when it is a JSON string and ""
// otherwise.
func (o Object) StringValue(key string) string {
	raw, ok := o.values[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}

// StringList returns the string elements of the array under key. Elements
// of any other type are skipped, and a value that is not an array gives nil.
func (o Object) StringList(key string) []string {
	raw, ok := o.values[key]
	if !ok {
		return nil
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	out := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// ObjectList returns the object elements of the array under key, skipping
// anything else.
func (o Object) ObjectList(key string) []Object {
	raw, ok := o.values[key]
	if !ok {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	out := []Object{}
	for _, item := range items {
		obj, err := parseObject(item)
		if err != nil {
			continue
		}
		out = append(out, obj)
	}

	return out
}

// Text renders the value under key for display: strings without quotes,
// null and absent values as "", anything else as compact JSON.
func (o Object) Text(key string) string {
	raw, ok := o.values[key]
	if !ok {
		return ""
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}

	return buf.String()
}

// Clone returns a copy that shares no mutable state with o.
func (o Object) Clone() Object {
	c := Object{keys: append([]string(nil), o.keys...)}
	if o.values != nil {
		c.values = make(map[string]json.RawMessage, len(o.values))
		for k, v := range o.values {
			c.values[k] = v
		}
	}

	return c
}

func (o Object) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(encodeString(key))
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
}

// MarshalJSON writes the keys in the order they were read or set.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	o.writeTo(&buf)
	return buf.Bytes(), nil
}

func (o *Object) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	*o = obj

	return nil
}

func parseObject(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return Object{}, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Object{}, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Object{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Object{}, fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Object{}, err
		}
		obj.SetRaw(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return Object{}, err
	}

	return obj, nil
}

func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// writing a string to a bytes.Buffer cannot fail
	_ = enc.Encode(s)

	return bytes.TrimRight(buf.Bytes(), "\n")
}
