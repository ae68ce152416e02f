// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

// Well-known record fields.
const (
	FieldType  = "type"
	FieldName  = "name"
	FieldID    = "id"
	FieldIdent = "ident"
)

// Record is one JSON object from the game data. Top-level fields keep the
// order they had in the source file. Values are plain JSON values:
// string, float64, bool, nil, map[string]any or []any.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// ParseRecord parses a single JSON object into a Record, keeping field order.
func ParseRecord(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, cdderrors.New(cdderrors.ErrCodeParse, "invalid JSON")
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, cdderrors.New(cdderrors.ErrCodeParse, "JSON value is not an object")
	}
	return recordFromResult(res), nil
}

// MustParseRecord is ParseRecord for literals known to be valid; it panics otherwise.
func MustParseRecord(data string) *Record {
	r, err := ParseRecord([]byte(data))
	if err != nil {
		panic(fmt.Sprintf("store: invalid record literal: %v", err))
	}
	return r
}

func recordFromResult(res gjson.Result) *Record {
	r := NewRecord()
	res.ForEach(func(key, value gjson.Result) bool {
		r.Set(key.String(), value.Value())
		return true
	})
	return r
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns field names in order.
func (r *Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Has reports whether the field is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Get returns the value of a field.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the field value when it is a JSON string.
func (r *Record) GetString(key string) (string, bool) {
	s, ok := r.values[key].(string)
	return s, ok
}

// Set adds or replaces a field. New fields are appended; replaced fields keep their position.
func (r *Record) Set(key string, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes a field if present.
func (r *Record) Delete(key string) {
	if _, exists := r.values[key]; !exists {
		return
	}
	delete(r.values, key)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == key })
}

// Range calls fn for each field in order until fn returns false.
func (r *Record) Range(fn func(key string, value any) bool) {
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Name returns the normalized name, if the record has a string name.
func (r *Record) Name() (string, bool) {
	return r.GetString(FieldName)
}

// Type returns the raw type tag.
func (r *Record) Type() string {
	s, _ := r.GetString(FieldType)
	return s
}

// IDs returns the identifiers the record is indexed under: the "id" field,
// or failing that "ident". A list of strings yields every element.
func (r *Record) IDs() []string {
	v, ok := r.values[FieldID]
	if !ok {
		v, ok = r.values[FieldIdent]
	}
	if !ok {
		return nil
	}
	switch id := v.(type) {
	case string:
		return []string{id}
	case []any:
		ids := make([]string, 0, len(id))
		for _, e := range id {
			if s, isStr := e.(string); isStr {
				ids = append(ids, s)
			}
		}
		return ids
	default:
		return nil
	}
}

// ID returns the first identifier, if any.
func (r *Record) ID() (string, bool) {
	ids := r.IDs()
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Clone returns a deep copy; nested maps and slices are not shared.
func (r *Record) Clone() *Record {
	c := &Record{
		keys:   slices.Clone(r.keys),
		values: make(map[string]any, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = CloneValue(v)
	}
	return c
}

// CloneValue deep-copies a JSON value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = CloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = CloneValue(e)
		}
		return s
	default:
		return v
	}
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a YAML mapping in field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range r.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(r.values[k]); err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// FormatValue renders a field value as display text: strings verbatim,
// numbers in shortest decimal form, other values as compact JSON.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
