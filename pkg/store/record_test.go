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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRecordKeepsOrder(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"zeta": 1, "alpha": "a", "mid": [1, 2], "alpha": "b"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, rec.Keys())
	v, _ := rec.GetString("alpha")
	assert.Equal(t, "b", v, "duplicate keys keep first position and last value")

	_, err = ParseRecord([]byte(`[1, 2]`))
	assert.Error(t, err)
	_, err = ParseRecord([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestRecordSetDelete(t *testing.T) {
	rec := NewRecord()
	rec.Set("b", 1.0)
	rec.Set("a", 2.0)
	rec.Set("b", 3.0)
	assert.Equal(t, []string{"b", "a"}, rec.Keys())

	rec.Delete("b")
	rec.Delete("missing")
	assert.Equal(t, []string{"a"}, rec.Keys())
	assert.False(t, rec.Has("b"))
	assert.Equal(t, 1, rec.Len())

	var seen []string
	rec.Set("c", nil)
	rec.Range(func(k string, _ any) bool {
		seen = append(seen, k)
		return true
	})
	assert.Equal(t, []string{"a", "c"}, seen)
	assert.True(t, rec.Has("c"), "null values are still present")
}

func TestRecordClone(t *testing.T) {
	rec := MustParseRecord(`{"id": "req_a", "components": [[["wood", 5]]]}`)
	clone := rec.Clone()

	comps, _ := clone.Get("components")
	comps.([]any)[0].([]any)[0].([]any)[1] = 10.0
	clone.Set("extra", true)

	orig, _ := rec.Get("components")
	assert.Equal(t, 5.0, orig.([]any)[0].([]any)[0].([]any)[1], "clone must not share nested values")
	assert.False(t, rec.Has("extra"))
}

func TestRecordIDs(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{"id string", `{"id": "a"}`, []string{"a"}},
		{"ident fallback", `{"ident": "b"}`, []string{"b"}},
		{"id wins over ident", `{"ident": "b", "id": "a"}`, []string{"a"}},
		{"id list", `{"id": ["a", 3, "c"]}`, []string{"a", "c"}},
		{"no id", `{"name": "x"}`, nil},
		{"numeric id", `{"id": 7}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParseRecord(tt.json).IDs())
		})
	}
}

func TestRecordMarshal(t *testing.T) {
	rec := MustParseRecord(`{"type": "GENERIC", "name": "rock", "weight": 250, "flags": ["TRADER_AVOID"]}`)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"GENERIC","name":"rock","weight":250,"flags":["TRADER_AVOID"]}`, string(b))

	y, err := yaml.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, "type: GENERIC\nname: rock\nweight: 250\nflags:\n    - TRADER_AVOID\n", string(y))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5", FormatValue(5.0))
	assert.Equal(t, "0.25", FormatValue(0.25))
	assert.Equal(t, "kevlar", FormatValue("kevlar"))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "null", FormatValue(nil))
	assert.Equal(t, `["a",1]`, FormatValue([]any{"a", 1.0}))
	assert.Equal(t, `{"str":"x"}`, FormatValue(map[string]any{"str": "x"}))
}
