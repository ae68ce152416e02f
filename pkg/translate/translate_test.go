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

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/config"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

func testTables() *config.Tables {
	return &config.Tables{
		Unwanted: map[string][]string{
			config.GlobalUnwantedKey: {"type", "//", "copy-from"},
			"item":                   {"color", "use_action"},
		},
		Translations: map[string]map[string]string{
			"item": {
				"name":   "Name",
				"weight": "Weight",
				"volume": "",
			},
		},
	}
}

func TestTranslate(t *testing.T) {
	rec := store.MustParseRecord(`{
		"type": "ARMOR",
		"id": "kevlar",
		"name": "kevlar vest",
		"//": "comment",
		"color": "green",
		"weight": 2400,
		"volume": 10,
		"flags": ["VARSIZE"]
	}`)

	got := NewTranslator(testTables()).Translate(rec, category.Item)

	assert.Equal(t, []string{"id", "Name", "Weight", "volume", "flags"}, got.Keys())
	v, ok := got.Get("Weight")
	require.True(t, ok)
	assert.Equal(t, float64(2400), v)
}

func TestTranslateDoesNotMutate(t *testing.T) {
	rec := store.MustParseRecord(`{"type":"ARMOR","name":"vest","flags":["A"]}`)
	before := rec.Keys()

	got := NewTranslator(testTables()).Translate(rec, category.Item)
	flags, _ := got.Get("flags")
	flags.([]any)[0] = "B"

	assert.Equal(t, before, rec.Keys())
	orig, _ := rec.Get("flags")
	assert.Equal(t, []any{"A"}, orig)
}

func TestTranslateUnknownCategoryFiltersGlobalOnly(t *testing.T) {
	rec := store.MustParseRecord(`{"type":"x","name":"n","color":"red"}`)

	got := NewTranslator(testTables()).Translate(rec, category.Category("weather"))

	assert.Equal(t, []string{"name", "color"}, got.Keys())
}

func TestTranslateNeverEmitsUnwanted(t *testing.T) {
	tables, err := config.DefaultTables()
	require.NoError(t, err)
	tr := NewTranslator(tables)

	rec := store.MustParseRecord(`{
		"type": "MONSTER", "id": "mon_zombie", "name": "zombie",
		"harvest": "zombie", "color": "green", "weight": "81500 g",
		"hp": 80, "copy-from": "mon_base", "//2": "note"
	}`)
	got := tr.Translate(rec, category.Monster)

	for _, key := range got.Keys() {
		assert.False(t, tables.UnwantedFields(string(category.Monster))[key], "unwanted key %q emitted", key)
	}
	assert.Equal(t, 3, got.Len())
}

func TestLabel(t *testing.T) {
	tr := NewTranslator(testTables())
	assert.Equal(t, "Weight", tr.Label(category.Item, "weight"))
	assert.Equal(t, "volume", tr.Label(category.Item, "volume"))
	assert.Equal(t, "hp", tr.Label(category.Monster, "hp"))
}
