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

// Package translate turns raw records into display records: internal
// fields are dropped and the rest are relabeled for humans.
package translate

import (
	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/config"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

// Translator applies the unwanted-field and label tables.
type Translator struct {
	tables *config.Tables
}

// NewTranslator creates a translator backed by tables.
func NewTranslator(tables *config.Tables) *Translator {
	return &Translator{tables: tables}
}

// Translate returns a new record holding the displayable fields of rec in
// their original order. Fields in the global or category unwanted lists are
// dropped; the others are renamed by the category label table, keeping the
// raw name when no non-empty label exists. Values are deep copies and rec
// is left untouched.
func (t *Translator) Translate(rec *store.Record, c category.Category) *store.Record {
	unwanted := t.tables.UnwantedFields(string(c))
	labels := t.tables.Labels(string(c))

	out := store.NewRecord()
	rec.Range(func(key string, value any) bool {
		if unwanted[key] {
			return true
		}
		label := key
		if l := labels[key]; l != "" {
			label = l
		}
		out.Set(label, store.CloneValue(value))
		return true
	})
	return out
}

// Label returns the display label of one raw field name.
func (t *Translator) Label(c category.Category, key string) string {
	if l := t.tables.Labels(string(c))[key]; l != "" {
		return l
	}
	return key
}
