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

package crafting

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

const (
	oneOfSeparator  = " or "
	lineSeparator   = "\n"
	qualityIDKey    = "id"
	qualityLevelKey = "level"
	qualityAmount   = "amount"
	bookSkillLevel  = "skill_level"
)

// prettify rewrites each displayable requirement field in place. Fields
// with an unexpected shape keep their raw value.
func (e *Expander) prettify(rec *store.Record) {
	rewrite := func(field string, render func(any) (string, bool)) {
		v, ok := rec.Get(field)
		if !ok {
			return
		}
		if s, ok := render(v); ok {
			rec.Set(field, s)
		}
	}

	rewrite(FieldComponents, func(v any) (string, bool) { return e.renderGroups(v, e.renderComponent) })
	rewrite(FieldTools, func(v any) (string, bool) { return e.renderGroups(v, e.renderTool) })
	rewrite(FieldQualities, e.renderQualities)
	rewrite(FieldBookLearn, e.renderBooks)
	rewrite(FieldSkillsRequired, e.renderSkillsRequired)

	difficulty, ok := rec.Get(FieldDifficulty)
	if !ok {
		difficulty = float64(0)
	}
	rewrite(FieldSkillUsed, func(v any) (string, bool) {
		id, isID := v.(string)
		if !isID {
			return "", false
		}
		return e.renderLevel(category.Skill, id, difficulty), true
	})
}

// renderGroups renders one-of groups, one line per group.
func (e *Expander) renderGroups(v any, render func(any) string) (string, bool) {
	groups, ok := v.([]any)
	if !ok {
		return "", false
	}
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		alts, isList := g.([]any)
		if !isList {
			lines = append(lines, render(g))
			continue
		}
		parts := make([]string, 0, len(alts))
		for _, alt := range alts {
			parts = append(parts, render(alt))
		}
		lines = append(lines, strings.Join(parts, oneOfSeparator))
	}
	return strings.Join(lines, lineSeparator), true
}

func (e *Expander) renderComponent(v any) string {
	id, qty, ok := idPair(v)
	if !ok {
		return store.FormatValue(v)
	}
	return fmt.Sprintf("%s of %s", store.FormatValue(qty), e.name(category.Item, id))
}

func (e *Expander) renderTool(v any) string {
	id, charges, ok := idPair(v)
	if !ok {
		return store.FormatValue(v)
	}
	return fmt.Sprintf("%s (%s charges)", e.name(category.Item, id), store.FormatValue(charges))
}

// renderQualities accepts a list of quality objects, where an entry may
// also be a list of alternative quality objects.
func (e *Expander) renderQualities(v any) (string, bool) {
	list, ok := v.([]any)
	if !ok {
		return "", false
	}
	lines := make([]string, 0, len(list))
	for _, q := range list {
		alts, isList := q.([]any)
		if !isList {
			lines = append(lines, e.renderQuality(q))
			continue
		}
		parts := make([]string, 0, len(alts))
		for _, alt := range alts {
			parts = append(parts, e.renderQuality(alt))
		}
		lines = append(lines, strings.Join(parts, oneOfSeparator))
	}
	return strings.Join(lines, lineSeparator), true
}

func (e *Expander) renderQuality(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return store.FormatValue(v)
	}
	id, _ := m[qualityIDKey].(string)
	amount, ok := m[qualityAmount]
	if !ok {
		amount = float64(1)
	}
	level, ok := m[qualityLevelKey]
	if !ok {
		level = float64(1)
	}
	return fmt.Sprintf("%s tool with %s quality of %s",
		store.FormatValue(amount), e.name(category.ToolQuality, id), store.FormatValue(level))
}

// renderBooks accepts [[book, level], ...] or {book: level} where level may
// be an object carrying skill_level.
func (e *Expander) renderBooks(v any) (string, bool) {
	var lines []string
	switch t := v.(type) {
	case []any:
		for _, entry := range t {
			id, level, ok := idPair(entry)
			if !ok {
				lines = append(lines, store.FormatValue(entry))
				continue
			}
			lines = append(lines, e.renderLevel(category.Item, id, level))
		}
	case map[string]any:
		for _, id := range slices.Sorted(maps.Keys(t)) {
			level := t[id]
			if obj, isObj := level.(map[string]any); isObj {
				level = obj[bookSkillLevel]
			}
			lines = append(lines, e.renderLevel(category.Item, id, level))
		}
	default:
		return "", false
	}
	return strings.Join(lines, lineSeparator), true
}

// renderSkillsRequired accepts a single [skill, level] pair or a list of them.
func (e *Expander) renderSkillsRequired(v any) (string, bool) {
	list, ok := v.([]any)
	if !ok {
		return "", false
	}
	if id, level, isPair := idPair(list); isPair {
		return e.renderLevel(category.Skill, id, level), true
	}
	lines := make([]string, 0, len(list))
	for _, entry := range list {
		id, level, isPair := idPair(entry)
		if !isPair {
			lines = append(lines, store.FormatValue(entry))
			continue
		}
		lines = append(lines, e.renderLevel(category.Skill, id, level))
	}
	return strings.Join(lines, lineSeparator), true
}

func (e *Expander) renderLevel(c category.Category, id string, level any) string {
	if level == nil {
		level = float64(0)
	}
	return fmt.Sprintf("%s (level %s)", e.name(c, id), store.FormatValue(level))
}

// name resolves an id to the record's display name, falling back to the id.
func (e *Expander) name(c category.Category, id string) string {
	rec, ok := e.store.Lookup(c, id)
	if !ok {
		return id
	}
	if n, hasName := rec.Name(); hasName {
		return n
	}
	return id
}

// idPair splits [id, value, ...] entries.
func idPair(v any) (string, any, bool) {
	entry, ok := v.([]any)
	if !ok || len(entry) < 2 {
		return "", nil, false
	}
	id, isID := entry[0].(string)
	if !isID {
		return "", nil, false
	}
	return id, entry[1], true
}
