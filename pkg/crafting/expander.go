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
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

// Recipe and requirement fields the expander reads or rewrites.
const (
	FieldUsing          = "using"
	FieldComponents     = "components"
	FieldTools          = "tools"
	FieldQualities      = "qualities"
	FieldBookLearn      = "book_learn"
	FieldSkillsRequired = "skills_required"
	FieldSkillUsed      = "skill_used"
	FieldDifficulty     = "difficulty"
	FieldResult         = "result"
)

// Expander resolves requirement presets and renders recipes for display.
// Records in the store are never modified.
type Expander struct {
	store *store.Store
}

// NewExpander creates an expander that resolves ids against st.
func NewExpander(st *store.Store) *Expander {
	return &Expander{store: st}
}

// Expand returns a display copy of rec: presets are unpacked, then
// components, tools, qualities, book_learn, skills_required and skill_used
// are replaced by newline-joined text.
//
// When a preset is missing or presets reference each other in a cycle, the
// returned record is an unmodified copy of rec along with the error.
func (e *Expander) Expand(rec *store.Record) (*store.Record, error) {
	out, err := e.Unpack(rec)
	if err != nil {
		return out, err
	}
	e.prettify(out)
	return out, nil
}

// Unpack returns a copy of rec with every requirement preset merged in.
// Components from a preset used with multiplier n have their quantities
// multiplied by n and are appended to the record's own groups; tools and
// qualities are appended unscaled. Entries of the form [id, qty, "LIST"]
// are replaced by the alternatives of the referenced requirement, scaled
// by every enclosing multiplier. The using field is dropped on success.
func (e *Expander) Unpack(rec *store.Record) (*store.Record, error) {
	out := rec.Clone()

	set, err := e.resolve(out, 1, make(map[string]bool))
	if err != nil {
		return rec.Clone(), e.wrap(rec, err)
	}

	set.apply(out)
	out.Delete(FieldUsing)
	return out, nil
}

// requirementSet is the merged content of a record and its presets.
type requirementSet struct {
	components []any
	tools      []any
	qualities  []any
}

func (s *requirementSet) merge(o *requirementSet) {
	s.components = append(s.components, o.components...)
	s.tools = append(s.tools, o.tools...)
	s.qualities = append(s.qualities, o.qualities...)
}

// apply writes merged lists back. Fields holding something other than a
// list are left alone; absent fields are only added when non-empty.
func (s *requirementSet) apply(rec *store.Record) {
	write := func(field string, list []any) {
		v, ok := rec.Get(field)
		if !ok {
			if len(list) > 0 {
				rec.Set(field, list)
			}
			return
		}
		if _, isList := v.([]any); isList {
			rec.Set(field, list)
		}
	}
	write(FieldComponents, s.components)
	write(FieldTools, s.tools)
	write(FieldQualities, s.qualities)
}

// resolve flattens rec and, through its using field, every preset it
// references. path holds the requirement ids being resolved above this one.
func (e *Expander) resolve(rec *store.Record, mult float64, path map[string]bool) (*requirementSet, error) {
	set := &requirementSet{
		components: make([]any, 0),
		tools:      make([]any, 0),
		qualities:  listField(rec, FieldQualities),
	}

	var err error
	if set.components, err = e.resolveGroups(listField(rec, FieldComponents), mult, FieldComponents, path); err != nil {
		return nil, err
	}
	if set.tools, err = e.resolveGroups(listField(rec, FieldTools), 1, FieldTools, path); err != nil {
		return nil, err
	}

	usingVal, ok := rec.Get(FieldUsing)
	if !ok {
		return set, nil
	}
	refs, err := parseUsing(usingVal)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		sub, err := e.resolvePreset(ref.id, mult*ref.mult, path)
		if err != nil {
			return nil, err
		}
		set.merge(sub)
	}
	return set, nil
}

// resolvePreset looks up a requirement and resolves it with mult.
func (e *Expander) resolvePreset(id string, mult float64, path map[string]bool) (*requirementSet, error) {
	if path[id] {
		return nil, cdderrors.NewWithContext(cdderrors.ErrCodeCycle,
			fmt.Sprintf("requirement %q references itself", id),
			map[string]any{"requirement": id, "path": pathString(path)})
	}
	req, ok := e.store.Lookup(category.Requirement, id)
	if !ok {
		return nil, cdderrors.NewWithContext(cdderrors.ErrCodeNotFound,
			fmt.Sprintf("requirement %q not found", id),
			map[string]any{"requirement": id})
	}

	path[id] = true
	defer delete(path, id)

	return e.resolve(req, mult, path)
}

// resolveGroups copies a list of one-of groups, scaling quantities by mult
// and inlining LIST references. Tools are never scaled.
func (e *Expander) resolveGroups(groups []any, mult float64, field string, path map[string]bool) ([]any, error) {
	out := make([]any, 0, len(groups))
	for _, g := range groups {
		alts, ok := g.([]any)
		if !ok {
			out = append(out, store.CloneValue(g))
			continue
		}

		flat := make([]any, 0, len(alts))
		for _, alt := range alts {
			entry, ok := alt.([]any)
			if !ok || len(entry) < 2 {
				flat = append(flat, store.CloneValue(alt))
				continue
			}
			id, isID := entry[0].(string)
			qty, isQty := entry[1].(float64)

			if len(entry) > 2 && isID {
				nestedMult := mult
				if field == FieldComponents && isQty {
					nestedMult *= qty
				}
				sub, err := e.resolvePreset(id, nestedMult, path)
				if err != nil {
					return nil, err
				}
				nested := sub.components
				if field == FieldTools {
					nested = sub.tools
				}
				for _, ng := range nested {
					if nalts, isList := ng.([]any); isList {
						flat = append(flat, nalts...)
					}
				}
				continue
			}

			if field == FieldComponents && isQty {
				flat = append(flat, []any{store.CloneValue(entry[0]), qty * mult})
				continue
			}
			flat = append(flat, store.CloneValue(entry))
		}
		out = append(out, flat)
	}
	return out, nil
}

type presetRef struct {
	id   string
	mult float64
}

// parseUsing accepts [[id, mult], ...], a single [id, mult] pair, or a bare id.
func parseUsing(v any) ([]presetRef, error) {
	switch t := v.(type) {
	case string:
		return []presetRef{{id: t, mult: 1}}, nil
	case []any:
		if isPresetPair(t) {
			ref, err := parsePresetRef(t)
			if err != nil {
				return nil, err
			}
			return []presetRef{ref}, nil
		}
		refs := make([]presetRef, 0, len(t))
		for _, item := range t {
			switch it := item.(type) {
			case string:
				refs = append(refs, presetRef{id: it, mult: 1})
			case []any:
				ref, err := parsePresetRef(it)
				if err != nil {
					return nil, err
				}
				refs = append(refs, ref)
			default:
				return nil, cdderrors.New(cdderrors.ErrCodeParse,
					fmt.Sprintf("unsupported using entry %s", store.FormatValue(item)))
			}
		}
		return refs, nil
	default:
		return nil, cdderrors.New(cdderrors.ErrCodeParse,
			fmt.Sprintf("unsupported using value %s", store.FormatValue(v)))
	}
}

// isPresetPair reports whether list is one [id, mult] pair rather than a
// list of references.
func isPresetPair(list []any) bool {
	if len(list) == 0 {
		return false
	}
	if _, isID := list[0].(string); !isID {
		return false
	}
	if len(list) == 1 {
		return true
	}
	_, isMult := list[1].(float64)
	return isMult
}

func parsePresetRef(pair []any) (presetRef, error) {
	if len(pair) == 0 {
		return presetRef{}, cdderrors.New(cdderrors.ErrCodeParse, "empty using entry")
	}
	id, ok := pair[0].(string)
	if !ok {
		return presetRef{}, cdderrors.New(cdderrors.ErrCodeParse,
			fmt.Sprintf("using entry id is not text: %s", store.FormatValue(pair[0])))
	}
	ref := presetRef{id: id, mult: 1}
	if len(pair) > 1 {
		if m, isNum := pair[1].(float64); isNum {
			ref.mult = m
		}
	}
	return ref, nil
}

func listField(rec *store.Record, field string) []any {
	v, ok := rec.Get(field)
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		return nil
	}
	return store.CloneValue(list).([]any)
}

func pathString(path map[string]bool) string {
	return strings.Join(slices.Sorted(maps.Keys(path)), ",")
}

func (e *Expander) wrap(rec *store.Record, err error) error {
	id, ok := rec.ID()
	if !ok {
		id, _ = rec.GetString(FieldResult)
	}
	return cdderrors.WrapWithContext(cdderrors.CodeOf(err),
		fmt.Sprintf("failed to expand recipe %q", id), err,
		map[string]any{"recipe": id})
}
