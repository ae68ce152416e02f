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

package category

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/cdda-json-browser/pkg/config"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

// Category is a canonical classification bucket for records.
type Category string

// Categories the browser has special handling for. The registry table may
// declare more; these only name the ones code refers to.
const (
	Item        Category = "item"
	Mutation    Category = "mutation"
	Bionic      Category = "bionic"
	MartialArt  Category = "martial_art"
	Material    Category = "material"
	Vehicle     Category = "vehicle"
	Monster     Category = "monster"
	Recipe      Category = "recipe"
	Requirement Category = "requirement"
	Skill       Category = "skill"
	ToolQuality Category = "tool_quality"
)

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// maxSuggestDistance bounds how far a typo may be from a category to be suggested.
const maxSuggestDistance = 3

type entry struct {
	category Category
	tags     map[string]bool
}

// Registry resolves raw JSON type tags to categories.
// It is built once from config tables and is read-only afterwards.
type Registry struct {
	entries []entry
	known   map[Category]bool
}

// NewRegistry builds a registry preserving the table's declaration order.
func NewRegistry(types []config.CategoryTypes) *Registry {
	r := &Registry{
		entries: make([]entry, 0, len(types)),
		known:   make(map[Category]bool, len(types)),
	}
	for _, ct := range types {
		tags := make(map[string]bool, len(ct.Types))
		for _, tag := range ct.Types {
			tags[tag] = true
		}
		cat := Category(ct.Name)
		r.entries = append(r.entries, entry{category: cat, tags: tags})
		r.known[cat] = true
	}
	return r
}

// Resolve returns the first category, in declaration order, whose tag list
// contains rawType. The second result is false when no category matches.
func (r *Registry) Resolve(rawType string) (Category, bool) {
	for _, e := range r.entries {
		if e.tags[rawType] {
			return e.category, true
		}
	}
	return "", false
}

// Categories returns all categories in declaration order.
func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.category)
	}
	return out
}

// Has reports whether c is a declared category.
func (r *Registry) Has(c Category) bool {
	return r.known[c]
}

// Validate checks that name is a declared category and returns it.
// Unknown names yield an INVALID_REQUEST error that suggests the closest category.
func (r *Registry) Validate(name string) (Category, error) {
	c := Category(name)
	if r.known[c] {
		return c, nil
	}

	msg := fmt.Sprintf("unknown category %q", name)
	if suggestion, ok := r.Suggest(name); ok {
		msg += fmt.Sprintf(", did you mean %q?", suggestion)
	}
	return "", cdderrors.NewWithContext(cdderrors.ErrCodeInvalidRequest, msg,
		map[string]any{"category": name, "known": r.names()})
}

// Suggest returns the declared category closest to name by edit distance.
func (r *Registry) Suggest(name string) (Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	var (
		best     Category
		bestDist = maxSuggestDistance + 1
	)
	for _, e := range r.entries {
		d := levenshtein.ComputeDistance(needle, string(e.category))
		if d < bestDist {
			best, bestDist = e.category, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}

func (r *Registry) names() string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, string(e.category))
	}
	return strings.Join(names, ", ")
}
