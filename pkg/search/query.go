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

package search

import (
	"regexp"
	"strings"

	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

// attributePattern matches key:value pairs made of letters, digits, marks
// and underscores in any script.
var attributePattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]*:[\p{L}\p{N}\p{M}_]*`)

// Attribute is one queried field and its desired value.
type Attribute struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Query is an ordered set of attributes. Setting an existing key replaces
// its value in place.
type Query struct {
	attrs []Attribute
}

// NewQuery builds a query from attributes; later duplicates win.
func NewQuery(attrs ...Attribute) Query {
	var q Query
	for _, a := range attrs {
		q.Set(a.Key, a.Value)
	}
	return q
}

// NameQuery looks up a record by its name field.
func NameQuery(name string) Query {
	return NewQuery(Attribute{Key: store.FieldName, Value: name})
}

// ParseQuery turns free text into a query. Text containing ':' yields one
// attribute per key:value pair ("volume:5 weight:250"); a value ends at the
// first character that is not a letter, digit, mark or underscore. Text
// without ':' is a name lookup. Text is used as given; callers lower-case it.
func ParseQuery(text string) Query {
	if !strings.Contains(text, ":") {
		return NameQuery(text)
	}
	var q Query
	for _, m := range attributePattern.FindAllString(text, -1) {
		key, value, _ := strings.Cut(m, ":")
		q.Set(key, value)
	}
	return q
}

// Set adds or replaces an attribute.
func (q *Query) Set(key, value string) {
	for i := range q.attrs {
		if q.attrs[i].Key == key {
			q.attrs[i].Value = value
			return
		}
	}
	q.attrs = append(q.attrs, Attribute{Key: key, Value: value})
}

// Get returns the desired value of a key.
func (q Query) Get(key string) (string, bool) {
	for _, a := range q.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Len returns the number of attributes.
func (q Query) Len() int {
	return len(q.attrs)
}

// Attributes returns a copy of the attributes in order.
func (q Query) Attributes() []Attribute {
	out := make([]Attribute, len(q.attrs))
	copy(out, q.attrs)
	return out
}

// String renders the query back as key:value pairs.
func (q Query) String() string {
	parts := make([]string, 0, len(q.attrs))
	for _, a := range q.attrs {
		parts = append(parts, a.Key+":"+a.Value)
	}
	return strings.Join(parts, " ")
}
