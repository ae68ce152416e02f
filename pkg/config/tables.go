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

package config

import (
	"fmt"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

const (
	// TypesFileName holds the category -> raw type tags registry.
	TypesFileName = "types.yaml"
	// UnwantedFileName holds the per-category fields hidden from display.
	UnwantedFileName = "unwanted.yaml"
	// TranslationsFileName holds the per-category field display labels.
	TranslationsFileName = "translations.yaml"

	// GlobalUnwantedKey names the unwanted-field list applied to every category.
	GlobalUnwantedKey = "all"
)

// CategoryTypes lists the raw type tags that resolve to one category.
type CategoryTypes struct {
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types"`
}

// TypeTable is the on-disk form of the type registry.
type TypeTable struct {
	APIVersion string          `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Kind       string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Categories []CategoryTypes `json:"categories" yaml:"categories"`
}

// Tables is the immutable set of configuration tables loaded at startup.
// Components receive it by pointer and never modify it.
type Tables struct {
	// Types keeps the declaration order of the registry file.
	Types []CategoryTypes

	// Unwanted maps a category (or GlobalUnwantedKey) to hidden field names.
	Unwanted map[string][]string

	// Translations maps a category to raw field name -> display label.
	Translations map[string]map[string]string
}

// LoadTables reads and validates all three tables from the provider.
// Any failure is a CONFIG error; there is no usable default.
func LoadTables(provider DataProvider) (*Tables, error) {
	var types TypeTable
	if err := readTable(provider, TypesFileName, &types); err != nil {
		return nil, err
	}
	if err := validateTypes(types.Categories); err != nil {
		return nil, err
	}

	unwanted := make(map[string][]string)
	if err := readTable(provider, UnwantedFileName, &unwanted); err != nil {
		return nil, err
	}

	translations := make(map[string]map[string]string)
	if err := readTable(provider, TranslationsFileName, &translations); err != nil {
		return nil, err
	}
	if err := validateTranslations(translations); err != nil {
		return nil, err
	}

	slog.Debug("configuration tables loaded",
		"categories", len(types.Categories),
		"types_source", provider.Source(TypesFileName),
		"unwanted_source", provider.Source(UnwantedFileName),
		"translations_source", provider.Source(TranslationsFileName))

	return &Tables{
		Types:        types.Categories,
		Unwanted:     unwanted,
		Translations: translations,
	}, nil
}

// DefaultTables loads the tables compiled into the binary.
func DefaultTables() (*Tables, error) {
	return LoadTables(DefaultDataProvider())
}

// CategoryNames returns category names in registry declaration order.
func (t *Tables) CategoryNames() []string {
	names := make([]string, 0, len(t.Types))
	for _, c := range t.Types {
		names = append(names, c.Name)
	}
	return names
}

// UnwantedFields returns the union of global and category hidden fields as a set.
func (t *Tables) UnwantedFields(category string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range t.Unwanted[GlobalUnwantedKey] {
		set[f] = true
	}
	for _, f := range t.Unwanted[category] {
		set[f] = true
	}
	return set
}

// Labels returns the display-label table for a category (nil if none).
func (t *Tables) Labels(category string) map[string]string {
	return t.Translations[category]
}

func readTable(provider DataProvider, name string, out any) error {
	data, err := provider.ReadFile(name)
	if err != nil {
		return cdderrors.WrapWithContext(cdderrors.ErrCodeConfig,
			"failed to read configuration table", err,
			map[string]any{"table": name, "source": provider.Source(name)})
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return cdderrors.WrapWithContext(cdderrors.ErrCodeConfig,
			"failed to parse configuration table", err,
			map[string]any{"table": name, "source": provider.Source(name)})
	}
	return nil
}

func validateTypes(categories []CategoryTypes) error {
	if len(categories) == 0 {
		return cdderrors.New(cdderrors.ErrCodeConfig,
			fmt.Sprintf("%s declares no categories", TypesFileName))
	}
	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		if c.Name == "" {
			return cdderrors.New(cdderrors.ErrCodeConfig,
				fmt.Sprintf("%s: category %d has no name", TypesFileName, i))
		}
		if seen[c.Name] {
			return cdderrors.New(cdderrors.ErrCodeConfig,
				fmt.Sprintf("%s: duplicate category %q", TypesFileName, c.Name))
		}
		seen[c.Name] = true
	}
	return nil
}

// validateTranslations rejects label tables that would give two fields of
// one record the same display name: two fields sharing a label, or a label
// naming another field that keeps its raw name.
func validateTranslations(translations map[string]map[string]string) error {
	for category, labels := range translations {
		fields := make([]string, 0, len(labels))
		for field := range labels {
			fields = append(fields, field)
		}
		slices.Sort(fields)

		owner := make(map[string]string, len(labels))
		for _, field := range fields {
			label := labels[field]
			if label == "" {
				continue
			}
			if prev, ok := owner[label]; ok {
				return cdderrors.NewWithContext(cdderrors.ErrCodeConfig,
					fmt.Sprintf("%s: fields share a display label", TranslationsFileName),
					map[string]any{"category": category, "label": label, "fields": []string{prev, field}})
			}
			owner[label] = field
			if other, ok := labels[label]; ok && label != field && other == "" {
				return cdderrors.NewWithContext(cdderrors.ErrCodeConfig,
					fmt.Sprintf("%s: display label collides with a raw field name", TranslationsFileName),
					map[string]any{"category": category, "label": label, "fields": []string{field, label}})
			}
		}
	}
	return nil
}
