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
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cdda-json-browser/pkg/defaults"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	names := tables.CategoryNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "item", names[0], "declaration order must be preserved")
	for _, want := range []string{"mutation", "bionic", "martial_art", "vehicle", "monster", "recipe", "requirement", "skill", "tool_quality"} {
		assert.Contains(t, names, want)
	}

	unwanted := tables.UnwantedFields("item")
	for _, f := range []string{"type", "//", "//2", "copy-from", "color", "use_action"} {
		assert.True(t, unwanted[f], "item should hide %q", f)
	}
	assert.False(t, unwanted["name"])

	assert.Equal(t, "Components", tables.Labels("recipe")["components"])
	assert.Nil(t, tables.Labels("no-such-category"))
}

func TestLoadTablesErrors(t *testing.T) {
	valid := fstest.MapFile{Data: []byte("all: [type]\n")}
	validTranslations := fstest.MapFile{Data: []byte("item:\n  id: ID\n")}

	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{
			name: "missing types table",
			files: fstest.MapFS{
				"data/unwanted.yaml":     &valid,
				"data/translations.yaml": &validTranslations,
			},
		},
		{
			name: "malformed types table",
			files: fstest.MapFS{
				"data/types.yaml":        {Data: []byte("categories: [\n")},
				"data/unwanted.yaml":     &valid,
				"data/translations.yaml": &validTranslations,
			},
		},
		{
			name: "empty registry",
			files: fstest.MapFS{
				"data/types.yaml":        {Data: []byte("categories: []\n")},
				"data/unwanted.yaml":     &valid,
				"data/translations.yaml": &validTranslations,
			},
		},
		{
			name: "duplicate category",
			files: fstest.MapFS{
				"data/types.yaml":        {Data: []byte("categories:\n  - name: item\n  - name: item\n")},
				"data/unwanted.yaml":     &valid,
				"data/translations.yaml": &validTranslations,
			},
		},
		{
			name: "shared display label",
			files: fstest.MapFS{
				"data/types.yaml":        {Data: []byte("categories:\n  - name: item\n")},
				"data/unwanted.yaml":     &valid,
				"data/translations.yaml": {Data: []byte("item:\n  weight: Weight\n  mass: Weight\n")},
			},
		},
		{
			name: "label names a raw field",
			files: fstest.MapFS{
				"data/types.yaml":        {Data: []byte("categories:\n  - name: item\n")},
				"data/unwanted.yaml":     &valid,
				"data/translations.yaml": {Data: []byte("item:\n  mass: weight\n  weight: \"\"\n")},
			},
		},
		{
			name: "missing translations",
			files: fstest.MapFS{
				"data/types.yaml":    {Data: []byte("categories:\n  - name: item\n    types: [TOOL]\n")},
				"data/unwanted.yaml": &valid,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTables(NewEmbeddedDataProvider(tt.files, "data"))
			require.Error(t, err)
			assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeConfig), "got %v", err)
		})
	}
}

func TestValidateTranslations(t *testing.T) {
	t.Run("distinct labels pass", func(t *testing.T) {
		err := validateTranslations(map[string]map[string]string{
			"item":     {"id": "id", "weight": "volume", "volume": "weight", "name": ""},
			"mutation": {"points": "Weight"},
		})
		assert.NoError(t, err)
	})

	t.Run("collision reports fields", func(t *testing.T) {
		err := validateTranslations(map[string]map[string]string{
			"bionic": {"capacity": "Power", "power": "Power"},
		})
		require.Error(t, err)
		assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeConfig))
		fields, ok := cdderrors.ContextValue(err, "fields")
		require.True(t, ok)
		assert.Equal(t, []string{"capacity", "power"}, fields)
	})
}

func TestLayeredDataProvider_OverridesTable(t *testing.T) {
	tmpDir := t.TempDir()
	custom := "categories:\n  - name: item\n    types: [CUSTOM_ITEM]\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, TypesFileName), []byte(custom), 0600))

	provider, err := NewLayeredDataProvider(DefaultDataProvider(), LayeredProviderConfig{ExternalDir: tmpDir})
	require.NoError(t, err)

	assert.Equal(t, sourceExternal, provider.Source(TypesFileName))
	assert.Equal(t, sourceEmbedded, provider.Source(UnwantedFileName))

	tables, err := LoadTables(provider)
	require.NoError(t, err)
	require.Len(t, tables.Types, 1)
	assert.Equal(t, []string{"CUSTOM_ITEM"}, tables.Types[0].Types)
	assert.NotEmpty(t, tables.Translations["recipe"], "non-overridden tables come from embedded data")
}

func TestLayeredDataProvider_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewLayeredDataProvider(DefaultDataProvider(), LayeredProviderConfig{
			ExternalDir: filepath.Join(t.TempDir(), "nope"),
		})
		require.Error(t, err)
		assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeConfig))
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.yaml")
		require.NoError(t, os.WriteFile(file, []byte("x: 1\n"), 0600))
		_, err := NewLayeredDataProvider(DefaultDataProvider(), LayeredProviderConfig{ExternalDir: file})
		require.Error(t, err)
	})

	t.Run("file too large", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, TypesFileName), make([]byte, 64), 0600))
		_, err := NewLayeredDataProvider(DefaultDataProvider(), LayeredProviderConfig{
			ExternalDir: tmpDir,
			MaxFileSize: 16,
		})
		require.Error(t, err)
	})
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("CDDAB_DATA_DIR", "/games/cdda/data/json")
	t.Setenv("CDDAB_WATCH_DEBOUNCE", "250ms")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/games/cdda/data/json", s.DataDir)
	assert.Equal(t, 250*time.Millisecond, s.WatchDebounce)
	assert.Equal(t, "text", s.Format)
	assert.Equal(t, defaults.ReloadMinInterval, s.ReloadEvery)

	provider, err := s.Provider()
	require.NoError(t, err)
	assert.Equal(t, sourceEmbedded, provider.Source(TypesFileName))
}

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"CDDAB_WATCH_DEBOUNCE", "CDDAB_RELOAD_MIN_INTERVAL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, defaults.WatchDebounce, s.WatchDebounce)
	assert.Equal(t, defaults.ReloadMinInterval, s.ReloadEvery)
}
