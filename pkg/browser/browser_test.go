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

package browser

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/config"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

const (
	itemsJSON = `[
		{"type": "ARMOR", "id": "kevlar_vest", "name": {"str": "Kevlar Vest"}, "weight": "2400 g"},
		{"type": "GENERIC", "id": "wood", "name": "Plank"},
		{"type": "GENERIC", "id": "door_wood", "name": "Wood Door", "color": "brown"}
	]`
	recipesJSON = `[
		{"type": "recipe", "result": "door_wood", "skill_used": "fabrication", "difficulty": 2, "using": [["req_a", 2]]},
		{"type": "requirement", "id": "req_a", "components": [[["wood", 5]]]}
	]`
)

func writeData(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func newLoadedBrowser(t *testing.T) (*Browser, string) {
	t.Helper()
	tables, err := config.DefaultTables()
	require.NoError(t, err)

	dir := t.TempDir()
	writeData(t, dir, map[string]string{
		"items/armor.json":    itemsJSON,
		"recipes/doors.json": recipesJSON,
	})

	b := New(tables)
	report, err := b.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 5, report.RecordsLoaded)
	return b, dir
}

func TestBrowser_NotLoaded(t *testing.T) {
	tables, err := config.DefaultTables()
	require.NoError(t, err)
	b := New(tables)

	_, err = b.Search("anything", category.Item)
	assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeInvalidRequest))

	_, err = b.Reload(context.Background())
	assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeInvalidRequest))
	assert.Nil(t, b.Store())
}

func TestBrowser_SearchLowerCases(t *testing.T) {
	b, _ := newLoadedBrowser(t)

	res, err := b.Search("Kevlar VEST", category.Item)
	require.NoError(t, err)
	require.True(t, res.Definitive())

	id, _ := res.Record.ID()
	assert.Equal(t, "kevlar_vest", id)
}

func TestBrowser_TranslateItem(t *testing.T) {
	b, _ := newLoadedBrowser(t)

	res, err := b.Search("wood door", category.Item)
	require.NoError(t, err)
	require.True(t, res.Definitive())

	out, err := b.Translate(res.Record, category.Item)
	require.NoError(t, err)
	assert.False(t, out.Has("type"))
	assert.False(t, out.Has("color"))
	assert.True(t, out.Has(b.Label(category.Item, "name")))
}

func TestBrowser_Craft(t *testing.T) {
	b, _ := newLoadedBrowser(t)

	res, err := b.Craft("Wood Door")
	require.NoError(t, err)
	require.True(t, res.Definitive())

	out, err := b.Translate(res.Record, category.Recipe)
	require.NoError(t, err)

	components, ok := out.Get(b.Label(category.Recipe, "components"))
	require.True(t, ok)
	assert.Equal(t, "10 of plank", components)

	skill, ok := out.Get(b.Label(category.Recipe, "skill_used"))
	require.True(t, ok)
	assert.Equal(t, "fabrication (level 2)", skill)
	assert.False(t, out.Has("using"))
}

func TestBrowser_CraftUnknownItem(t *testing.T) {
	b, _ := newLoadedBrowser(t)

	_, err := b.Craft("door")
	require.Error(t, err)
	assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeNotFound))

	var se *cdderrors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"wood door"}, se.Context["suggestions"])
}

func TestBrowser_TranslateBrokenRecipe(t *testing.T) {
	b, dir := newLoadedBrowser(t)
	writeData(t, dir, map[string]string{
		"recipes/broken.json": `[{"type":"recipe","result":"kevlar_vest","using":[["missing",1]]}]`,
	})
	_, err := b.Reload(context.Background())
	require.NoError(t, err)

	res, err := b.Craft("kevlar vest")
	require.NoError(t, err)
	require.True(t, res.Definitive())

	out, err := b.Translate(res.Record, category.Recipe)
	require.Error(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Has("using"))
}

func TestBrowser_FailedLoadKeepsStore(t *testing.T) {
	b, dir := newLoadedBrowser(t)
	before := b.Store()

	_, err := b.Load(context.Background(), filepath.Join(dir, "missing"))
	require.Error(t, err)

	assert.Same(t, before, b.Store())
	assert.Equal(t, dir, b.Root())
}

func TestBrowser_ReloadSwapsSnapshot(t *testing.T) {
	b, dir := newLoadedBrowser(t)
	first := b.Store().ID()

	writeData(t, dir, map[string]string{
		"items/extra.json": `[{"type":"GENERIC","id":"rock","name":"Rock"}]`,
	})
	report, err := b.Reload(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, report.SnapshotID)
	assert.Equal(t, 6, report.RecordsLoaded)

	res, err := b.Search("rock", category.Item)
	require.NoError(t, err)
	assert.True(t, res.Definitive())
}

func TestBrowser_ConcurrentSearchDuringReload(t *testing.T) {
	b, _ := newLoadedBrowser(t)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				res, err := b.Search("kevlar vest", category.Item)
				assert.NoError(t, err)
				assert.True(t, res.Definitive())
			}
		}()
	}
	for range 3 {
		_, err := b.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestBrowser_Category(t *testing.T) {
	b, _ := newLoadedBrowser(t)

	c, err := b.Category("recipe")
	require.NoError(t, err)
	assert.Equal(t, category.Recipe, c)

	_, err = b.Category("recipes")
	assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeInvalidRequest))
	assert.Equal(t, category.Item, b.Categories()[0])
}
