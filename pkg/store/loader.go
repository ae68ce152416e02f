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
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

const dataFileSuffix = ".json"

// Loader discovers, parses, and classifies game data files.
type Loader struct {
	registry *category.Registry
}

// NewLoader creates a loader that classifies records with the given registry.
func NewLoader(registry *category.Registry) *Loader {
	return &Loader{registry: registry}
}

// Load reads every *.json file under root and returns a new Store.
//
// Files are processed in path order. A file that cannot be read or parsed is
// logged, counted in the report, and skipped. Files whose top-level value is
// not an array are skipped as well. Only a missing or non-directory root, or
// context cancellation, make Load fail.
func (l *Loader) Load(ctx context.Context, root string) (*Store, error) {
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return nil, cdderrors.WrapWithContext(cdderrors.ErrCodeNotFound,
			"data directory not found", err, map[string]any{"dir": root})
	}
	if !info.IsDir() {
		return nil, cdderrors.NewWithContext(cdderrors.ErrCodeInvalidRequest,
			"data path is not a directory", map[string]any{"dir": root})
	}

	files, err := discoverFiles(root)
	if err != nil {
		return nil, err
	}
	slog.Info("loading game data", "dir", root, "files", len(files))

	st := NewStore(l.registry.Categories()...)
	st.report.Root = root

	caser := cases.Lower(language.Und)
	for _, path := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("load of %s interrupted: %w", root, ctxErr)
		}
		l.loadFile(st, caser, path)
	}

	st.loadedTime = time.Now()
	st.report.Duration = time.Since(start)
	loadDuration.Observe(st.report.Duration.Seconds())
	for c, n := range st.report.ByCategory {
		recordsLoaded.WithLabelValues(string(c)).Add(float64(n))
	}

	slog.Info("game data loaded",
		"dir", root,
		"snapshot", st.id,
		"records", st.report.RecordsLoaded,
		"files_failed", st.report.FilesFailed,
		"records_skipped", st.report.RecordsSkipped,
		"duration", st.report.Duration)

	return st, nil
}

// discoverFiles returns data file paths under root, sorted.
// Unreadable subdirectories are logged and skipped.
func discoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), dataFileSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, cdderrors.WrapWithContext(cdderrors.ErrCodeInternal,
			"failed to walk data directory", err, map[string]any{"dir": root})
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) loadFile(st *Store, caser cases.Caser, path string) {
	st.report.FilesScanned++

	data, err := os.ReadFile(path)
	if err != nil {
		l.fail(st, path, err)
		return
	}
	if !gjson.ValidBytes(data) {
		l.fail(st, path, cdderrors.New(cdderrors.ErrCodeParse, "invalid JSON"))
		return
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		// Single-object files are not scanned.
		slog.Debug("skipping data file without top-level array", "path", path)
		st.report.FilesSkipped++
		filesProcessed.WithLabelValues(fileOutcomeSkipped).Inc()
		return
	}

	doc.ForEach(func(_, elem gjson.Result) bool {
		if elem.IsObject() {
			l.loadRecord(st, caser, path, elem)
		}
		return true
	})
	filesProcessed.WithLabelValues(fileOutcomeLoaded).Inc()
}

func (l *Loader) loadRecord(st *Store, caser cases.Caser, path string, elem gjson.Result) {
	rawType := elem.Get(FieldType)
	if rawType.Type != gjson.String {
		st.report.RecordsUnclassified++
		return
	}
	cat, ok := l.registry.Resolve(rawType.Str)
	if !ok {
		st.report.RecordsUnclassified++
		return
	}

	rec := recordFromResult(elem)
	if err := normalizeName(rec, caser); err != nil {
		id, _ := rec.ID()
		slog.Warn("skipping record with malformed name",
			"path", path, "type", rawType.Str, "id", id, "error", err)
		st.report.RecordsSkipped++
		return
	}
	st.Add(cat, rec)
}

func (l *Loader) fail(st *Store, path string, err error) {
	slog.Warn("skipping unparsable data file", "path", path, "error", err)
	st.report.FilesFailed++
	st.report.Failures = append(st.report.Failures, FileFailure{Path: path, Error: err.Error()})
	filesProcessed.WithLabelValues(fileOutcomeFailed).Inc()
}

// normalizeName replaces the name field with its lower-cased plain text.
// Structured names use "str", falling back to "str_sp"; a structured name
// with neither is an error. Absent or non-text names are left alone.
func normalizeName(rec *Record, caser cases.Caser) error {
	raw, ok := rec.Get(FieldName)
	if !ok {
		return nil
	}
	switch name := raw.(type) {
	case string:
		rec.Set(FieldName, caser.String(name))
	case map[string]any:
		if s, isStr := name["str"].(string); isStr && s != "" {
			rec.Set(FieldName, caser.String(s))
			return nil
		}
		if s, isStr := name["str_sp"].(string); isStr {
			rec.Set(FieldName, caser.String(s))
			return nil
		}
		return cdderrors.New(cdderrors.ErrCodeParse, `structured name has neither "str" nor "str_sp"`)
	}
	return nil
}
