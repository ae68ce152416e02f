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
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
)

// FileFailure records a data file that could not be read or parsed.
type FileFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// Report summarizes one load.
type Report struct {
	SnapshotID          string                    `json:"snapshotId" yaml:"snapshotId"`
	Root                string                    `json:"root" yaml:"root"`
	FilesScanned        int                       `json:"filesScanned" yaml:"filesScanned"`
	FilesFailed         int                       `json:"filesFailed" yaml:"filesFailed"`
	FilesSkipped        int                       `json:"filesSkipped" yaml:"filesSkipped"`
	RecordsLoaded       int                       `json:"recordsLoaded" yaml:"recordsLoaded"`
	RecordsSkipped      int                       `json:"recordsSkipped" yaml:"recordsSkipped"`
	RecordsUnclassified int                       `json:"recordsUnclassified" yaml:"recordsUnclassified"`
	ByCategory          map[category.Category]int `json:"byCategory" yaml:"byCategory"`
	Failures            []FileFailure             `json:"failures,omitempty" yaml:"failures,omitempty"`
	Duration            time.Duration             `json:"duration" yaml:"duration"`
}

// Warnings is the number of recoverable problems met during the load:
// unparsable files plus records dropped for a malformed name.
func (r *Report) Warnings() int {
	return r.FilesFailed + r.RecordsSkipped
}

// Store is the in-memory index of classified records. For each category it
// holds the records in discovery order and an id -> record map.
//
// A Store is filled once by the Loader and is read-only afterwards; a reload
// builds a new Store instead of updating this one.
type Store struct {
	id         string
	order      []category.Category
	records    map[category.Category][]*Record
	index      map[category.Category]map[string]*Record
	report     Report
	loadedTime time.Time
}

// NewStore creates an empty store with the given categories pre-registered.
func NewStore(categories ...category.Category) *Store {
	s := &Store{
		id:      uuid.NewString(),
		records: make(map[category.Category][]*Record, len(categories)),
		index:   make(map[category.Category]map[string]*Record, len(categories)),
		report:  Report{ByCategory: make(map[category.Category]int, len(categories))},
	}
	for _, c := range categories {
		s.ensure(c)
	}
	s.report.SnapshotID = s.id
	return s
}

func (s *Store) ensure(c category.Category) {
	if _, ok := s.records[c]; ok {
		return
	}
	s.order = append(s.order, c)
	s.records[c] = []*Record{}
	s.index[c] = make(map[string]*Record)
}

// Add appends a record to a category and indexes it by id. A later record
// with the same id replaces the earlier one in the index only.
// Add is for building a store; never call it on a store that is being queried.
func (s *Store) Add(c category.Category, rec *Record) {
	s.ensure(c)
	s.records[c] = append(s.records[c], rec)
	for _, id := range rec.IDs() {
		s.index[c][id] = rec
	}
	s.report.ByCategory[c]++
	s.report.RecordsLoaded++
}

// ID is a unique identifier for this loaded snapshot.
func (s *Store) ID() string {
	return s.id
}

// Has reports whether the category is registered in this store.
func (s *Store) Has(c category.Category) bool {
	_, ok := s.records[c]
	return ok
}

// Categories returns registered categories in registration order.
func (s *Store) Categories() []category.Category {
	out := make([]category.Category, len(s.order))
	copy(out, s.order)
	return out
}

// Records returns the category's records in discovery order.
// The returned slice and records must not be modified.
func (s *Store) Records(c category.Category) []*Record {
	return s.records[c]
}

// Lookup finds a record by id within a category.
func (s *Store) Lookup(c category.Category, id string) (*Record, bool) {
	rec, ok := s.index[c][id]
	return rec, ok
}

// Count returns the number of records in a category.
func (s *Store) Count(c category.Category) int {
	return len(s.records[c])
}

// Report returns the load summary.
func (s *Store) Report() *Report {
	return &s.report
}

// LoadedAt is when the load finished (zero for stores built by hand).
func (s *Store) LoadedAt() time.Time {
	return s.loadedTime
}
