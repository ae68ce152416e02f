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
	"fmt"
	"log/slog"
	"sort"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
)

// Candidate is a near match, identified by its normalized name.
type Candidate struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// Result is either a definitive record or a ranked list of candidates.
type Result struct {
	Record     *store.Record `json:"record,omitempty" yaml:"record,omitempty"`
	Candidates []Candidate   `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// Definitive reports whether every queried field matched one record exactly.
func (r *Result) Definitive() bool {
	return r.Record != nil
}

// Names returns candidate names, best first.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		names = append(names, c.Name)
	}
	return names
}

// Searcher runs attribute queries against one Store.
type Searcher struct {
	store *store.Store
}

// NewSearcher creates a searcher over st. The store is only read.
func NewSearcher(st *store.Store) *Searcher {
	return &Searcher{store: st}
}

type verdict int

const (
	verdictFail verdict = iota
	verdictFuzzy
	verdictExact
)

// Search scans the category in store order.
//
// A record must hold every queried key. Each field scores 1 when its value
// equals the desired value, else its Similarity if that exceeds
// MatchThreshold; any other field rejects the record. The first record whose
// fields are all exact is returned as a definitive match. Without one, the
// names of the surviving records are returned ordered by average score,
// ties in store order. Records without a text name are left out.
//
// An unknown category is an INVALID_REQUEST error.
func (s *Searcher) Search(q Query, c category.Category) (*Result, error) {
	if !s.store.Has(c) {
		searchesTotal.WithLabelValues(string(c), outcomeInvalid).Inc()
		return nil, cdderrors.NewWithContext(cdderrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown category %q", c),
			map[string]any{"category": string(c), "query": q.String()})
	}

	var candidates []Candidate
	for _, rec := range s.store.Records(c) {
		avg, v := score(rec, q)
		switch v {
		case verdictExact:
			slog.Debug("definitive match", "category", c, "query", q.String())
			searchesTotal.WithLabelValues(string(c), outcomeDefinitive).Inc()
			return &Result{Record: rec}, nil
		case verdictFuzzy:
			if name, ok := rec.Name(); ok {
				candidates = append(candidates, Candidate{Name: name, Score: avg})
			}
		case verdictFail:
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	outcome := outcomeFuzzy
	if len(candidates) == 0 {
		outcome = outcomeEmpty
	}
	searchesTotal.WithLabelValues(string(c), outcome).Inc()
	slog.Debug("fuzzy search finished", "category", c, "query", q.String(), "candidates", len(candidates))

	return &Result{Candidates: candidates}, nil
}

// score rates one record against the query.
func score(rec *store.Record, q Query) (float64, verdict) {
	for _, a := range q.attrs {
		if !rec.Has(a.Key) {
			return 0, verdictFail
		}
	}

	total := 0.0
	exact := 0
	for _, a := range q.attrs {
		raw, _ := rec.Get(a.Key)
		actual := store.FormatValue(raw)
		if actual == a.Value {
			total += ExactScore
			exact++
			continue
		}
		sim := Similarity(a.Value, actual)
		if sim <= MatchThreshold {
			return 0, verdictFail
		}
		total += sim
	}

	if exact == len(q.attrs) {
		return ExactScore, verdictExact
	}
	return total / float64(len(q.attrs)), verdictFuzzy
}
