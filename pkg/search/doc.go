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

// Package search finds records in a store.Store by attribute.
//
// A Query is a small ordered set of key/value pairs, usually built with
// ParseQuery from user text:
//
//	ParseQuery("kevlar vest")        // name:kevlar vest
//	ParseQuery("volume:5 weight:250") // volume:5 weight:250
//
// Searcher.Search returns a definitive record when one record matches every
// attribute exactly, and otherwise the names of records whose every
// attribute is similar enough, best first:
//
//	res, err := search.NewSearcher(st).Search(search.ParseQuery(text), category.Item)
//	if err != nil {
//	    return err
//	}
//	if res.Definitive() {
//	    show(res.Record)
//	} else {
//	    suggest(res.Names())
//	}
//
// Similarity is substring containment (0.9) with a fallback to the Jaccard
// index of character sets.
package search
