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

import "strings"

const (
	// ExactScore is the per-field score of an exact match.
	ExactScore = 1.0

	// SubstringScore is returned when the actual value contains the desired one.
	// It stays below ExactScore even for equal strings.
	SubstringScore = 0.9

	// MatchThreshold is the exclusive lower bound a non-exact field must beat.
	MatchThreshold = 0.7
)

// Similarity scores how close actual is to desired, in [0, 1].
//
// If actual contains desired the score is SubstringScore; note that this
// makes Similarity(s, s) == 0.9 and gives an empty desired value 0.9 against
// anything. Otherwise the score is the Jaccard index of the two strings'
// character sets, so repetition and order are ignored.
func Similarity(desired, actual string) float64 {
	if strings.Contains(actual, desired) {
		return SubstringScore
	}
	return charSetJaccard(desired, actual)
}

// charSetJaccard returns |A∩B| / |A∪B| over the runes of a and b.
// Two empty strings are identical sets and score 1.
func charSetJaccard(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	inter := 0
	for r := range setA {
		if setB[r] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}
