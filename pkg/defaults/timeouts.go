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
package defaults

import "time"

// Load timeouts for reading a data directory.
const (
	// LoadTimeout bounds a full load of a data directory.
	// A full game data tree loads in a few seconds.
	LoadTimeout = 2 * time.Minute

	// ReloadTimeout bounds a reload triggered by file changes.
	// Should be less than LoadTimeout; a watched reload must not stall the browse loop.
	ReloadTimeout = 1 * time.Minute
)

// Watch timings for reloading on file changes.
const (
	// WatchDebounce is the quiet period that ends a burst of file changes.
	// Editors and git checkouts write many files in quick succession.
	WatchDebounce = 500 * time.Millisecond

	// ReloadMinInterval is the minimum time between two watched reloads.
	ReloadMinInterval = 2 * time.Second
)

// Search limits.
const (
	// MaxSuggestions caps the close names offered when a lookup fails.
	MaxSuggestions = 5
)
