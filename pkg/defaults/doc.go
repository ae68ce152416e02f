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
// Package defaults provides centralized configuration constants for cddab.
//
// This package defines timeout values, watch timings, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Load timeouts: For reading a data directory
//   - Watch timings: For reloading when data files change
//   - Search limits: For suggestions offered on failed lookups
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/cdda-json-browser/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.LoadTimeout)
//	defer cancel()
//
// The watch timings are the defaults of CDDAB_WATCH_DEBOUNCE and
// CDDAB_RELOAD_MIN_INTERVAL.
package defaults
