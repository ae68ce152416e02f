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

// Package watch notifies callers when game data files change on disk.
//
// The whole directory tree is watched, including directories created later.
// Only *.json files count. Bursts of changes (an editor save, a git
// checkout) are collapsed into one callback, and callbacks are rate limited
// so a busy tree cannot trigger a reload storm:
//
//	w, err := watch.New(dir, watch.WithDebounce(500*time.Millisecond))
//	if err != nil {
//	    return err
//	}
//	return w.Run(ctx, func(ctx context.Context, paths []string) error {
//	    _, err := b.Reload(ctx)
//	    return err
//	})
package watch
