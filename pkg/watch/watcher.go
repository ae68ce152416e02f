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

package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/cdda-json-browser/pkg/defaults"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

const (
	// DefaultDebounce is how long the watcher waits for a burst of changes to settle.
	DefaultDebounce = defaults.WatchDebounce

	// DefaultMinInterval is the minimum time between two change callbacks.
	DefaultMinInterval = defaults.ReloadMinInterval

	dataFileSuffix = ".json"
)

// Directories never watched.
var ignoreDirs = map[string]bool{
	".git": true,
	".svn": true,
	".hg":  true,
}

// ChangeFunc is called with the sorted set of data files changed in one burst.
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher reports changes to data files under a directory tree.
type Watcher struct {
	fw       *fsnotify.Watcher
	root     string
	debounce time.Duration
	limiter  *rate.Limiter

	mu     sync.Mutex
	closed bool
}

// Option is a functional option for configuring Watcher instances.
type Option func(*Watcher)

// WithDebounce sets the quiet period that ends a burst of changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithMinInterval sets the minimum time between change callbacks.
// Zero disables the limit.
func WithMinInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d <= 0 {
			w.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		w.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// New starts watching root and every directory below it.
func New(root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, cdderrors.WrapWithContext(cdderrors.ErrCodeInvalidRequest,
			"invalid watch directory", err, map[string]any{"dir": root})
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, cdderrors.Wrap(cdderrors.ErrCodeInternal, "failed to create file watcher", err)
	}

	w := &Watcher{
		fw:       fw,
		root:     abs,
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(abs); err != nil {
		_ = fw.Close()
		return nil, cdderrors.WrapWithContext(cdderrors.ErrCodeNotFound,
			"failed to watch data directory", err, map[string]any{"dir": abs})
	}
	return w, nil
}

// Root returns the absolute directory being watched.
func (w *Watcher) Root() string {
	return w.root
}

// Run delivers changes to onChange until ctx is done. Changes arriving
// within the debounce period of each other are delivered together, and
// deliveries are spaced by at least the minimum interval. An error from
// onChange is logged and does not stop the watcher.
//
// Run returns nil when ctx is canceled.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						slog.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !isRelevant(event) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "dir", w.root, "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				// canceled while waiting
				return nil
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)

			slog.Debug("data files changed", "count", len(paths))
			if err := onChange(ctx, paths); err != nil {
				slog.Warn("change handler failed", "error", err)
			}
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fw.Close()
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && ignoreDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// isRelevant reports whether an event touches a data file.
func isRelevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, dataFileSuffix) {
		return false
	}
	for _, part := range strings.Split(filepath.Dir(event.Name), string(filepath.Separator)) {
		if ignoreDirs[part] {
			return false
		}
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
