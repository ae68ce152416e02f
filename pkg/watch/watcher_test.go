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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

func startWatcher(t *testing.T, dir string, opts ...Option) <-chan []string {
	t.Helper()

	w, err := New(dir, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	changes := make(chan []string, 10)
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, paths []string) error {
			changes <- paths
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to start.
	time.Sleep(50 * time.Millisecond)
	return changes
}

func waitForChange(ch <-chan []string, timeout time.Duration) ([]string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return nil, false
	}
}

func TestWatcher_DetectsDataFileChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))

	changes := startWatcher(t, dir, WithDebounce(20*time.Millisecond), WithMinInterval(0))

	require.NoError(t, os.WriteFile(file, []byte(`[{"type":"GENERIC"}]`), 0o600))

	paths, ok := waitForChange(changes, 2*time.Second)
	require.True(t, ok, "expected a change callback")
	assert.Contains(t, paths, file)
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir, WithDebounce(200*time.Millisecond), WithMinInterval(0))

	for _, name := range []string{"a.json", "b.json", "c.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o600))
	}

	paths, ok := waitForChange(changes, 2*time.Second)
	require.True(t, ok, "expected a change callback")
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "c.json"),
	}, paths)

	_, again := waitForChange(changes, 400*time.Millisecond)
	assert.False(t, again, "burst should be delivered once")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir, WithDebounce(20*time.Millisecond), WithMinInterval(0))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	_, ok := waitForChange(changes, 300*time.Millisecond)
	assert.False(t, ok, "non-data files must not trigger a callback")
}

func TestWatcher_WatchesNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir, WithDebounce(20*time.Millisecond), WithMinInterval(0))

	sub := filepath.Join(dir, "mods")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond)

	file := filepath.Join(sub, "extra.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))

	paths, ok := waitForChange(changes, 2*time.Second)
	require.True(t, ok, "expected a change callback")
	assert.Contains(t, paths, file)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, cdderrors.IsCode(err, cdderrors.ErrCodeNotFound))
}

func TestRun_ReturnsOnCancel(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx, func(context.Context, []string) error { return nil }))
	assert.NoError(t, w.Close())
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write json", fsnotify.Event{Name: "/d/a.json", Op: fsnotify.Write}, true},
		{"remove json", fsnotify.Event{Name: "/d/a.json", Op: fsnotify.Remove}, true},
		{"chmod json", fsnotify.Event{Name: "/d/a.json", Op: fsnotify.Chmod}, false},
		{"write txt", fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Write}, false},
		{"inside git", fsnotify.Event{Name: "/d/.git/a.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelevant(tt.event))
		})
	}
}
