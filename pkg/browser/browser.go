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

package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/config"
	"github.com/NVIDIA/cdda-json-browser/pkg/crafting"
	"github.com/NVIDIA/cdda-json-browser/pkg/defaults"
	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
	"github.com/NVIDIA/cdda-json-browser/pkg/search"
	"github.com/NVIDIA/cdda-json-browser/pkg/store"
	"github.com/NVIDIA/cdda-json-browser/pkg/translate"
)

// Browser is the entry point front ends use. It owns the current Store and
// swaps it atomically on reload, so queries running during a reload see
// either the old or the new snapshot.
type Browser struct {
	registry   *category.Registry
	loader     *store.Loader
	translator *translate.Translator

	mu    sync.RWMutex
	store *store.Store
	root  string
}

// Option is a functional option for configuring Browser instances.
type Option func(*Browser)

// WithStore starts the browser with an already built store.
func WithStore(st *store.Store) Option {
	return func(b *Browser) {
		b.store = st
		if st != nil {
			b.root = st.Report().Root
		}
	}
}

// New creates a browser driven by the given configuration tables.
func New(tables *config.Tables, opts ...Option) *Browser {
	registry := category.NewRegistry(tables.Types)
	b := &Browser{
		registry:   registry,
		loader:     store.NewLoader(registry),
		translator: translate.NewTranslator(tables),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load reads dir into a new store and makes it current. On failure the
// previous store stays in place.
func (b *Browser) Load(ctx context.Context, dir string) (*store.Report, error) {
	st, err := b.loader.Load(ctx, dir)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	prev := b.store
	b.store = st
	b.root = dir
	b.mu.Unlock()

	if prev != nil {
		slog.Info("store replaced", "previous", prev.ID(), "current", st.ID())
	}
	return st.Report(), nil
}

// Reload loads the directory of the current store again.
func (b *Browser) Reload(ctx context.Context) (*store.Report, error) {
	b.mu.RLock()
	root := b.root
	b.mu.RUnlock()

	if root == "" {
		return nil, cdderrors.New(cdderrors.ErrCodeInvalidRequest, "no data directory loaded")
	}
	return b.Load(ctx, root)
}

// Store returns the current snapshot, or nil before the first load.
func (b *Browser) Store() *store.Store {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store
}

// Root returns the directory the current store was loaded from.
func (b *Browser) Root() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.root
}

// Categories lists the known categories in registry order.
func (b *Browser) Categories() []category.Category {
	return b.registry.Categories()
}

// Category validates a user supplied category name.
func (b *Browser) Category(name string) (category.Category, error) {
	return b.registry.Validate(name)
}

// Search parses free text, lower-cased, and runs it against a category.
func (b *Browser) Search(text string, c category.Category) (*search.Result, error) {
	return b.Lookup(search.ParseQuery(cases.Lower(language.Und).String(text)), c)
}

// Lookup runs a prepared query against a category.
func (b *Browser) Lookup(q search.Query, c category.Category) (*search.Result, error) {
	st, err := b.current()
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(st).Search(q, c)
}

// Translate prepares a record for display. Recipes are expanded first; when
// expansion fails the unexpanded record is still translated and returned
// together with the error.
func (b *Browser) Translate(rec *store.Record, c category.Category) (*store.Record, error) {
	if c != category.Recipe {
		return b.translator.Translate(rec, c), nil
	}

	st, err := b.current()
	if err != nil {
		return nil, err
	}

	expanded, expandErr := crafting.NewExpander(st).Expand(rec)
	if expandErr != nil {
		slog.Warn("recipe shown unexpanded", "error", expandErr)
	}
	return b.translator.Translate(expanded, c), expandErr
}

// Label returns the display label of a raw field.
func (b *Browser) Label(c category.Category, field string) string {
	return b.translator.Label(c, field)
}

// Craft finds the recipes producing the item with exactly the given name.
// The item name is matched case-insensitively. An unknown item is a
// NOT_FOUND error whose context lists close item names.
func (b *Browser) Craft(itemName string) (*search.Result, error) {
	name := cases.Lower(language.Und).String(itemName)

	item, err := b.Lookup(search.NameQuery(name), category.Item)
	if err != nil {
		return nil, err
	}
	if !item.Definitive() {
		names := item.Names()
		if len(names) > defaults.MaxSuggestions {
			names = names[:defaults.MaxSuggestions]
		}
		return nil, cdderrors.NewWithContext(cdderrors.ErrCodeNotFound,
			fmt.Sprintf("no item named %q", name),
			map[string]any{"item": name, "suggestions": names})
	}

	id, ok := item.Record.ID()
	if !ok {
		return nil, cdderrors.NewWithContext(cdderrors.ErrCodeNotFound,
			fmt.Sprintf("item %q has no id", name),
			map[string]any{"item": name})
	}

	return b.Lookup(search.NewQuery(search.Attribute{Key: crafting.FieldResult, Value: id}), category.Recipe)
}

func (b *Browser) current() (*store.Store, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.store == nil {
		return nil, cdderrors.New(cdderrors.ErrCodeInvalidRequest, "no data directory loaded")
	}
	return b.store, nil
}
