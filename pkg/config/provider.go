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

package config

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	cdderrors "github.com/NVIDIA/cdda-json-browser/pkg/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	// DefaultMaxFileSize is the default maximum table file size (1MB).
	DefaultMaxFileSize = 1024 * 1024

	sourceEmbedded = "embedded"
	sourceExternal = "external"
)

// DataProvider abstracts access to configuration table files.
// This allows layering an external directory over embedded data.
type DataProvider interface {
	// ReadFile reads a table file by name (relative to the data directory).
	ReadFile(name string) ([]byte, error)

	// Source returns a description of where the file comes from (for debugging).
	Source(name string) string
}

// EmbeddedDataProvider serves the tables compiled into the binary.
type EmbeddedDataProvider struct {
	fs     fs.FS
	prefix string
}

// NewEmbeddedDataProvider creates a provider from an embedded filesystem.
func NewEmbeddedDataProvider(efs fs.FS, prefix string) *EmbeddedDataProvider {
	return &EmbeddedDataProvider{
		fs:     efs,
		prefix: prefix,
	}
}

// DefaultDataProvider returns the provider over the built-in tables.
func DefaultDataProvider() *EmbeddedDataProvider {
	return NewEmbeddedDataProvider(dataFS, "data")
}

// ReadFile reads a file from the embedded filesystem.
func (p *EmbeddedDataProvider) ReadFile(name string) ([]byte, error) {
	fullPath := p.prefix + "/" + name
	slog.Debug("reading table from embedded provider", "name", name, "fullPath", fullPath)
	return fs.ReadFile(p.fs, fullPath)
}

// Source returns "embedded" for all files.
func (p *EmbeddedDataProvider) Source(string) string {
	return sourceEmbedded
}

// LayeredProviderConfig configures the layered data provider.
type LayeredProviderConfig struct {
	// ExternalDir is the directory whose table files replace embedded ones.
	ExternalDir string

	// MaxFileSize is the maximum allowed file size in bytes (default: 1MB).
	MaxFileSize int64
}

// LayeredDataProvider overlays an external directory on top of embedded tables.
// A table present in the external directory completely replaces the embedded one.
type LayeredDataProvider struct {
	embedded      *EmbeddedDataProvider
	externalDir   string
	externalFiles map[string]bool
}

// NewLayeredDataProvider creates a provider that layers external tables over embedded.
// Returns an error if the external directory is missing, is not a directory,
// or holds a table file larger than the configured limit.
func NewLayeredDataProvider(embedded *EmbeddedDataProvider, cfg LayeredProviderConfig) (*LayeredDataProvider, error) {
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}

	info, err := os.Stat(cfg.ExternalDir)
	if err != nil {
		return nil, cdderrors.Wrap(cdderrors.ErrCodeConfig,
			fmt.Sprintf("external config directory not found: %s", cfg.ExternalDir), err)
	}
	if !info.IsDir() {
		return nil, cdderrors.New(cdderrors.ErrCodeConfig,
			fmt.Sprintf("external config path is not a directory: %s", cfg.ExternalDir))
	}

	entries, err := os.ReadDir(cfg.ExternalDir)
	if err != nil {
		return nil, cdderrors.Wrap(cdderrors.ErrCodeConfig,
			fmt.Sprintf("failed to list external config directory: %s", cfg.ExternalDir), err)
	}

	externalFiles := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !isTableFile(entry.Name()) {
			continue
		}
		fi, infoErr := entry.Info()
		if infoErr != nil {
			return nil, fmt.Errorf("failed to get file info: %w", infoErr)
		}
		if fi.Size() > cfg.MaxFileSize {
			return nil, cdderrors.New(cdderrors.ErrCodeConfig,
				fmt.Sprintf("table too large (%d bytes, max %d): %s", fi.Size(), cfg.MaxFileSize, entry.Name()))
		}
		externalFiles[entry.Name()] = true
		slog.Debug("external table registered", "name", entry.Name(), "size", fi.Size())
	}

	slog.Info("layered config provider initialized",
		"external_dir", cfg.ExternalDir,
		"external_files", len(externalFiles))

	return &LayeredDataProvider{
		embedded:      embedded,
		externalDir:   cfg.ExternalDir,
		externalFiles: externalFiles,
	}, nil
}

// ReadFile reads a table, checking the external directory first.
func (p *LayeredDataProvider) ReadFile(name string) ([]byte, error) {
	if p.externalFiles[name] {
		data, err := os.ReadFile(filepath.Join(p.externalDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read external table %s: %w", name, err)
		}
		slog.Debug("read table from external directory", "name", name)
		return data, nil
	}
	return p.embedded.ReadFile(name)
}

// Source returns "external" or "embedded" depending on where the table comes from.
func (p *LayeredDataProvider) Source(name string) string {
	if p.externalFiles[name] {
		return sourceExternal
	}
	return sourceEmbedded
}

func isTableFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
