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
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds runtime settings read from the environment.
// Command-line flags take precedence over these values.
type Settings struct {
	DataDir       string        `env:"CDDAB_DATA_DIR"`
	ConfigDir     string        `env:"CDDAB_CONFIG_DIR"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	Format        string        `env:"CDDAB_FORMAT" envDefault:"text"`
	WatchDebounce time.Duration `env:"CDDAB_WATCH_DEBOUNCE" envDefault:"500ms"`
	ReloadEvery   time.Duration `env:"CDDAB_RELOAD_MIN_INTERVAL" envDefault:"2s"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Provider builds the table provider for these settings: embedded tables,
// overlaid by ConfigDir when it is set.
func (s *Settings) Provider() (DataProvider, error) {
	embedded := DefaultDataProvider()
	if s.ConfigDir == "" {
		return embedded, nil
	}
	return NewLayeredDataProvider(embedded, LayeredProviderConfig{ExternalDir: s.ConfigDir})
}
