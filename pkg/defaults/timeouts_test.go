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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Load timeouts
		{"LoadTimeout", LoadTimeout, 30 * time.Second, 10 * time.Minute},
		{"ReloadTimeout", ReloadTimeout, 10 * time.Second, 5 * time.Minute},

		// Watch timings
		{"WatchDebounce", WatchDebounce, 100 * time.Millisecond, 5 * time.Second},
		{"ReloadMinInterval", ReloadMinInterval, 500 * time.Millisecond, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestReloadTimeoutLessThanLoad(t *testing.T) {
	if ReloadTimeout >= LoadTimeout {
		t.Errorf("ReloadTimeout (%v) should be less than LoadTimeout (%v)",
			ReloadTimeout, LoadTimeout)
	}
}

func TestWatchTimingRelationships(t *testing.T) {
	// A burst must settle before the next reload is allowed
	if WatchDebounce > ReloadMinInterval {
		t.Errorf("WatchDebounce (%v) should not exceed ReloadMinInterval (%v)",
			WatchDebounce, ReloadMinInterval)
	}
}

func TestMaxSuggestions(t *testing.T) {
	if MaxSuggestions < 1 || MaxSuggestions > 20 {
		t.Errorf("MaxSuggestions (%d) out of range", MaxSuggestions)
	}
}
