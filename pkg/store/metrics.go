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

package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	fileOutcomeLoaded  = "loaded"
	fileOutcomeFailed  = "failed"
	fileOutcomeSkipped = "skipped"
)

var (
	loadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cddab_store_load_duration_seconds",
			Help:    "Duration of a full data directory load in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	filesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cddab_store_files_total",
			Help: "Data files processed, by outcome (loaded, failed, skipped)",
		},
		[]string{"outcome"},
	)

	recordsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cddab_store_records_total",
			Help: "Records classified and indexed, by category",
		},
		[]string{"category"},
	)
)
