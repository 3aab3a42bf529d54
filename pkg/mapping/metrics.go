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

package mapping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	conversions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emb_mapping_conversions_total",
			Help: "Total number of example records converted into mappings",
		},
	)

	conversionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emb_mapping_conversion_duration_seconds",
			Help:    "Duration of mapping inference in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	typeMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emb_mapping_type_mismatch_total",
			Help: "Total number of records rejected because they were not maps",
		},
	)

	unknownTypes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emb_mapping_unknown_types_total",
			Help: "Total number of values no rule matched, by Go type",
		},
		[]string{"type"},
	)
)
