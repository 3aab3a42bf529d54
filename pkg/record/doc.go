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

// Package record loads example records and normalizes decoded values into
// the primitive types the mapping inferencer classifies.
//
// JSON numbers become int64 when integral and float64 otherwise. YAML maps
// with non-string keys are converted to map[string]any. With date detection
// enabled, strings matching one of the configured layouts become time.Time.
//
//	rec, err := record.Load(ctx, "order.yaml", record.WithDateDetection())
//	if err != nil {
//		return err
//	}
//	m, err := mapping.New().Infer(rec)
package record
