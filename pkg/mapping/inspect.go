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
	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
)

// FindErrors returns one ErrCodeUnknownType error for every error marker in m,
// ordered by dotted field path.
func FindErrors(m Mapping) []*apperrors.StructuredError {
	var out []*apperrors.StructuredError
	collectErrors(m, "", &out)
	return out
}

func collectErrors(m map[string]any, prefix string, out *[]*apperrors.StructuredError) {
	for _, k := range sortedKeys(m) {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		d := asMap(m[k])
		if d == nil {
			continue
		}
		if msg, ok := d[ErrorKey]; ok {
			s, _ := msg.(string)
			*out = append(*out, apperrors.NewWithContext(apperrors.ErrCodeUnknownType, s,
				map[string]any{"path": path}))
			continue
		}
		if props := asMap(d[PropertiesKey]); props != nil {
			collectErrors(props, path, out)
		}
	}
}

func asMap(v any) map[string]any {
	switch val := v.(type) {
	case Descriptor:
		return val
	case Mapping:
		return val
	case map[string]any:
		return val
	default:
		return nil
	}
}
