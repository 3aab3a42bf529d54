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

// Package serializer reads example records and writes mappings.
//
// Output is always indented JSON, matching what a search engine expects
// as a mapping document. Input may be JSON or YAML; the format is picked
// from the file extension unless set explicitly.
//
// Writing to stdout:
//
//	w := serializer.NewStdoutWriter()
//	if err := w.Serialize(ctx, m); err != nil {
//		return err
//	}
//
// Writing to a file:
//
//	w, err := serializer.NewFileWriter("mapping.json")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
// Writing to a Kubernetes ConfigMap:
//
//	w := serializer.NewConfigMapWriter("search", "orders-mapping")
//	err := w.Serialize(ctx, m)
//
// Reading a record from a file, URL or stdin ("-"):
//
//	rec, err := serializer.FromFile[map[string]any](ctx, "record.yaml")
//
// JSON numbers are decoded as json.Number so integers and floats can be told
// apart by the caller.
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
