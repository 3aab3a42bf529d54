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

// Package objectstore writes mappings to S3-compatible object storage.
//
// Destinations are addressed as s3://bucket/key. The bucket is created on
// first write when it does not exist.
//
//	store, err := objectstore.New(objectstore.Config{
//		Endpoint:  "minio:9000",
//		AccessKey: "minio",
//		SecretKey: "minio123",
//	})
//	w, err := store.Writer("s3://mappings/orders.json")
//	err = w.Serialize(ctx, m)
package objectstore
