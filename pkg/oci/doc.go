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

// Package oci publishes mappings as OCI artifacts using ORAS.
//
// A mapping is stored as a single JSON layer under an OCI 1.1 manifest whose
// artifact type is ArtifactType. Destinations use the oci:// scheme:
//
//	w, err := oci.NewWriter("oci://ghcr.io/acme/mappings/orders:v1")
//	if err != nil {
//	    return err
//	}
//	err = w.Serialize(ctx, m)
//
// When the tag is omitted DefaultTag is used.
//
// # Authentication
//
// Credentials are loaded from the standard Docker configuration
// (~/.docker/config.json) through the ORAS credentials package.
//
// # Local targets
//
// PushTo accepts any oras.Target, so a mapping can be written into an OCI
// image layout on disk (content/oci) without a registry.
package oci
