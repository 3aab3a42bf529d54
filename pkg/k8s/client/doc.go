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

// Package client builds the Kubernetes client used to publish mappings
// into ConfigMaps.
//
// Configuration is discovered in this order:
//   - the explicit kubeconfig path, when given
//   - the KUBECONFIG environment variable
//   - ~/.kube/config, when it exists
//   - the in-cluster service account
//
// Default caches the auto-discovered client for the life of the process:
//
//	cs, err := client.Default()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// New bypasses the cache and is meant for explicit kubeconfig paths.
package client
