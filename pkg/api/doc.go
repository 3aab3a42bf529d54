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

// Package api exposes mapping inference over HTTP.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/pierluigi-failla/elastic-mapping-builder/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /v1/mappings - infer a mapping from the example record in the body
//
// System endpoints are provided by pkg/server: /health, /ready and /metrics.
//
// The body is JSON unless Content-Type contains "yaml". Two boolean query
// parameters adjust the output: dates=true detects date strings and
// index_body=true wraps the result as {"mappings": {"properties": ...}}.
//
// Example:
//
//	curl -X POST 'http://localhost:8080/v1/mappings?index_body=true' \
//	  -H "Content-Type: application/json" \
//	  -d '{"name": "x", "tags": ["a"], "stats": {"count": 3}}'
//
// Rendered responses are cached in memory keyed by body and flags; the
// X-Cache header reports HIT or MISS.
//
// # Configuration
//
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: logging level (debug, info, warn, error)
//   - EMB_RULES: optional rules file applied ahead of the built-in rules
//
// Variables may also come from a .env file in the working directory.
package api
