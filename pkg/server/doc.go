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

// Package server provides the HTTP server the mapping API runs on.
//
// It owns the cross-cutting concerns and leaves routes to the caller:
//
//   - request IDs (X-Request-Id, UUID) echoed in error responses
//   - token bucket rate limiting (golang.org/x/time/rate)
//   - panic recovery
//   - Prometheus metrics on /metrics
//   - liveness (/health) and readiness (/ready) probes
//   - graceful shutdown on SIGINT and SIGTERM
//
// Usage:
//
//	s := server.New(
//	    server.WithName("embd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/mappings": h.HandleMappings,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Errors
//
// All errors share one JSON shape:
//
//	{
//	  "code": "TYPE_MISMATCH",
//	  "message": "type mismatch, expected `map[string]any` got `[]interface {}`",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T12:00:00Z",
//	  "retryable": false
//	}
//
// Structured errors from pkg/errors are mapped to HTTP statuses by
// HTTPStatusFromCode.
package server
