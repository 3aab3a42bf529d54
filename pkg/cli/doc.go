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

// Package cli implements the emb command line.
//
// # Commands
//
// infer - Infer a mapping from an example record:
//
//	emb infer --input order.json [--rules rules.yaml] [--output mapping.json]
//
// The record is read from a file, an HTTP(S) URL or stdin ("-"), as JSON or
// YAML. --detect-dates maps date-like strings to the date type and
// --index-body wraps the result into an index creation body.
//
// types - Print the effective rule table:
//
//	emb types [--rules rules.yaml]
//
// # Global Flags
//
//	--log-level    Logging level: debug, info, warn, error (default: info)
//	--debug        Same as --log-level debug
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Destinations
//
// --output accepts a file path, cm://namespace/name, oci://registry/repo:tag
// or s3://bucket/key. Output is always indented JSON.
//
// # Environment Variables
//
//	LOG_LEVEL          Logging level
//	EMB_RULES          Default for --rules
//	EMB_OUTPUT         Default for --output
//	EMB_S3_ENDPOINT    S3 endpoint for s3:// destinations
//	EMB_S3_ACCESS_KEY  S3 access key
//	EMB_S3_SECRET_KEY  S3 secret key
//	EMB_S3_REGION      S3 region (default: us-east-1)
//	EMB_S3_USE_SSL     Use TLS for S3 (default: true)
//	KUBECONFIG         Kubeconfig for cm:// destinations
//
// Variables may also be set in a .env file in the working directory.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/pierluigi-failla/elastic-mapping-builder/pkg/cli.version=1.0.0'"
package cli
