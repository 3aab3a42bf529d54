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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/config"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/logging"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/server"
)

const (
	name           = "embd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/pierluigi-failla/elastic-mapping-builder/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	if err := config.LoadEnv(); err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	routes, err := Routes(ctx, os.Getenv(config.EnvRules))
	if err != nil {
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// Routes builds the application routes. rulesPath is an optional rules file.
func Routes(ctx context.Context, rulesPath string) (map[string]http.HandlerFunc, error) {
	rules, err := config.LoadRules(ctx, rulesPath)
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		slog.Info("loaded custom rules", "path", rulesPath, "count", len(rules))
	}

	h, err := NewHandler(rules, 0)
	if err != nil {
		return nil, err
	}

	return map[string]http.HandlerFunc{
		MappingsPath: h.HandleMappings,
	}, nil
}
