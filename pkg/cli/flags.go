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

package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/config"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Destination for the mapping (default: stdout).
	Supports: file paths, ConfigMap URIs (cm://namespace/name),
	OCI references (oci://registry/repo:tag) and objects (s3://bucket/key).`,
		Sources: cli.EnvVars(config.EnvOutput),
	}
}

func rulesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "rules",
		Aliases: []string{"r"},
		Usage:   "Rules file (JSON or YAML) applied ahead of the built-in rules",
		Sources: cli.EnvVars(config.EnvRules),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig used for cm:// destinations (default: KUBECONFIG or ~/.kube/config)",
	}
}

func plainHTTPFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "plain-http",
		Usage: "Use HTTP instead of HTTPS for oci:// destinations",
	}
}

func insecureTLSFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "insecure-tls",
		Usage: "Skip TLS verification for oci:// destinations",
	}
}

// parseInputFormat returns the --format value, or "" to detect it from the
// input path.
func parseInputFormat(cmd *cli.Command) (serializer.Format, error) {
	raw := cmd.String("format")
	if raw == "" {
		return "", nil
	}
	f := serializer.Format(raw)
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown input format: %q, supported values: %v", raw, serializer.SupportedFormats())
	}
	return f, nil
}
