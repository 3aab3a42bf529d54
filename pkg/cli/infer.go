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
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/config"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/mapping"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/oci"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/record"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/sink"
)

func inferCmd() *cli.Command {
	return &cli.Command{
		Name:                  "infer",
		EnableShellCompletion: true,
		Usage:                 "Infer a mapping from an example record",
		Description: `Read a single example record and write the inferred mapping as JSON.

The record is a JSON or YAML object read from a file, an HTTP(S) URL or
stdin ("-"). Nested objects become "properties" blocks and lists are typed
by their first element.

# Examples

  emb infer --input order.json
  cat order.yaml | emb infer --input - --format yaml --output mapping.json
  emb infer -i order.json --index-body --output cm://search/orders-mapping
  emb infer -i order.json --output oci://ghcr.io/acme/mappings/orders:v1`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    `Path or URL of the example record ("-" for stdin)`,
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("Input format override (supported values: %v)", serializer.SupportedFormats()),
			},
			&cli.BoolFlag{
				Name:  "detect-dates",
				Usage: `Map strings like "2006-01-02 15:04:05" or RFC 3339 to the date type`,
			},
			&cli.BoolFlag{
				Name:  "index-body",
				Usage: `Wrap the mapping as {"mappings": {"properties": ...}}`,
			},
			rulesFlag(),
			outputFlag(),
			kubeconfigFlag(),
			plainHTTPFlag(),
			insecureTLSFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inFormat, err := parseInputFormat(cmd)
			if err != nil {
				return err
			}

			rules, err := config.LoadRules(ctx, cmd.String("rules"))
			if err != nil {
				return err
			}

			var opts []record.Option
			if inFormat != "" {
				opts = append(opts, record.WithFormat(inFormat))
			}
			if cmd.Bool("detect-dates") {
				opts = append(opts, record.WithDateDetection())
			}

			rec, err := record.Load(ctx, cmd.String("input"), opts...)
			if err != nil {
				return err
			}

			inf := mapping.New(mapping.WithRules(rules...))
			m, err := inf.Infer(rec)
			if err != nil {
				return err
			}

			for _, e := range mapping.FindErrors(m) {
				slog.Warn("unresolved field", "path", e.Context["path"], "error", e.Message)
			}

			out, err := newSink(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := sink.Close(out); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()

			if cmd.Bool("index-body") {
				return out.Serialize(ctx, mapping.IndexBody(m))
			}
			return inf.Export(ctx, out)
		},
	}
}

func newSink(cmd *cli.Command) (serializer.Serializer, error) {
	return sink.New(cmd.String("output"),
		sink.WithKubeconfig(cmd.String("kubeconfig")),
		sink.WithVersion(version),
		sink.WithPushOptions(oci.PushOptions{
			PlainHTTP:   cmd.Bool("plain-http"),
			InsecureTLS: cmd.Bool("insecure-tls"),
		}),
		sink.WithObjectStore(config.ObjectStore()),
	)
}
