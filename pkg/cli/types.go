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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/config"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/mapping"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/sink"
)

func typesCmd() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "Print the effective rule table",
		Description: `Print the rules in evaluation order as JSON: entries from --rules
first, then the built-in defaults.`,
		Flags: []cli.Flag{
			rulesFlag(),
			outputFlag(),
			kubeconfigFlag(),
			plainHTTPFlag(),
			insecureTLSFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rules, err := config.LoadRules(ctx, cmd.String("rules"))
			if err != nil {
				return err
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

			return out.Serialize(ctx, mapping.New(mapping.WithRules(rules...)).Rules())
		},
	}
}
