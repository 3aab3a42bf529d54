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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

const textField = `{"type": "text", "fields": {"keywords": {"type": "keyword"}}}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("EMB_RULES", "")
	t.Setenv("EMB_OUTPUT", "")
	return newRootCmd().Run(context.Background(), append([]string{name}, args...))
}

func TestInferCmd(t *testing.T) {
	dir := t.TempDir()
	jsonRecord := writeFile(t, dir, "order.json",
		`{"id": 1, "total": 9.5, "customer": {"name": "x", "vip": false}, "tags": ["a"], "at": "2024-05-01 10:00:00"}`)
	yamlRecord := writeFile(t, dir, "order.yaml", "id: 1\nitems:\n  - sku: a\n    qty: 2\n")
	noExt := writeFile(t, dir, "order.txt", "id: 1\n")
	rules := writeFile(t, dir, "rules.yaml", "rules:\n  - type: string\n    descriptor:\n      type: keyword\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "json record",
			args: []string{"--input", jsonRecord},
			want: `{
				"id": {"type": "long"},
				"total": {"type": "float"},
				"customer": {"properties": {"name": ` + textField + `, "vip": {"type": "boolean"}}},
				"tags": ` + textField + `,
				"at": ` + textField + `
			}`,
		},
		{
			name: "yaml record",
			args: []string{"-i", yamlRecord},
			want: `{"id": {"type": "long"}, "items": {"properties": {"sku": ` + textField + `, "qty": {"type": "long"}}}}`,
		},
		{
			name: "format override",
			args: []string{"-i", noExt, "--format", "yaml"},
			want: `{"id": {"type": "long"}}`,
		},
		{
			name: "detect dates with rules and index body",
			args: []string{"-i", jsonRecord, "--detect-dates", "--rules", rules, "--index-body"},
			want: `{"mappings": {"properties": {
				"id": {"type": "long"},
				"total": {"type": "float"},
				"customer": {"properties": {"name": {"type": "keyword"}, "vip": {"type": "boolean"}}},
				"tags": {"type": "keyword"},
				"at": {"type": "date", "format": "yyyy-MM-dd HH:mm:ss"}
			}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "mapping.json")
			require.NoError(t, run(t, append([]string{"infer", "--output", out}, tt.args...)...))

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
			assert.Equal(t, byte('\n'), got[len(got)-1])
		})
	}
}

func TestInferCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.json", `[{"id": 1}]`)
	record := writeFile(t, dir, "ok.json", `{"id": 1}`)
	badRules := writeFile(t, dir, "rules.yaml", "rules:\n  - type: decimal\n    descriptor:\n      type: x\n")

	t.Run("missing input", func(t *testing.T) {
		require.Error(t, run(t, "infer"))
	})

	t.Run("non map record", func(t *testing.T) {
		err := run(t, "infer", "-i", list, "-o", filepath.Join(t.TempDir(), "m.json"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTypeMismatch))
	})

	t.Run("unknown format", func(t *testing.T) {
		err := run(t, "infer", "-i", record, "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown input format")
	})

	t.Run("invalid rules", func(t *testing.T) {
		err := run(t, "infer", "-i", record, "--rules", badRules)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
	})

	t.Run("missing record file", func(t *testing.T) {
		require.Error(t, run(t, "infer", "-i", filepath.Join(dir, "nope.json")))
	})
}

func TestTypesCmd(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.json", `{"rules": [{"type": "bool", "descriptor": {"type": "keyword"}}]}`)
	out := filepath.Join(dir, "types.json")

	require.NoError(t, run(t, "types", "--rules", rules, "--output", out))

	content, err := os.ReadFile(out)
	require.NoError(t, err)

	var got []struct {
		Type       string         `json:"type"`
		Descriptor map[string]any `json:"descriptor"`
	}
	require.NoError(t, json.Unmarshal(content, &got))
	require.Len(t, got, 7)

	assert.Equal(t, "boolean", got[0].Type)
	assert.Equal(t, "keyword", got[0].Descriptor["type"])
	assert.Equal(t, "integer", got[1].Type)
	assert.Equal(t, "null", got[6].Type)
}

func TestParseInputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    serializer.Format
		wantErr bool
	}{
		{"empty means detect", "", "", false},
		{"json", "json", serializer.FormatJSON, false},
		{"yaml", "yaml", serializer.FormatYAML, false},
		{"table is not an input format", "table", "", true},
		{"unknown", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseInputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, name, cmd.Name)

	names := make([]string, 0, len(cmd.Commands))
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"infer", "types"}, names)

	require.NoError(t, run(t, "--debug", "types", "-o", filepath.Join(t.TempDir(), "t.json")))
}
