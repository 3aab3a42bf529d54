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

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"record.json", FormatJSON},
		{"RECORD.JSON", FormatJSON},
		{"record.yaml", FormatYAML},
		{"record.yml", FormatYAML},
		{"/tmp/dir.yaml/record.json", FormatJSON},
		{"https://example.com/r.yaml?token=abc", FormatYAML},
		{"record.txt", FormatJSON},
		{"-", FormatJSON},
		{"", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader_UnknownFormat(t *testing.T) {
	if _, err := NewReader(Format("xml"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestReader_DeserializeJSON_KeepsNumbers(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"count": 3, "price": 3.5, "tags": [1]}`))
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, r.Deserialize(&v))

	assert.Equal(t, json.Number("3"), v["count"], spew.Sdump(v))
	assert.Equal(t, json.Number("3.5"), v["price"])
	assert.Equal(t, []any{json.Number("1")}, v["tags"])
}

func TestReader_DeserializeYAML(t *testing.T) {
	input := `
name: John
age: 25
score: 1.5
active: true
tags: [a, b]
address:
  city: Rome
`
	r, err := NewReader(FormatYAML, strings.NewReader(input))
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, r.Deserialize(&v))

	assert.Equal(t, "John", v["name"])
	assert.Equal(t, 25, v["age"])
	assert.Equal(t, 1.5, v["score"])
	assert.Equal(t, true, v["active"])
	assert.Equal(t, []any{"a", "b"}, v["tags"])
	assert.Equal(t, map[string]any{"city": "Rome"}, v["address"])
}

func TestReader_DeserializeErrors(t *testing.T) {
	var nilReader *Reader
	assert.Error(t, nilReader.Deserialize(&map[string]any{}))
	assert.NoError(t, nilReader.Close())

	r := &Reader{format: FormatJSON}
	assert.Error(t, r.Deserialize(&map[string]any{}))

	r, err := NewReader(FormatJSON, strings.NewReader(`{broken`))
	require.NoError(t, err)
	assert.Error(t, r.Deserialize(&map[string]any{}))
}

func TestNewFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o600))

	r, err := NewFileReader(context.Background(), FormatJSON, path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, r.Format())

	var v map[string]any
	require.NoError(t, r.Deserialize(&v))
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "close must be idempotent")

	_, err = NewFileReader(context.Background(), FormatJSON, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = NewFileReader(context.Background(), Format("xml"), path)
	assert.Error(t, err)
}

func TestNewFileReader_Stdin(t *testing.T) {
	r, err := NewFileReader(context.Background(), FormatJSON, StdinPath)
	require.NoError(t, err)
	assert.Same(t, os.Stdin, r.input)
	assert.NoError(t, r.Close())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "record.json")
	yamlPath := filepath.Join(dir, "record.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name":"x","n":2}`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: x\nn: 2\n"), 0o600))

	ctx := context.Background()

	got, err := FromFile[map[string]any](ctx, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), (*got)["n"])

	got, err = FromFile[map[string]any](ctx, yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, (*got)["n"])

	_, err = FromFile[map[string]any](ctx, filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func TestFromFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("name: remote\n"))
	}))
	defer srv.Close()

	got, err := FromFile[map[string]any](context.Background(), srv.URL+"/record.yaml")
	require.NoError(t, err)
	assert.Equal(t, "remote", (*got)["name"])
}

func TestFromFileWithFormat_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o600))

	got, err := FromFileWithFormat[map[string]any](context.Background(), path, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "x", (*got)["name"])
}

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "yaml"}, SupportedFormats())
	assert.False(t, FormatYAML.IsUnknown())
	assert.True(t, Format("table").IsUnknown())
}
