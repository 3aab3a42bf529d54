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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const jsonIndent = "  "

// Writer writes values as indented JSON.
// Close must be called to release file handles when using NewFileWriter.
type Writer struct {
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer for the given output.
// If output is nil, os.Stdout will be used.
func NewWriter(output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		output: output,
	}
}

// NewStdoutWriter creates a new Writer that outputs to stdout.
func NewStdoutWriter() *Writer {
	return &Writer{
		output: os.Stdout,
	}
}

// NewFileWriter creates (or truncates) the file at path and returns a Writer for it.
// Remember to call Close() on the returned Writer to ensure the file is properly closed.
func NewFileWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return &Writer{
		output: file,
		closer: file,
	}, nil
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer != nil {
		err := w.closer.Close()
		w.closer = nil
		return err
	}
	return nil
}

// Serialize writes v as indented JSON.
// Context is provided for consistency with the Serializer interface,
// but is not actively used for file/stdout writes.
func (w *Writer) Serialize(_ context.Context, v any) error {
	content, err := Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(content); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// Marshal encodes v as indented JSON followed by a newline.
// HTML characters are not escaped so error markers stay readable.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", jsonIndent)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return buf.Bytes(), nil
}
