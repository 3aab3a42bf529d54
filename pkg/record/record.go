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

package record

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

// DefaultDateLayouts are used by WithDateDetection when no layout is given.
var DefaultDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

type options struct {
	format      serializer.Format
	dateLayouts []string
}

// Option configures loading and normalization.
type Option func(*options)

// WithFormat forces the input format instead of detecting it from the path.
func WithFormat(f serializer.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithDateDetection turns strings matching any of layouts into time.Time.
// DefaultDateLayouts are used when layouts is empty.
func WithDateDetection(layouts ...string) Option {
	return func(o *options) {
		if len(layouts) == 0 {
			layouts = DefaultDateLayouts
		}
		o.dateLayouts = append([]string(nil), layouts...)
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads a record from a file path, an HTTP(S) URL or stdin ("-").
func Load(ctx context.Context, path string, opts ...Option) (any, error) {
	o := newOptions(opts)
	format := o.format
	if format == "" {
		format = serializer.FormatFromPath(path)
	}

	r, err := serializer.NewFileReader(ctx, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record %q: %w", path, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close record reader", "path", path, "error", closeErr)
		}
	}()

	v, err := decode(r, o)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %q: %w", path, err)
	}
	return v, nil
}

// Decode reads a single record from r.
func Decode(r io.Reader, format serializer.Format, opts ...Option) (any, error) {
	o := newOptions(opts)
	if o.format != "" {
		format = o.format
	}
	sr, err := serializer.NewReader(format, r)
	if err != nil {
		return nil, err
	}
	return decode(sr, o)
}

func decode(r *serializer.Reader, o *options) (any, error) {
	var v any
	if err := r.Deserialize(&v); err != nil {
		return nil, err
	}
	return normalize(v, o), nil
}

// Normalize converts decoded values in place where possible and returns the result.
func Normalize(v any, opts ...Option) any {
	return normalize(v, newOptions(opts))
}

func normalize(v any, o *options) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item, o)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item, o)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalize(item, o)
		}
		return val
	case json.Number:
		return number(val)
	case string:
		if t, ok := parseDate(val, o.dateLayouts); ok {
			return t
		}
		return val
	default:
		return v
	}
}

func number(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	f, err := n.Float64()
	if err != nil {
		return s
	}
	return f
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
