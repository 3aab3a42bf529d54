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

package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
)

// Serializer writes a finished mapping to a destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Option configures an Inferencer.
type Option func(*Inferencer)

// WithRules places rules ahead of the built-in defaults.
// Rules are evaluated in the order given.
func WithRules(rules ...Rule) Option {
	return func(i *Inferencer) {
		i.overrides = append(i.overrides, rules...)
	}
}

// Inferencer derives a Mapping from example records.
// It holds the result of the last successful Infer call.
type Inferencer struct {
	overrides []Rule
	rules     []Rule
	result    Mapping
	computed  bool
}

// New creates an Inferencer whose rule list is the override rules followed by
// a copy of DefaultRules. The rule list does not change afterwards.
func New(opts ...Option) *Inferencer {
	i := &Inferencer{}
	for _, opt := range opts {
		opt(i)
	}

	rules := make([]Rule, 0, len(i.overrides)+len(TypeTags))
	for _, r := range i.overrides {
		if r.Match == nil && !isBuiltin(r.Type) {
			slog.Warn("rule has no matcher and an unknown type tag, it will never match",
				"type", r.Type)
		}
		rules = append(rules, Rule{
			Type:       r.Type,
			Match:      r.Match,
			Descriptor: Descriptor(cloneMap(r.Descriptor)),
		})
	}
	i.rules = append(rules, DefaultRules()...)
	i.overrides = nil
	i.result = Mapping{}

	return i
}

func isBuiltin(t TypeTag) bool {
	for _, b := range TypeTags {
		if b == t {
			return true
		}
	}
	return false
}

// Rules returns a copy of the effective rule list in evaluation order.
func (i *Inferencer) Rules() []Rule {
	out := make([]Rule, len(i.rules))
	for idx, r := range i.rules {
		out[idx] = Rule{
			Type:       r.Type,
			Match:      r.Match,
			Descriptor: Descriptor(cloneMap(r.Descriptor)),
		}
	}
	return out
}

// Classify returns the descriptor of the first rule matching v.
// A value no rule matches yields an error marker descriptor.
func (i *Inferencer) Classify(v any) Descriptor {
	for _, r := range i.rules {
		if r.Matches(v) {
			return Descriptor(cloneMap(r.Descriptor))
		}
	}

	msg := fmt.Sprintf("unknown type: %T for value: %v", v, v)
	slog.Warn("unknown type", "type", fmt.Sprintf("%T", v), "value", fmt.Sprintf("%v", v))
	unknownTypes.WithLabelValues(fmt.Sprintf("%T", v)).Inc()

	return Descriptor{ErrorKey: msg}
}

// Infer builds the mapping for record, stores it as the current result and
// returns it. record must be a map[string]any; anything else fails with
// ErrCodeTypeMismatch and leaves the stored result untouched.
func (i *Inferencer) Infer(record any) (Mapping, error) {
	dct, ok := record.(map[string]any)
	if !ok {
		typeMismatches.Inc()
		got := fmt.Sprintf("%T", record)
		return nil, apperrors.NewWithContext(apperrors.ErrCodeTypeMismatch,
			fmt.Sprintf("type mismatch, expected `map[string]any` got `%s`", got),
			map[string]any{"got": got})
	}

	start := time.Now()
	m := i.process(dct)
	conversionDuration.Observe(time.Since(start).Seconds())
	conversions.Inc()

	i.result = m
	i.computed = true

	slog.Info("conversion complete", "fields", len(m))

	return m, nil
}

// Mapping returns the stored result. Before the first successful Infer it
// logs a warning and returns an empty mapping.
func (i *Inferencer) Mapping() Mapping {
	if !i.computed {
		slog.Warn("no mapping available", "code", apperrors.ErrCodeNoResult)
		return Mapping{}
	}
	return i.result
}

// HasResult reports whether Infer has completed successfully at least once.
func (i *Inferencer) HasResult() bool {
	return i.computed
}

// Export writes the stored result with s. Without a result it logs a warning
// and writes nothing.
func (i *Inferencer) Export(ctx context.Context, s Serializer) error {
	if !i.computed {
		slog.Warn("no mapping available, nothing has been saved", "code", apperrors.ErrCodeNoResult)
		return nil
	}
	if s == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "serializer is nil")
	}
	if err := s.Serialize(ctx, i.result); err != nil {
		return fmt.Errorf("failed to export mapping: %w", err)
	}
	return nil
}

func (i *Inferencer) process(dct map[string]any) Mapping {
	m := make(Mapping, len(dct))
	for k, v := range dct {
		m[k] = i.field(v)
	}
	return m
}

// field resolves the descriptor for a single value. Collections are sampled
// by their first element, which is resolved the same way, so nested
// collections flatten until a map or scalar is reached.
func (i *Inferencer) field(v any) any {
	if nested, ok := v.(map[string]any); ok {
		return Descriptor{PropertiesKey: i.process(nested)}
	}
	if first, isCollection, empty := sample(v); isCollection {
		if empty {
			return i.Classify(nil)
		}
		return i.field(first)
	}
	return i.Classify(v)
}

// sample returns the first element of a slice or array.
func sample(v any) (first any, isCollection bool, empty bool) {
	if s, ok := v.([]any); ok {
		if len(s) == 0 {
			return nil, true, true
		}
		return s[0], true, false
	}
	if v == nil {
		return nil, false, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // only sequences are collections
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil, true, true
		}
		return rv.Index(0).Interface(), true, false
	default:
		return nil, false, false
	}
}
