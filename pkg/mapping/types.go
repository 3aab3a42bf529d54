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
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Keys used in mapping documents.
const (
	TypeKey       = "type"
	PropertiesKey = "properties"
	ErrorKey      = "[ERROR]"
)

// TypeTag names the primitive type a Rule applies to.
type TypeTag string

// String returns the string representation of the TypeTag.
func (t TypeTag) String() string {
	return string(t)
}

const (
	TypeInteger   TypeTag = "integer"
	TypeFloat     TypeTag = "float"
	TypeString    TypeTag = "string"
	TypeBoolean   TypeTag = "boolean"
	TypeTimestamp TypeTag = "timestamp"
	TypeNull      TypeTag = "null"
)

// TypeTags is the list of all built-in type tags in default rule order.
var TypeTags = []TypeTag{
	TypeInteger,
	TypeFloat,
	TypeString,
	TypeBoolean,
	TypeTimestamp,
	TypeNull,
}

var typeAliases = map[string]TypeTag{
	"integer":   TypeInteger,
	"int":       TypeInteger,
	"long":      TypeInteger,
	"float":     TypeFloat,
	"double":    TypeFloat,
	"string":    TypeString,
	"str":       TypeString,
	"text":      TypeString,
	"boolean":   TypeBoolean,
	"bool":      TypeBoolean,
	"timestamp": TypeTimestamp,
	"date":      TypeTimestamp,
	"datetime":  TypeTimestamp,
	"null":      TypeNull,
	"nil":       TypeNull,
	"none":      TypeNull,
}

// SupportedTypeTags returns the built-in type tags as strings.
func SupportedTypeTags() []string {
	out := make([]string, 0, len(TypeTags))
	for _, t := range TypeTags {
		out = append(out, t.String())
	}
	return out
}

// ParseTypeTag parses a built-in type tag or one of its aliases.
// Matching is case-insensitive.
func ParseTypeTag(s string) (TypeTag, error) {
	key := cases.Fold().String(strings.TrimSpace(s))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown type tag %q, supported values: %s",
		s, strings.Join(SupportedTypeTags(), ", "))
}

// Descriptor is the schema fragment for a single field.
type Descriptor map[string]any

// Mapping is a field name to descriptor tree. Nested objects appear as
// Descriptor{"properties": Mapping}.
type Mapping map[string]any

// Matcher reports whether a value is handled by a rule.
type Matcher func(v any) bool

// Rule pairs a type with the descriptor emitted for values of that type.
// When Match is nil the built-in matcher for Type is used.
type Rule struct {
	Type       TypeTag    `json:"type" yaml:"type"`
	Match      Matcher    `json:"-" yaml:"-"`
	Descriptor Descriptor `json:"descriptor" yaml:"descriptor"`
}

// Matches reports whether v is handled by the rule.
func (r Rule) Matches(v any) bool {
	if r.Match != nil {
		return r.Match(v)
	}
	return builtinMatch(r.Type, v)
}

// RuleFor returns a rule matching values whose dynamic type is exactly T.
// T should be a concrete type; an interface type would match every
// implementation.
func RuleFor[T any](d Descriptor) Rule {
	return Rule{
		Type: TypeTag(reflect.TypeFor[T]().String()),
		Match: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
		Descriptor: d,
	}
}

// DefaultRules returns a fresh copy of the built-in rules.
func DefaultRules() []Rule {
	return []Rule{
		{Type: TypeInteger, Descriptor: Descriptor{TypeKey: "long"}},
		{Type: TypeFloat, Descriptor: Descriptor{TypeKey: "float"}},
		{Type: TypeString, Descriptor: Descriptor{
			TypeKey: "text",
			"fields": map[string]any{
				"keywords": map[string]any{TypeKey: "keyword"},
			},
		}},
		{Type: TypeBoolean, Descriptor: Descriptor{TypeKey: "boolean"}},
		{Type: TypeTimestamp, Descriptor: Descriptor{TypeKey: "date", "format": "yyyy-MM-dd HH:mm:ss"}},
		{Type: TypeNull, Descriptor: Descriptor{TypeKey: "NULL"}},
	}
}

func builtinMatch(t TypeTag, v any) bool {
	switch t {
	case TypeInteger:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
	case TypeFloat:
		switch v.(type) {
		case float32, float64:
			return true
		}
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeTimestamp:
		_, ok := v.(time.Time)
		return ok
	case TypeNull:
		return v == nil
	}
	return false
}

// IndexBody wraps a mapping into an index creation request body.
func IndexBody(m Mapping) map[string]any {
	if m == nil {
		m = Mapping{}
	}
	return map[string]any{
		"mappings": map[string]any{
			PropertiesKey: m,
		},
	}
}

// cloneValue deep copies descriptor content so callers can never mutate
// the rule table through a returned mapping.
func cloneValue(v any) any {
	switch val := v.(type) {
	case Descriptor:
		return Descriptor(cloneMap(val))
	case Mapping:
		return Mapping(cloneMap(val))
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
