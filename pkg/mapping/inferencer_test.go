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
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
)

const textDescriptor = `{"type":"text","fields":{"keywords":{"type":"keyword"}}}`

type celsius float64

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err, spew.Sdump(v))
	return string(b)
}

func TestInfer_DefaultRules(t *testing.T) {
	inf := New()

	m, err := inf.Infer(map[string]any{
		"n":    3,
		"s":    "hi",
		"tags": []any{},
		"meta": map[string]any{"a": 1},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"n": {"type": "long"},
		"s": `+textDescriptor+`,
		"tags": {"type": "NULL"},
		"meta": {"properties": {"a": {"type": "long"}}}
	}`, toJSON(t, m))
}

func TestClassify_DefaultRules(t *testing.T) {
	inf := New()
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int", 1, `{"type":"long"}`},
		{"int8", int8(1), `{"type":"long"}`},
		{"int64", int64(1), `{"type":"long"}`},
		{"uint16", uint16(1), `{"type":"long"}`},
		{"uint64", uint64(1), `{"type":"long"}`},
		{"float32", float32(1.5), `{"type":"float"}`},
		{"float64", 1.5, `{"type":"float"}`},
		{"string", "x", textDescriptor},
		{"empty string", "", textDescriptor},
		{"bool", true, `{"type":"boolean"}`},
		{"time", ts, `{"type":"date","format":"yyyy-MM-dd HH:mm:ss"}`},
		{"nil", nil, `{"type":"NULL"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, toJSON(t, inf.Classify(tt.value)))
		})
	}
}

func TestClassify_ExactTypeMatch(t *testing.T) {
	inf := New()

	got := inf.Classify(celsius(21.5))
	require.Contains(t, got, ErrorKey)
	assert.Equal(t, "unknown type: mapping.celsius for value: 21.5", got[ErrorKey])

	var ptr *int
	assert.Contains(t, inf.Classify(ptr), ErrorKey, "typed nil pointer is not null")
}

func TestClassify_UnknownType(t *testing.T) {
	inf := New()

	got := inf.Classify(complex(1, 2))
	assert.Equal(t, Descriptor{ErrorKey: "unknown type: complex128 for value: (1+2i)"}, got)
}

func TestClassify_ReturnsCopy(t *testing.T) {
	inf := New()

	first := inf.Classify("x")
	first[TypeKey] = "keyword"
	first["fields"].(map[string]any)["keywords"] = nil

	assert.JSONEq(t, textDescriptor, toJSON(t, inf.Classify("x")))
	assert.JSONEq(t, textDescriptor, toJSON(t, DefaultRules()[2].Descriptor))
}

func TestWithRules_OverridesDefault(t *testing.T) {
	inf := New(WithRules(Rule{
		Type:       TypeTimestamp,
		Descriptor: Descriptor{TypeKey: "date", "format": "yyyyMMdd"},
	}))

	m, err := inf.Infer(map[string]any{
		"timestamp": time.Now(),
		"numerical": []any{1, 2, 3, 4},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"timestamp": {"type": "date", "format": "yyyyMMdd"},
		"numerical": {"type": "long"}
	}`, toJSON(t, m))

	// subsequent calls keep using the override
	assert.Equal(t, "yyyyMMdd", inf.Classify(time.Now())["format"])
}

func TestWithRules_FirstMatchWins(t *testing.T) {
	inf := New(WithRules(
		Rule{Type: TypeInteger, Descriptor: Descriptor{TypeKey: "integer"}},
		Rule{Type: TypeInteger, Descriptor: Descriptor{TypeKey: "short"}},
	))

	assert.Equal(t, Descriptor{TypeKey: "integer"}, inf.Classify(7))
}

func TestWithRules_CustomMatcher(t *testing.T) {
	inf := New(WithRules(
		RuleFor[celsius](Descriptor{TypeKey: "half_float"}),
		Rule{
			Type:       TypeString,
			Match:      func(v any) bool { s, ok := v.(string); return ok && len(s) <= 2 },
			Descriptor: Descriptor{TypeKey: "keyword"},
		},
	))

	assert.Equal(t, Descriptor{TypeKey: "half_float"}, inf.Classify(celsius(1)))
	assert.Equal(t, Descriptor{TypeKey: "keyword"}, inf.Classify("ab"))
	assert.JSONEq(t, textDescriptor, toJSON(t, inf.Classify("abc")))

	rules := inf.Rules()
	require.Len(t, rules, len(TypeTags)+2)
	assert.Equal(t, TypeTag("mapping.celsius"), rules[0].Type)
}

func TestWithRules_NoLeakBetweenInstances(t *testing.T) {
	_ = New(WithRules(Rule{Type: TypeInteger, Descriptor: Descriptor{TypeKey: "integer"}}))

	plain := New()
	assert.Equal(t, Descriptor{TypeKey: "long"}, plain.Classify(1))
	assert.Len(t, plain.Rules(), len(TypeTags))
}

func TestWithRules_DescriptorIsCopied(t *testing.T) {
	d := Descriptor{TypeKey: "integer"}
	inf := New(WithRules(Rule{Type: TypeInteger, Descriptor: d}))

	d[TypeKey] = "byte"
	assert.Equal(t, Descriptor{TypeKey: "integer"}, inf.Classify(1))
}

func TestInfer_Collections(t *testing.T) {
	inf := New()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty any slice", []any{}, `{"type":"NULL"}`},
		{"nil any slice", []any(nil), `{"type":"NULL"}`},
		{"empty typed slice", []string{}, `{"type":"NULL"}`},
		{"typed int slice", []int{1, 2}, `{"type":"long"}`},
		{"array", [2]float64{1, 2}, `{"type":"float"}`},
		{"later elements ignored", []any{1, complex(1, 2), "x"}, `{"type":"long"}`},
		{"first element nil", []any{nil, 1}, `{"type":"NULL"}`},
		{"first element map", []any{map[string]any{"a": "x"}, map[string]any{"b": 1}},
			`{"properties":{"a":` + textDescriptor + `}}`},
		{"typed map slice", []map[string]any{{"a": true}}, `{"properties":{"a":{"type":"boolean"}}}`},
		{"nested array flattened", []any{[]any{1.5}}, `{"type":"float"}`},
		{"nested typed array", [][]int{{1}}, `{"type":"long"}`},
		{"nested empty array", []any{[]any{}}, `{"type":"NULL"}`},
		{"nested array of maps", []any{[]any{map[string]any{"a": 1}}}, `{"properties":{"a":{"type":"long"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := inf.Infer(map[string]any{"f": tt.value})
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, toJSON(t, m["f"]))
		})
	}
}

func TestInfer_DeepNesting(t *testing.T) {
	inf := New()

	record := map[string]any{"leaf": 1}
	want := `{"leaf":{"type":"long"}}`
	for i := 0; i < 50; i++ {
		record = map[string]any{"level": record}
		want = `{"level":{"properties":` + want + `}}`
	}

	m, err := inf.Infer(record)
	require.NoError(t, err)
	assert.JSONEq(t, want, toJSON(t, m))
}

func TestInfer_PreservesShape(t *testing.T) {
	record := map[string]any{
		"a": 1,
		"b": "two",
		"c": map[string]any{
			"d": 3.0,
			"e": map[string]any{"f": false, "g": nil},
		},
		"h": []any{map[string]any{"i": time.Now()}},
	}

	m, err := New().Infer(record)
	require.NoError(t, err)
	assertSameShape(t, record, m)
	assert.Empty(t, FindErrors(m))
}

func assertSameShape(t *testing.T, record map[string]any, m Mapping) {
	t.Helper()
	require.Len(t, m, len(record), spew.Sdump(m))
	for k, v := range record {
		require.Contains(t, m, k)
		nested, isMap := v.(map[string]any)
		if list, ok := v.([]any); ok && len(list) > 0 {
			nested, isMap = list[0].(map[string]any)
		}
		d := m[k].(Descriptor)
		if isMap {
			props, ok := d[PropertiesKey].(Mapping)
			require.True(t, ok, "field %s should be a properties wrapper", k)
			assertSameShape(t, nested, props)
			continue
		}
		assert.NotContains(t, d, PropertiesKey)
	}
}

func TestInfer_TypeMismatch(t *testing.T) {
	inf := New()

	first, err := inf.Infer(map[string]any{"a": 1})
	require.NoError(t, err)

	tests := []struct {
		name   string
		record any
	}{
		{"string", "hi"},
		{"nil", nil},
		{"slice", []any{map[string]any{"a": 1}}},
		{"named map type", Mapping{"a": 1}},
		{"non string keys", map[int]any{1: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := inf.Infer(tt.record)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTypeMismatch), err.Error())

			var se *apperrors.StructuredError
			require.True(t, errors.As(err, &se))
			assert.NotEmpty(t, se.Context["got"])

			assert.Equal(t, first, inf.Mapping(), "stored mapping must be untouched")
		})
	}
}

func TestInfer_ReplacesResult(t *testing.T) {
	inf := New()

	_, err := inf.Infer(map[string]any{"a": 1})
	require.NoError(t, err)
	second, err := inf.Infer(map[string]any{"b": "x"})
	require.NoError(t, err)

	assert.Equal(t, second, inf.Mapping())
	assert.NotContains(t, inf.Mapping(), "a")
}

func TestMapping_BeforeInfer(t *testing.T) {
	inf := New()

	assert.False(t, inf.HasResult())
	m := inf.Mapping()
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestMapping_EmptyRecordIsAResult(t *testing.T) {
	inf := New()

	_, err := inf.Infer(map[string]any{})
	require.NoError(t, err)
	assert.True(t, inf.HasResult())
	assert.Empty(t, inf.Mapping())
}

type recordingSerializer struct {
	calls int
	got   any
	err   error
}

func (r *recordingSerializer) Serialize(_ context.Context, v any) error {
	r.calls++
	r.got = v
	return r.err
}

func TestExport(t *testing.T) {
	t.Run("no result writes nothing", func(t *testing.T) {
		s := &recordingSerializer{}
		require.NoError(t, New().Export(context.Background(), s))
		assert.Zero(t, s.calls)
	})

	t.Run("writes stored mapping", func(t *testing.T) {
		inf := New()
		m, err := inf.Infer(map[string]any{"a": 1})
		require.NoError(t, err)

		s := &recordingSerializer{}
		require.NoError(t, inf.Export(context.Background(), s))
		assert.Equal(t, 1, s.calls)
		assert.Equal(t, m, s.got)
	})

	t.Run("propagates serializer error", func(t *testing.T) {
		inf := New()
		_, err := inf.Infer(map[string]any{"a": 1})
		require.NoError(t, err)

		boom := errors.New("disk full")
		err = inf.Export(context.Background(), &recordingSerializer{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil serializer", func(t *testing.T) {
		inf := New()
		_, err := inf.Infer(map[string]any{"a": 1})
		require.NoError(t, err)
		assert.Error(t, inf.Export(context.Background(), nil))
	})
}

func TestFindErrors(t *testing.T) {
	m, err := New().Infer(map[string]any{
		"ok":  1,
		"bad": complex(1, 1),
		"obj": map[string]any{
			"inner": []any{struct{}{}},
			"fine":  "x",
		},
	})
	require.NoError(t, err)

	errs := FindErrors(m)
	require.Len(t, errs, 2, spew.Sdump(m))
	assert.Equal(t, "bad", errs[0].Context["path"])
	assert.Equal(t, "obj.inner", errs[1].Context["path"])
	for _, e := range errs {
		assert.Equal(t, apperrors.ErrCodeUnknownType, e.Code)
		assert.Contains(t, e.Message, "unknown type")
	}
}

func TestIndexBody(t *testing.T) {
	body := IndexBody(Mapping{"a": Descriptor{TypeKey: "long"}})
	assert.JSONEq(t, `{"mappings":{"properties":{"a":{"type":"long"}}}}`, toJSON(t, body))

	assert.JSONEq(t, `{"mappings":{"properties":{}}}`, toJSON(t, IndexBody(nil)))
}

func TestParseTypeTag(t *testing.T) {
	tests := []struct {
		in      string
		want    TypeTag
		wantErr bool
	}{
		{"integer", TypeInteger, false},
		{"LONG", TypeInteger, false},
		{"Double", TypeFloat, false},
		{" str ", TypeString, false},
		{"bool", TypeBoolean, false},
		{"DateTime", TypeTimestamp, false},
		{"None", TypeNull, false},
		{"decimal", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTypeTag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedTypeTags(t *testing.T) {
	assert.Equal(t, []string{"integer", "float", "string", "boolean", "timestamp", "null"}, SupportedTypeTags())
}
