// Package mapping infers a search engine index mapping from an example record.
//
// # Overview
//
// An Inferencer walks a nested map[string]any and produces a Mapping with the
// same key structure. Every leaf is a Descriptor chosen by the first Rule whose
// type matches the value exactly; every nested map becomes a properties
// wrapper:
//
//	inf := mapping.New()
//	m, err := inf.Infer(map[string]any{
//	    "n":    3,
//	    "s":    "hi",
//	    "tags": []any{},
//	    "meta": map[string]any{"a": 1},
//	})
//
// produces
//
//	{
//	  "n":    {"type": "long"},
//	  "s":    {"type": "text", "fields": {"keywords": {"type": "keyword"}}},
//	  "tags": {"type": "NULL"},
//	  "meta": {"properties": {"a": {"type": "long"}}}
//	}
//
// # Rules
//
// Built-in rules cover integers, floats, strings, booleans, time.Time and nil.
// Rules passed with WithRules are placed ahead of a copy of the defaults, so
// they win for any type they match:
//
//	inf := mapping.New(mapping.WithRules(
//	    mapping.Rule{Type: mapping.TypeTimestamp, Descriptor: mapping.Descriptor{
//	        "type": "date", "format": "yyyyMMdd",
//	    }},
//	    mapping.RuleFor[json.Number](mapping.Descriptor{"type": "scaled_float"}),
//	))
//
// Matching is by exact runtime type: a named type such as `type Celsius
// float64` does not match the float rule and needs a rule of its own.
//
// # Collections
//
// For slices and arrays only the first element is sampled. Empty collections
// map to the null descriptor, a first element that is a map is recursed into,
// and a first element that is itself a collection is flattened.
//
// # Unknown types
//
// A value no rule matches does not abort inference. It is logged as a warning
// and replaced by an error marker descriptor:
//
//	{"[ERROR]": "unknown type: complex128 for value: (1+2i)"}
//
// FindErrors lists the markers in a finished mapping.
//
// # Concurrency
//
// An Inferencer keeps the last mapping it produced and is not safe for
// concurrent use. Create one per goroutine.
package mapping
