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

package config

import (
	"context"
	"fmt"

	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/mapping"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/record"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

// RuleEntry is a single override as written in a rules file.
type RuleEntry struct {
	Type       string         `json:"type" yaml:"type"`
	Descriptor map[string]any `json:"descriptor" yaml:"descriptor"`
}

// Config is the content of a rules file.
type Config struct {
	Rules []RuleEntry `json:"rules" yaml:"rules"`
}

// Load reads a rules file (JSON or YAML, by extension) from a path or URL.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := serializer.FromFile[Config](ctx, path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to load rules file", err, map[string]any{"path": path})
	}
	return cfg, nil
}

// MappingRules converts the entries into mapping rules, preserving order.
// Unknown type tags and empty descriptors are rejected.
func (c *Config) MappingRules() ([]mapping.Rule, error) {
	if c == nil {
		return nil, nil
	}

	rules := make([]mapping.Rule, 0, len(c.Rules))
	for i, e := range c.Rules {
		tag, err := mapping.ParseTypeTag(e.Type)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"invalid rule type", err, map[string]any{"index": i, "type": e.Type})
		}
		if len(e.Descriptor) == 0 {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("rule %d for %s has an empty descriptor", i, tag),
				map[string]any{"index": i, "type": e.Type})
		}
		d, ok := record.Normalize(e.Descriptor).(map[string]any)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "descriptor must be a mapping")
		}
		rules = append(rules, mapping.Rule{
			Type:       tag,
			Descriptor: mapping.Descriptor(d),
		})
	}
	return rules, nil
}

// LoadRules is Load followed by MappingRules. An empty path yields no rules.
func LoadRules(ctx context.Context, path string) ([]mapping.Rule, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return cfg.MappingRules()
}
