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

package oci

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/opencontainers/go-digest"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2/content"
	orasoci "oras.land/oras-go/v2/content/oci"

	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
)

func TestPushTo_LocalLayout(t *testing.T) {
	ctx := context.Background()
	store, err := orasoci.New(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`{"id": {"type": "long"}}`)
	desc, err := PushTo(ctx, store, "v1", payload, PushOptions{
		Created:     "2026-01-01T00:00:00Z",
		Annotations: map[string]string{"org.opencontainers.image.version": "1.2.3"},
	})
	require.NoError(t, err)

	resolved, err := store.Resolve(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, desc.Digest, resolved.Digest)

	raw, err := content.FetchAll(ctx, store, resolved)
	require.NoError(t, err)

	var manifest ociv1.Manifest
	require.NoError(t, json.Unmarshal(raw, &manifest))

	assert.Equal(t, ArtifactType, manifest.ArtifactType)
	assert.Equal(t, "2026-01-01T00:00:00Z", manifest.Annotations[ociv1.AnnotationCreated])
	assert.Equal(t, "1.2.3", manifest.Annotations["org.opencontainers.image.version"])
	require.Len(t, manifest.Layers, 1)

	layer := manifest.Layers[0]
	assert.Equal(t, MediaTypeMapping, layer.MediaType)
	assert.Equal(t, LayerTitle, layer.Annotations[ociv1.AnnotationTitle])
	assert.Equal(t, digest.FromBytes(payload), layer.Digest)

	blob, err := content.FetchAll(ctx, store, layer)
	require.NoError(t, err)
	assert.Equal(t, payload, blob)
}

func TestPushTo_Reproducible(t *testing.T) {
	ctx := context.Background()
	opts := PushOptions{Created: "2026-01-01T00:00:00Z"}

	s1, err := orasoci.New(t.TempDir())
	require.NoError(t, err)
	s2, err := orasoci.New(t.TempDir())
	require.NoError(t, err)

	d1, err := PushTo(ctx, s1, "v1", []byte("{}"), opts)
	require.NoError(t, err)
	d2, err := PushTo(ctx, s2, "v1", []byte("{}"), opts)
	require.NoError(t, err)

	assert.Equal(t, d1.Digest, d2.Digest)
}

func TestPushTo_EmptyTag(t *testing.T) {
	store, err := orasoci.New(t.TempDir())
	require.NoError(t, err)

	_, err = PushTo(context.Background(), store, "", []byte("{}"), PushOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestPush_NilReference(t *testing.T) {
	_, err := Push(context.Background(), nil, nil, PushOptions{})
	assert.Error(t, err)
}

func TestWriter_Serialize(t *testing.T) {
	w, err := NewWriter("oci://localhost:5000/search/orders", PushOptions{PlainHTTP: true})
	require.NoError(t, err)

	var gotRef *Reference
	var gotContent []byte
	var gotOpts PushOptions
	w.push = func(_ context.Context, ref *Reference, content []byte, opts PushOptions) (*PushResult, error) {
		gotRef, gotContent, gotOpts = ref, content, opts
		return &PushResult{Digest: "sha256:abc", Reference: ref.ImageReference()}, nil
	}

	require.NoError(t, w.Serialize(context.Background(), map[string]any{"a": map[string]any{"type": "boolean"}}))

	assert.Equal(t, "localhost:5000", gotRef.Registry)
	assert.Equal(t, "search/orders", w.Reference().Repository)
	assert.JSONEq(t, `{"a":{"type":"boolean"}}`, string(gotContent))
	assert.True(t, gotOpts.PlainHTTP)
}

func TestWriter_PushError(t *testing.T) {
	w, err := NewWriter("oci://localhost:5000/search/orders:v1", PushOptions{})
	require.NoError(t, err)

	boom := errors.New("registry down")
	w.push = func(context.Context, *Reference, []byte, PushOptions) (*PushResult, error) {
		return nil, boom
	}
	assert.ErrorIs(t, w.Serialize(context.Background(), map[string]any{}), boom)
}

func TestNewWriter_InvalidTarget(t *testing.T) {
	_, err := NewWriter("/tmp/mapping.json", PushOptions{})
	assert.Error(t, err)
}
