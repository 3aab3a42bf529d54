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
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/defaults"
	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

const (
	// ArtifactType is the artifact type of mapping manifests.
	ArtifactType = "application/vnd.elastic-mapping.artifact"
	// MediaTypeMapping is the media type of the mapping layer.
	MediaTypeMapping = "application/vnd.elastic-mapping.v1+json"
	// LayerTitle is the file name recorded on the mapping layer.
	LayerTitle = "mapping.json"
)

// PushOptions configures the push.
type PushOptions struct {
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Created sets a fixed creation timestamp for reproducible manifests.
	Created string
	// Annotations are additional manifest annotations.
	Annotations map[string]string
}

// PushResult contains the result of a successful push.
type PushResult struct {
	// Digest is the digest of the pushed manifest.
	Digest string
	// Reference is the image reference (registry/repository:tag).
	Reference string
}

// PushTo packs content as a single layer artifact and copies it into dst under tag.
func PushTo(ctx context.Context, dst oras.Target, tag string, content []byte, opts PushOptions) (ociv1.Descriptor, error) {
	if tag == "" {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}

	store := memory.New()

	layer, err := oras.PushBytes(ctx, store, MediaTypeMapping, content)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to stage mapping layer: %w", err)
	}
	layer.Annotations = map[string]string{ociv1.AnnotationTitle: LayerTitle}

	packOpts := oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: map[string]string{},
	}
	for k, v := range opts.Annotations {
		packOpts.ManifestAnnotations[k] = v
	}
	if opts.Created != "" {
		packOpts.ManifestAnnotations[ociv1.AnnotationCreated] = opts.Created
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if tagErr := store.Tag(ctx, manifest, tag); tagErr != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to tag manifest in local store: %w", tagErr)
	}

	desc, err := oras.Copy(ctx, store, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to copy artifact: %w", err)
	}
	return desc, nil
}

// Push uploads content to the remote repository named by ref.
func Push(ctx context.Context, ref *Reference, content []byte, opts PushOptions) (*PushResult, error) {
	if ref == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}
	if ref.Tag == "" {
		ref = ref.WithTag(DefaultTag)
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", ref.Registry, ref.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	slog.Info("pushing mapping artifact",
		"registry", ref.Registry,
		"repository", ref.Repository,
		"tag", ref.Tag)

	desc, err := PushTo(ctx, repo, ref.Tag, content, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to push mapping artifact", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: ref.ImageReference(),
	}, nil
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}

// Writer serializes a mapping and pushes it to an oci:// destination.
type Writer struct {
	ref  *Reference
	opts PushOptions
	push func(ctx context.Context, ref *Reference, content []byte, opts PushOptions) (*PushResult, error)
}

// NewWriter parses target and returns a Writer for it.
func NewWriter(target string, opts PushOptions) (*Writer, error) {
	ref, err := ParseReference(target)
	if err != nil {
		return nil, err
	}
	return &Writer{ref: ref, opts: opts, push: Push}, nil
}

// Reference returns the destination.
func (w *Writer) Reference() *Reference {
	return w.ref
}

// Serialize pushes v as indented JSON.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	content, err := serializer.Marshal(v)
	if err != nil {
		return err
	}

	pushCtx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	res, err := w.push(pushCtx, w.ref, content, w.opts)
	if err != nil {
		return err
	}

	slog.Info("mapping artifact pushed", "reference", res.Reference, "digest", res.Digest)
	return nil
}
