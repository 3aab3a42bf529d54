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

// Package sink resolves an output destination string into a serializer.
//
//	""  or "-"               stdout
//	cm://namespace/name      Kubernetes ConfigMap
//	oci://registry/repo:tag  OCI artifact
//	s3://bucket/key          S3-compatible object
//	anything else            local file
//
// Every destination receives the mapping as indented JSON.
package sink

import (
	"fmt"
	"strings"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/k8s/client"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/objectstore"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/oci"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

// Kind names the destination type.
type Kind string

const (
	KindStdout      Kind = "stdout"
	KindConfigMap   Kind = "configmap"
	KindOCI         Kind = "oci"
	KindObjectStore Kind = "s3"
	KindFile        Kind = "file"
)

// KindOf classifies a destination string.
func KindOf(dest string) Kind {
	switch {
	case dest == "" || dest == serializer.StdinPath:
		return KindStdout
	case strings.HasPrefix(dest, serializer.ConfigMapURIScheme):
		return KindConfigMap
	case oci.IsReference(dest):
		return KindOCI
	case strings.HasPrefix(dest, objectstore.URIScheme):
		return KindObjectStore
	default:
		return KindFile
	}
}

type options struct {
	kubeClient  client.Interface
	kubeconfig  string
	version     string
	push        oci.PushOptions
	objectStore objectstore.Config
}

// Option configures destination construction.
type Option func(*options)

// WithKubeClient injects the client used for ConfigMap destinations.
func WithKubeClient(c client.Interface) Option {
	return func(o *options) {
		o.kubeClient = c
	}
}

// WithKubeconfig sets the kubeconfig used for ConfigMap destinations.
func WithKubeconfig(path string) Option {
	return func(o *options) {
		o.kubeconfig = path
	}
}

// WithVersion sets the version recorded in ConfigMap labels and OCI annotations.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithPushOptions configures OCI destinations.
func WithPushOptions(p oci.PushOptions) Option {
	return func(o *options) {
		o.push = p
	}
}

// WithObjectStore configures S3 destinations.
func WithObjectStore(cfg objectstore.Config) Option {
	return func(o *options) {
		o.objectStore = cfg
	}
}

// New returns the serializer for dest. Callers should close the result when
// it implements serializer.Closer.
func New(dest string, opts ...Option) (serializer.Serializer, error) {
	o := &options{version: "unknown"}
	for _, opt := range opts {
		opt(o)
	}

	switch KindOf(dest) {
	case KindStdout:
		return serializer.NewStdoutWriter(), nil

	case KindConfigMap:
		cmOpts := []serializer.ConfigMapOption{serializer.WithVersion(o.version)}
		switch {
		case o.kubeClient != nil:
			cmOpts = append(cmOpts, serializer.WithKubeClient(o.kubeClient))
		case o.kubeconfig != "":
			cmOpts = append(cmOpts, serializer.WithKubeconfig(o.kubeconfig))
		}
		return serializer.NewConfigMapWriterFromURI(dest, cmOpts...)

	case KindOCI:
		push := o.push
		if push.Annotations == nil {
			push.Annotations = map[string]string{
				"org.opencontainers.image.version": o.version,
				"org.opencontainers.image.title":   "elastic mapping",
			}
		}
		return oci.NewWriter(dest, push)

	case KindObjectStore:
		store, err := objectstore.New(o.objectStore)
		if err != nil {
			return nil, fmt.Errorf("failed to configure object store for %s: %w", dest, err)
		}
		return store.Writer(dest)

	default:
		return serializer.NewFileWriter(dest)
	}
}

// Close closes s when it holds resources.
func Close(s serializer.Serializer) error {
	if c, ok := s.(serializer.Closer); ok {
		return c.Close()
	}
	return nil
}
