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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/defaults"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

const (
	// ConfigMapURIScheme selects a ConfigMap destination: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// ConfigMapDataKey is the data key the mapping document is stored under.
	ConfigMapDataKey = "mapping.json"

	configMapFieldManager = "emb"
)

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient injects the Kubernetes client, bypassing discovery.
func WithKubeClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.factory = func() (client.Interface, error) { return c, nil }
	}
}

// WithKubeconfig sets an explicit kubeconfig path.
func WithKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.factory = client.ForKubeconfig(path)
	}
}

// WithVersion sets the version label recorded on the ConfigMap.
func WithVersion(version string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.version = version
	}
}

// ConfigMapWriter writes a mapping to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	version   string
	factory   client.Factory
	now       func() time.Time
}

// NewConfigMapWriter creates a new ConfigMapWriter for namespace/name.
func NewConfigMapWriter(namespace, name string, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		version:   "unknown",
		factory:   client.Default,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewConfigMapWriterFromURI parses a cm://namespace/name URI and returns a writer for it.
func NewConfigMapWriterFromURI(uri string, opts ...ConfigMapOption) (*ConfigMapWriter, error) {
	namespace, name, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}
	return NewConfigMapWriter(namespace, name, opts...), nil
}

// Serialize applies the mapping to the ConfigMap. The ConfigMap will have:
//   - data.mapping.json: the indented JSON mapping
//   - data.format: always "json"
//   - data.timestamp: RFC 3339 time of the write
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs, err := w.factory()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	content, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize mapping: %w", err)
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "elastic-mapping-builder",
			"app.kubernetes.io/component": "mapping",
			"app.kubernetes.io/version":   w.version,
		}).
		WithData(map[string]string{
			ConfigMapDataKey: string(content),
			"format":         string(FormatJSON),
			"timestamp":      w.now().UTC().Format(time.RFC3339),
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"bytes", len(content))

	// Server-side apply makes create-or-update a single call.
	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: configMapFieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	return nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
