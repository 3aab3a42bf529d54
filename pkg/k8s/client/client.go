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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig names the environment variable holding a kubeconfig path.
const EnvKubeconfig = "KUBECONFIG"

// Interface is an alias for kubernetes.Interface so callers can inject
// fake.NewClientset() in tests.
type Interface = kubernetes.Interface

// Factory returns a Kubernetes client.
type Factory func() (Interface, error)

var (
	defaultOnce   sync.Once
	defaultClient Interface
	defaultErr    error
)

// Default returns the process-wide client built from auto-discovered
// configuration. The first result, including an error, is cached.
func Default() (Interface, error) {
	defaultOnce.Do(func() {
		defaultClient, _, defaultErr = New("")
	})
	return defaultClient, defaultErr
}

// ForKubeconfig returns a Factory for the given path. An empty path
// resolves to Default.
func ForKubeconfig(kubeconfig string) Factory {
	if kubeconfig == "" {
		return Default
	}
	return func() (Interface, error) {
		cs, _, err := New(kubeconfig)
		return cs, err
	}
}

// ResolveKubeconfig returns the kubeconfig path to use, or an empty string
// when the in-cluster configuration should be used.
func ResolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// New creates a Kubernetes client without touching the Default cache.
func New(kubeconfig string) (Interface, *rest.Config, error) {
	var config *rest.Config
	var err error

	path := ResolveKubeconfig(kubeconfig)
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return cs, config, nil
}
