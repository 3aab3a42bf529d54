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
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/objectstore"
)

// Environment variables read by the binaries.
const (
	EnvRules       = "EMB_RULES"
	EnvOutput      = "EMB_OUTPUT"
	EnvS3Endpoint  = "EMB_S3_ENDPOINT"
	EnvS3AccessKey = "EMB_S3_ACCESS_KEY"
	EnvS3SecretKey = "EMB_S3_SECRET_KEY"
	EnvS3Region    = "EMB_S3_REGION"
	EnvS3UseSSL    = "EMB_S3_USE_SSL"

	defaultS3Region = "us-east-1"
)

// LoadEnv loads variables from the given .env files (".env" when none is given)
// without overriding variables already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ObjectStore returns the S3 connection settings from the environment.
func ObjectStore() objectstore.Config {
	return objectstore.Config{
		Endpoint:  strings.TrimSpace(os.Getenv(EnvS3Endpoint)),
		AccessKey: strings.TrimSpace(os.Getenv(EnvS3AccessKey)),
		SecretKey: strings.TrimSpace(os.Getenv(EnvS3SecretKey)),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv(EnvS3Region)), defaultS3Region),
		UseSSL:    boolEnv(EnvS3UseSSL, true),
	}
}

func boolEnv(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
