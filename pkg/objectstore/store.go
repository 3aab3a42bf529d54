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

package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/defaults"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
)

// URIScheme selects an object storage destination.
const URIScheme = "s3://"

const contentType = "application/json"

// Config holds the S3 connection settings.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Store puts objects into S3-compatible storage.
type Store struct {
	client *minio.Client
	region string

	mu      sync.Mutex
	buckets map[string]bool
}

// New creates a Store. Endpoint and credentials are required.
func New(cfg Config) (*Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &Store{
		client:  client,
		region:  region,
		buckets: make(map[string]bool),
	}, nil
}

func (s *Store) ensureBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buckets[bucket] {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		slog.Info("creating bucket", "bucket", bucket, "region", s.region)
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.buckets[bucket] = true
	return nil
}

// Put stores content under bucket/key.
func (s *Store) Put(ctx context.Context, bucket, key string, content []byte) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	bucket = strings.TrimSpace(bucket)
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if key == "" {
		return fmt.Errorf("key is required")
	}

	putCtx, cancel := context.WithTimeout(ctx, defaults.ObjectStorePutTimeout)
	defer cancel()

	if err := s.ensureBucket(putCtx, bucket); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	info, err := s.client.PutObject(putCtx, bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}

	slog.Info("mapping stored", "bucket", bucket, "key", key, "size", info.Size, "etag", info.ETag)
	return nil
}

// Writer returns a serializer writing to the s3://bucket/key destination.
func (s *Store) Writer(uri string) (*Writer, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return &Writer{store: s, bucket: bucket, key: key}, nil
}

// Writer serializes a mapping into a single object.
type Writer struct {
	store  *Store
	bucket string
	key    string
}

// Serialize writes v as indented JSON.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	content, err := serializer.Marshal(v)
	if err != nil {
		return err
	}
	return w.store.Put(ctx, w.bucket, w.key, content)
}

// ParseURI splits s3://bucket/key into its parts.
func ParseURI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, URIScheme) {
		return "", "", fmt.Errorf("invalid object URI %q: must start with %s", uri, URIScheme)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, URIScheme), "/", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.Trim(parts[1], "/ ") == "" {
		return "", "", fmt.Errorf("invalid object URI %q: expected %sbucket/key", uri, URIScheme)
	}
	return strings.TrimSpace(parts[0]), strings.TrimLeft(strings.TrimSpace(parts[1]), "/"), nil
}
