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

package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/defaults"
	apperrors "github.com/pierluigi-failla/elastic-mapping-builder/pkg/errors"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/mapping"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/record"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/serializer"
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/server"
)

const (
	// MappingsPath is the route of the inference endpoint.
	MappingsPath = "/v1/mappings"

	queryDates     = "dates"
	queryIndexBody = "index_body"

	headerCache = "X-Cache"
)

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "emb_api_cache_lookups_total",
		Help: "Mapping cache lookups by result",
	},
	[]string{"result"},
)

// Handler serves mapping inference over HTTP.
type Handler struct {
	rules []mapping.Rule
	cache *lru.Cache[string, []byte]
}

// NewHandler returns a Handler that applies rules ahead of the defaults on
// every request. size is the number of rendered responses kept in memory;
// zero or less uses defaults.MappingCacheSize.
func NewHandler(rules []mapping.Rule, size int) (*Handler, error) {
	if size <= 0 {
		size = defaults.MappingCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Handler{rules: rules, cache: cache}, nil
}

type mappingRequest struct {
	format    serializer.Format
	dates     bool
	indexBody bool
	body      []byte
}

// key identifies a request by everything that affects its response.
func (q *mappingRequest) key() string {
	h := sha256.New()
	h.Write([]byte(q.format))
	h.Write([]byte{0, boolByte(q.dates), boolByte(q.indexBody), 0})
	h.Write(q.body)
	return hex.EncodeToString(h.Sum(nil))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// HandleMappings infers a mapping from the example record in the request body.
// JSON is expected unless Content-Type names YAML. Query parameters:
//   - dates: detect date strings (true/false)
//   - index_body: wrap the mapping into an index creation body (true/false)
func (h *Handler) HandleMappings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}
	defer r.Body.Close()

	req, status, err := parseMappingRequest(w, r)
	if err != nil {
		server.WriteError(w, r, status, apperrors.ErrCodeInvalidRequest,
			"Invalid mapping request", false, map[string]any{"error": err.Error()})
		return
	}

	key := req.key()
	if content, ok := h.cache.Get(key); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		w.Header().Set(headerCache, "HIT")
		serializer.RespondRaw(w, http.StatusOK, content)
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()

	content, err := h.render(req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to infer mapping", nil)
		return
	}

	h.cache.Add(key, content)
	w.Header().Set(headerCache, "MISS")
	serializer.RespondRaw(w, http.StatusOK, content)
}

func (h *Handler) render(req *mappingRequest) ([]byte, error) {
	var opts []record.Option
	if req.dates {
		opts = append(opts, record.WithDateDetection())
	}

	rec, err := record.Decode(bytes.NewReader(req.body), req.format, opts...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode record", err)
	}

	m, err := mapping.New(mapping.WithRules(h.rules...)).Infer(rec)
	if err != nil {
		return nil, err
	}

	if errs := mapping.FindErrors(m); len(errs) > 0 {
		slog.Warn("mapping contains unresolved fields", "count", len(errs))
	}

	var out any = m
	if req.indexBody {
		out = mapping.IndexBody(m)
	}

	content, err := serializer.Marshal(out)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode mapping", err)
	}
	return content, nil
}

func parseMappingRequest(w http.ResponseWriter, r *http.Request) (*mappingRequest, int, error) {
	req := &mappingRequest{format: formatFromContentType(r.Header.Get("Content-Type"))}

	var err error
	if req.dates, err = queryBool(r, queryDates); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if req.indexBody, err = queryBool(r, queryIndexBody); err != nil {
		return nil, http.StatusBadRequest, err
	}

	req.body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, defaults.MaxRecordBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, err
		}
		return nil, http.StatusBadRequest, err
	}
	if len(bytes.TrimSpace(req.body)) == 0 {
		return nil, http.StatusBadRequest, errors.New("request body is empty")
	}

	return req, http.StatusOK, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid boolean for query parameter " + name + ": " + raw)
	}
	return v, nil
}

func formatFromContentType(ct string) serializer.Format {
	ct = strings.ToLower(ct)
	if strings.Contains(ct, "yaml") {
		return serializer.FormatYAML
	}
	return serializer.FormatJSON
}
