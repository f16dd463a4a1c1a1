/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/mapping"
	"dirpx.dev/dproblem/pipeline"
	"dirpx.dev/dproblem/problem"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newPipeline(t *testing.T, opts ...pipeline.Option) (*pipeline.Pipeline, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	p, err := pipeline.New(zap.New(core), opts...)
	require.NoError(t, err)
	return p, logs
}

func serve(t *testing.T, h http.Handler, r *http.Request) (*http.Response, problem.Problem) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	res := rec.Result()
	var p problem.Problem
	if res.Header.Get("Content-Type") == problem.ContentType {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&p))
	}
	return res, p
}

func TestWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.Write(rec, &problem.Problem{
		HTTPStatus:         http.StatusConflict,
		Title:              "Conflict",
		ProblemTypeURI:     "urn:acme:conflict",
		ProblemInstanceURI: "abc",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{
		"httpStatus": 409,
		"title": "Conflict",
		"detail": "",
		"problemTypeUri": "urn:acme:conflict",
		"problemInstanceUri": "abc"
	}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Writer{}.Write(rec, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, rec.Body.Len())
}

func TestWriter_InvalidStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	raw := &problem.Problem{HTTPStatus: 42, Title: "Odd", ProblemInstanceURI: "abc"}

	rec := httptest.NewRecorder()
	Writer{Logger: zap.New(core)}.Write(rec, raw)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, problem.ContentType, rec.Header().Get("Content-Type"))

	var body problem.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusInternalServerError, body.HTTPStatus)
	require.Equal(t, "abc", body.ProblemInstanceURI)
	require.Equal(t, 42, raw.HTTPStatus)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestHandle_OverriddenStatusOutOfRange(t *testing.T) {
	p, _ := newPipeline(t, pipeline.WithMappings(mapping.OverrideStatus(code.Conflict, 42)))
	h := Handle(p, func(http.ResponseWriter, *http.Request) error {
		return dproblem.E(code.Conflict, "stale basket")
	})

	res, body := serve(t, h, httptest.NewRequest(http.MethodPut, "/baskets/7", nil))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, http.StatusInternalServerError, body.HTTPStatus)
	require.NotEmpty(t, body.ProblemInstanceURI)
}

func TestHandle_Success(t *testing.T) {
	p, logs := newPipeline(t)
	h := Handle(p, func(w http.ResponseWriter, _ *http.Request) error {
		_, err := io.WriteString(w, "ok")
		return err
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parcels/42", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Zero(t, logs.Len())
}

func TestHandle_DeclaredFault(t *testing.T) {
	p, logs := newPipeline(t)
	h := Handle(p, func(http.ResponseWriter, *http.Request) error {
		return dproblem.E(code.NotFound, "parcel 42 does not exist")
	})

	r := httptest.NewRequest(http.MethodGet, "http://parcels.example.test/parcels/42", nil)
	r.Header.Set(RequestIDHeader, "r-42")
	res, body := serve(t, h, r)

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, "parcel 42 does not exist", body.Detail)
	require.Equal(t, "urn:dirpx.problem:not-found", body.ProblemTypeURI)
	require.True(t, strings.HasPrefix(body.ProblemInstanceURI, "http://parcels.example.test/problems/"))

	entries := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	require.Equal(t, "r-42", ctx["request_id"])
	require.Equal(t, http.MethodGet, ctx["method"])
	require.Equal(t, "/parcels/42", ctx["path"])
	require.Equal(t, "NotFoundException", ctx["handled_type"])
}

func TestHandle_PanicNeverLeaks(t *testing.T) {
	p, logs := newPipeline(t)
	h := Handle(p, func(http.ResponseWriter, *http.Request) error {
		panic("secret: db password rejected")
	})

	res, body := serve(t, h, httptest.NewRequest(http.MethodPost, "/parcels", nil))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, problem.DefaultTitle, body.Title)
	require.Empty(t, body.Detail)
	require.Equal(t, "urn:dirpx.problem:internal:unhandled", body.ProblemTypeURI)
	require.NotEmpty(t, body.ProblemInstanceURI)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestHandle_BrokenMapperFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.InstanceBaseURI = "https://api.example.test/problems"
	p, _ := newPipeline(t, pipeline.WithConfig(cfg), pipeline.WithMappings(mapping.Binding{
		Code: code.Gone,
		Map: func(_ context.Context, _ mapping.Env, _ *dproblem.Error) (*problem.Problem, error) {
			return nil, errors.New("template store offline")
		},
	}))
	h := Handle(p, func(http.ResponseWriter, *http.Request) error {
		return dproblem.E(code.Gone, "parcel archived")
	})

	res, body := serve(t, h, httptest.NewRequest(http.MethodGet, "/parcels/1", nil))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, "urn:dirpx.problem:internal:unhandled", body.ProblemTypeURI)
	require.True(t, strings.HasPrefix(body.ProblemInstanceURI, "https://api.example.test/problems/"))
}

func TestMiddleware(t *testing.T) {
	p, _ := newPipeline(t)
	h := Middleware(p)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(dproblem.E(code.PermissionDenied, "parcel belongs to another account"))
	}))

	res, body := serve(t, h, httptest.NewRequest(http.MethodDelete, "/parcels/7", nil))
	require.Equal(t, http.StatusForbidden, res.StatusCode)
	require.Equal(t, "parcel belongs to another account", body.Detail)
}

func TestNewRequest_Base(t *testing.T) {
	p, _ := newPipeline(t)

	r := httptest.NewRequest(http.MethodGet, "http://api.example.test/x", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	require.True(t, strings.HasPrefix(NewRequest(p, r).ProblemInstanceURI(), "https://api.example.test/problems/"))

	r = httptest.NewRequest(http.MethodGet, "https://api.example.test/x", nil)
	require.True(t, strings.HasPrefix(NewRequest(p, r).ProblemInstanceURI(), "https://api.example.test/problems/"))
}
