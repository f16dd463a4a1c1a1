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

// Package httpx is the HTTP boundary of the pipeline: it recovers handler
// errors and panics, resolves them through a pipeline.Pipeline and writes the
// result as an application/problem+json response.
package httpx

import (
	"encoding/json"
	"net/http"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/pipeline"
	"dirpx.dev/dproblem/problem"
	"go.uber.org/zap"
)

// RequestIDHeader carries the caller's request id.
const RequestIDHeader = "X-Request-ID"

// Writer writes problem descriptions as HTTP responses.
type Writer struct {
	// Logger receives write failures. Nil disables logging.
	Logger *zap.Logger
}

// Write serializes p with its status as the response status. The
// description is written untouched, except that a status outside 100..599
// is written as 500. Nothing is retried.
func (w Writer) Write(rw http.ResponseWriter, p *problem.Problem) {
	if p == nil {
		return
	}
	if !problem.ValidStatus(p.HTTPStatus) {
		w.logger().Warn("problem with invalid status written as 500", zap.Int("http_status", p.HTTPStatus))
		p = p.Clone()
		p.HTTPStatus = http.StatusInternalServerError
	}
	b, err := json.Marshal(p)
	if err != nil {
		w.logger().Error("encode problem", zap.Error(err))
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	h := rw.Header()
	h.Set("Content-Type", problem.ContentType)
	h.Set("X-Content-Type-Options", "nosniff")
	rw.WriteHeader(p.HTTPStatus)
	if _, err := rw.Write(b); err != nil {
		w.logger().Debug("write problem", zap.Error(err))
	}
}

func (w Writer) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

// HandlerFunc is an http.HandlerFunc that reports failure by returning it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h into an http.Handler. Errors and panics of h are resolved
// through p and written as problem responses.
func Handle(p *pipeline.Pipeline, h HandlerFunc) http.Handler {
	w := Writer{Logger: p.Logger()}
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		err := dproblem.Invoke(func() error { return h(rw, r) })
		if err == nil {
			return
		}
		d := p.Deliver(r.Context(), NewRequest(p, r), err)
		w.Write(rw, d.Problem)
	})
}

// Middleware recovers panics of plain handlers the same way Handle does.
func Middleware(p *pipeline.Pipeline) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Handle(p, func(rw http.ResponseWriter, r *http.Request) error {
			next.ServeHTTP(rw, r)
			return nil
		})
	}
}

// NewRequest builds the pipeline request of r. The instance base is the
// configured one, or <scheme>://<host>/problems. The logger is enriched with
// the request id, method and path.
func NewRequest(p *pipeline.Pipeline, r *http.Request) pipeline.Request {
	base := p.Config().InstanceBaseURI
	if base == "" {
		base = scheme(r) + "://" + r.Host + "/problems"
	}

	log := p.Logger().With(zap.String("method", r.Method), zap.String("path", r.URL.Path))
	if id := r.Header.Get(RequestIDHeader); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	return pipeline.NewRequest(base, log)
}

func scheme(r *http.Request) string {
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		return p
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
