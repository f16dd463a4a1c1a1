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

// Package grpcx is the gRPC boundary of the pipeline: handler errors are
// resolved into problem descriptions and returned as rich statuses.
package grpcx

import (
	"context"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/adapter"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/pipeline"
	"dirpx.dev/dproblem/problem"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
)

// RequestIDKey is the metadata key carrying the caller's request id.
const RequestIDKey = "x-request-id"

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that resolves
// handler errors and panics through p.
//
// Errors that already are gRPC statuses (not wrapped) are returned as is:
// the handler chose the status on purpose.
func UnaryServerInterceptor(p *pipeline.Pipeline) grpc.UnaryServerInterceptor {
	ns := p.Config().TypeNamespace

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var resp any
		err := dproblem.Invoke(func() error {
			var herr error
			resp, herr = handler(ctx, req)
			return herr
		})
		if err == nil {
			return resp, nil
		}
		if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
			return nil, err
		}

		d := p.Deliver(ctx, NewRequest(ctx, p, info), err)
		return nil, adapter.ToStatus(d.Problem, Code(p, d), ns).Err()
	}
}

// Code returns the gRPC code of a delivery: the status mapper's code for its
// category, or one derived from the HTTP status when it has none.
func Code(p *pipeline.Pipeline, d pipeline.Delivery) codes.Code {
	if d.Code == code.Empty {
		return adapter.GRPCCode(d.Problem.HTTPStatus)
	}
	return p.Statuses().GRPCStatus(d.Code, d.Reason)
}

// NewRequest builds the pipeline request of a unary call. The logger is
// enriched with the full method name and the caller's request id.
func NewRequest(ctx context.Context, p *pipeline.Pipeline, info *grpc.UnaryServerInfo) pipeline.Request {
	log := p.Logger()
	if info != nil {
		log = log.With(zap.String("grpc_method", info.FullMethod))
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDKey); len(ids) > 0 && ids[0] != "" {
			log = log.With(zap.String("request_id", ids[0]))
		}
	}
	return pipeline.NewRequest(p.Config().InstanceBaseURI, log)
}

// ExtractProblem pulls the problem description out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractProblem(err error) (*problem.Problem, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	return adapter.FromStatus(st)
}
