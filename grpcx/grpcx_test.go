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

package grpcx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/pipeline"
	"dirpx.dev/dproblem/statusmap"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/parcels.v1.Parcels/Get"}

func newInterceptor(t *testing.T, opts ...pipeline.Option) (grpc.UnaryServerInterceptor, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	cfg.InstanceBaseURI = "urn:parcels:problem"
	p, err := pipeline.New(zap.New(core), append([]pipeline.Option{pipeline.WithConfig(cfg)}, opts...)...)
	require.NoError(t, err)
	return UnaryServerInterceptor(p), logs
}

func call(ctx context.Context, icpt grpc.UnaryServerInterceptor, h grpc.UnaryHandler) (any, error) {
	return icpt(ctx, "req", info, h)
}

func TestInterceptor_PassThrough(t *testing.T) {
	icpt, _ := newInterceptor(t)
	resp, err := call(context.Background(), icpt, func(context.Context, any) (any, error) { return "ok", nil })
	require.NoError(t, err)
	require.Equal(t, "ok", resp)

	own := status.Error(codes.AlreadyExists, "parcel exists")
	_, err = call(context.Background(), icpt, func(context.Context, any) (any, error) { return nil, own })
	require.Same(t, own, err)
}

func TestInterceptor_DeclaredFault(t *testing.T) {
	icpt, logs := newInterceptor(t)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDKey, "r-7"))

	_, err := call(ctx, icpt, func(context.Context, any) (any, error) {
		return nil, dproblem.E(code.Invalid, "postcode is required",
			dproblem.WithViolationsOption(apis.Detail{Field: "address.postcode", Reason: "required"}))
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.InvalidArgument, st.Code())

	p, ok := ExtractProblem(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, p.HTTPStatus)
	require.Equal(t, "postcode is required", p.Detail)
	require.Equal(t, "urn:dirpx.problem:invalid", p.ProblemTypeURI)
	require.Len(t, p.Errors, 1)

	var reqInfo *errdetails.RequestInfo
	for _, d := range st.Details() {
		if ri, ok := d.(*errdetails.RequestInfo); ok {
			reqInfo = ri
		}
	}
	require.NotNil(t, reqInfo)
	require.True(t, proto.Equal(&errdetails.RequestInfo{RequestId: p.ProblemInstanceURI}, reqInfo))

	entries := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, entries, 1)
	require.Equal(t, "r-7", entries[0].ContextMap()["request_id"])
	require.Equal(t, info.FullMethod, entries[0].ContextMap()["grpc_method"])
}

func TestInterceptor_PanicIsUnhandled(t *testing.T) {
	icpt, logs := newInterceptor(t)

	_, err := call(context.Background(), icpt, func(context.Context, any) (any, error) {
		panic(errors.New("nil map write"))
	})
	require.Equal(t, codes.Internal, status.Code(err))

	p, ok := ExtractProblem(err)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, p.HTTPStatus)
	require.Empty(t, p.Detail)
	require.Equal(t, "urn:dirpx.problem:internal:unhandled", p.ProblemTypeURI)
	require.Contains(t, p.ProblemInstanceURI, "urn:parcels:problem/")
	require.NotContains(t, status.Convert(err).Message(), "nil map write")
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestInterceptor_CodeFromStatusMapper(t *testing.T) {
	icpt, _ := newInterceptor(t, pipeline.WithStatusOptions(
		statusmap.WithGRPCOverride(code.Conflict, int(codes.AlreadyExists)),
		statusmap.WithGRPCPrefix(code.Unavailable, "storage.pg", int(codes.ResourceExhausted)),
	))

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"override", dproblem.E(code.Conflict, "parcel 42 already booked"), codes.AlreadyExists},
		{"reason prefix", dproblem.E(code.Unavailable, "pool exhausted",
			dproblem.WithReasonOption("storage.pg.pool")), codes.ResourceExhausted},
		{"library default", dproblem.E(code.DependencyFailed, "carrier API down"), codes.FailedPrecondition},
		{"category from type", fmt.Errorf("calling carrier: %w", status.Error(codes.Internal, "boom")), codes.FailedPrecondition},
		{"context", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"unhandled", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(context.Background(), icpt, func(context.Context, any) (any, error) { return nil, tt.err })
			require.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestExtractProblem_Foreign(t *testing.T) {
	_, ok := ExtractProblem(nil)
	require.False(t, ok)
	_, ok = ExtractProblem(errors.New("plain"))
	require.False(t, ok)
	_, ok = ExtractProblem(status.Error(codes.NotFound, "x"))
	require.False(t, ok)
}
