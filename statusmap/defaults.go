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

package statusmap

import (
	"net/http"

	"dirpx.dev/dproblem/code"
	"google.golang.org/grpc/codes"
)

// defaultHTTP follows common REST conventions.
var defaultHTTP = map[code.Code]int{
	code.Internal:         http.StatusInternalServerError,
	code.Unavailable:      http.StatusServiceUnavailable,
	code.NotReady:         http.StatusServiceUnavailable,
	code.Draining:         http.StatusServiceUnavailable,
	code.Overloaded:       http.StatusServiceUnavailable,
	code.DependencyFailed: http.StatusBadGateway,
	code.Timeout:          http.StatusGatewayTimeout,
	code.Canceled:         http.StatusRequestTimeout,

	code.Invalid:     http.StatusBadRequest,
	code.Missing:     http.StatusBadRequest,
	code.Unsupported: http.StatusBadRequest,
	code.TooEarly:    http.StatusTooEarly,
	code.TooLarge:    http.StatusRequestEntityTooLarge,

	code.NotFound: http.StatusNotFound,
	code.Gone:     http.StatusGone,

	code.AlreadyExists:      http.StatusConflict,
	code.Conflict:           http.StatusConflict,
	code.StaleVersion:       http.StatusConflict,
	code.PreconditionFailed: http.StatusPreconditionFailed,

	code.Unauthenticated:  http.StatusUnauthorized,
	code.TokenExpired:     http.StatusUnauthorized,
	code.PermissionDenied: http.StatusForbidden,

	code.Throttled:     http.StatusTooManyRequests,
	code.RateLimited:   http.StatusTooManyRequests,
	code.QuotaExceeded: http.StatusTooManyRequests,
}

// defaultGRPC aligns with the canonical gRPC codes.
var defaultGRPC = map[code.Code]codes.Code{
	code.Internal: codes.Internal,

	code.Invalid:            codes.InvalidArgument,
	code.Missing:            codes.InvalidArgument,
	code.Unsupported:        codes.InvalidArgument,
	code.TooLarge:           codes.InvalidArgument,
	code.PreconditionFailed: codes.FailedPrecondition,
	code.DependencyFailed:   codes.FailedPrecondition,
	code.TooEarly:           codes.FailedPrecondition,

	code.NotFound: codes.NotFound,
	code.Gone:     codes.NotFound, // gRPC has no 410.

	code.AlreadyExists: codes.AlreadyExists,
	code.Conflict:      codes.Aborted,
	code.StaleVersion:  codes.Aborted,

	code.Unauthenticated:  codes.Unauthenticated,
	code.TokenExpired:     codes.Unauthenticated,
	code.PermissionDenied: codes.PermissionDenied,

	code.Unavailable: codes.Unavailable,
	code.NotReady:    codes.Unavailable,
	code.Draining:    codes.Unavailable,
	code.Overloaded:  codes.Unavailable,

	code.Timeout:  codes.DeadlineExceeded,
	code.Canceled: codes.Canceled,

	code.Throttled:     codes.ResourceExhausted,
	code.RateLimited:   codes.ResourceExhausted,
	code.QuotaExceeded: codes.ResourceExhausted,
}
