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

// Package adapter converts problem descriptions to and from gRPC statuses.
package adapter

import (
	"net/http"
	"strconv"
	"strings"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/problem"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Metadata keys of the ErrorInfo detail.
const (
	MetaType       = "type"
	MetaInstance   = "instance"
	MetaTitle      = "title"
	MetaDetail     = "detail"
	MetaHTTPStatus = "http_status"
)

// statusClientClosedRequest is the non-standard status used by proxies when
// the client went away.
const statusClientClosedRequest = 499

// httpToGRPC follows the HTTP mapping of google.rpc.Code.
var httpToGRPC = map[int]codes.Code{
	http.StatusBadRequest:            codes.InvalidArgument,
	http.StatusUnauthorized:          codes.Unauthenticated,
	http.StatusForbidden:             codes.PermissionDenied,
	http.StatusNotFound:              codes.NotFound,
	http.StatusRequestTimeout:        codes.Canceled,
	http.StatusConflict:              codes.Aborted,
	http.StatusGone:                  codes.NotFound,
	http.StatusPreconditionFailed:    codes.FailedPrecondition,
	http.StatusRequestEntityTooLarge: codes.InvalidArgument,
	http.StatusUnprocessableEntity:   codes.InvalidArgument,
	http.StatusTooEarly:              codes.FailedPrecondition,
	http.StatusTooManyRequests:       codes.ResourceExhausted,
	statusClientClosedRequest:        codes.Canceled,
	http.StatusInternalServerError:   codes.Internal,
	http.StatusNotImplemented:        codes.Unimplemented,
	http.StatusBadGateway:            codes.Unavailable,
	http.StatusServiceUnavailable:    codes.Unavailable,
	http.StatusGatewayTimeout:        codes.DeadlineExceeded,
}

// GRPCCode derives a gRPC code from an HTTP status, for problems that carry
// no category. Unlisted 4xx statuses become FailedPrecondition, anything
// else Internal.
func GRPCCode(httpStatus int) codes.Code {
	if c, ok := httpToGRPC[httpStatus]; ok {
		return c
	}
	if httpStatus >= 400 && httpStatus < 500 {
		return codes.FailedPrecondition
	}
	return codes.Internal
}

// Reason turns a problem type URI into an ErrorInfo reason:
// "urn:acme:not-found" becomes "NOT_FOUND",
// "urn:acme:internal:unhandled" becomes "INTERNAL_UNHANDLED".
func Reason(typeURI, namespace string) string {
	s := strings.TrimPrefix(typeURI, "urn:"+namespace+":")
	s = strings.NewReplacer(":", "_", "-", "_", ".", "_", "/", "_").Replace(s)
	return strings.ToUpper(s)
}

// ToStatus converts p into a gRPC status with code c. The description
// travels as ErrorInfo (domain = namespace),
// RequestInfo (request id = instance URI) and, for violations, BadRequest.
// Violations keep their field and reason only.
//
// The message is the problem's Error text, so clients without detail
// support still get something readable.
func ToStatus(p *problem.Problem, c codes.Code, namespace string) *status.Status {
	if p == nil {
		return status.New(codes.Internal, problem.DefaultTitle)
	}
	base := status.New(c, p.Error())

	md := map[string]string{
		MetaType:       p.ProblemTypeURI,
		MetaInstance:   p.ProblemInstanceURI,
		MetaTitle:      p.Title,
		MetaHTTPStatus: strconv.Itoa(p.HTTPStatus),
	}
	if p.Detail != "" {
		md[MetaDetail] = p.Detail
	}
	info := &errdetails.ErrorInfo{
		Reason:   Reason(p.ProblemTypeURI, namespace),
		Domain:   namespace,
		Metadata: md,
	}
	reqInfo := &errdetails.RequestInfo{RequestId: p.ProblemInstanceURI}

	details := []protoadapt.MessageV1{info, reqInfo}
	if len(p.Errors) > 0 {
		details = append(details, toBadRequest(p.Errors))
	}

	// Details never fail to marshal in practice; fall back to the bare
	// status if they do.
	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

// FromStatus reconstructs the problem carried by st. It reports false when
// st carries no ErrorInfo produced by ToStatus.
func FromStatus(st *status.Status) (*problem.Problem, bool) {
	if st == nil {
		return nil, false
	}
	var (
		p     *problem.Problem
		viols []apis.Detail
	)
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			md := v.GetMetadata()
			if _, ok := md[MetaHTTPStatus]; !ok {
				continue
			}
			httpStatus, _ := strconv.Atoi(md[MetaHTTPStatus])
			p = &problem.Problem{
				HTTPStatus:         httpStatus,
				Title:              md[MetaTitle],
				Detail:             md[MetaDetail],
				ProblemTypeURI:     md[MetaType],
				ProblemInstanceURI: md[MetaInstance],
			}
		case *errdetails.BadRequest:
			viols = fromBadRequest(v)
		}
	}
	if p == nil {
		return nil, false
	}
	p.Errors = viols
	return p, true
}

func toBadRequest(ds []apis.Detail) *errdetails.BadRequest {
	br := &errdetails.BadRequest{}
	for _, d := range ds {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       d.Field,
			Description: d.Reason,
		})
	}
	return br
}

func fromBadRequest(br *errdetails.BadRequest) []apis.Detail {
	out := make([]apis.Detail, 0, len(br.GetFieldViolations()))
	for _, fv := range br.GetFieldViolations() {
		out = append(out, apis.Detail{Field: fv.GetField(), Reason: fv.GetDescription()})
	}
	return out
}
