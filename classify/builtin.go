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

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/problem"
	"dirpx.dev/dproblem/reason"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handled-type names of the built-in classifiers.
const (
	ProblemType        = "ProblemError"
	NotFoundType       = "NotFoundError"
	CodedType          = "CodedError"
	ContextType        = "ContextError"
	DecodeType         = "DecodeError"
	UpstreamStatusType = "UpstreamStatusError"
)

// TypeOf returns the handled-type name of a declared fault category, so that
// mapped and classified faults of one category share a log label.
// Categories without a dedicated built-in classifier are named by their tag.
func TypeOf(c code.Code) string {
	if c == code.NotFound {
		return NotFoundType
	}
	return c.String()
}

// Defaults returns the built-in classifiers in priority order. A returned
// *problem.Problem is passed through as is. The not-found classifier comes
// before the coded one so that it owns not_found faults even though the
// generic coded classifier would match them too.
func Defaults(cfg config.Config, statuses apis.StatusMapper) []Classifier {
	d := describer{cfg: cfg.WithDefaults(), statuses: statuses}
	return []Classifier{
		New(ProblemType, isProblem, passProblem),
		New(NotFoundType, isNotFound, d.coded),
		New(CodedType, isCoded, d.coded),
		New(ContextType, isContext, d.canceled),
		New(DecodeType, isDecode, d.decode),
		New(UpstreamStatusType, isUpstreamStatus, d.upstream),
	}
}

// Describe builds the description of a category: status from statuses,
// title from the status text, type URI from the category slug. msg becomes
// the detail unless the status is 5xx and cfg does not expose details.
func Describe(cfg config.Config, statuses apis.StatusMapper, c code.Code, r reason.Reason, msg string) *problem.Problem {
	cfg = cfg.WithDefaults()
	st := statuses.HTTPStatus(c, r)
	p := &problem.Problem{
		HTTPStatus:     st,
		Title:          http.StatusText(st),
		Detail:         msg,
		ProblemTypeURI: problem.TypeURI(cfg.TypeNamespace, c.Slug()),
	}
	if p.Title == "" {
		p.Title = cfg.DefaultTitle
	}
	if st >= http.StatusInternalServerError && !cfg.ExposeDetail {
		p.Detail = ""
	}
	return p
}

func isProblem(err error) bool {
	var p *problem.Problem
	return errors.As(err, &p) && p != nil
}

// passProblem returns a copy of a description raised as an error by code
// that already knows its response.
func passProblem(_ context.Context, err error) (*problem.Problem, error) {
	var p *problem.Problem
	if !errors.As(err, &p) || p == nil {
		return nil, fmt.Errorf("classify: %T carries no problem", err)
	}
	return p.Clone(), nil
}

type describer struct {
	cfg      config.Config
	statuses apis.StatusMapper
}

func asCoded(err error) (apis.CodedError, bool) {
	var ce apis.CodedError
	ok := errors.As(err, &ce)
	return ce, ok
}

func isCoded(err error) bool {
	_, ok := asCoded(err)
	return ok
}

func isNotFound(err error) bool {
	ce, ok := asCoded(err)
	return ok && code.Normalize(ce.ErrorCode()) == string(code.NotFound)
}

// coded describes any fault exposing a category tag. An unparsable tag is
// described as internal.
func (d describer) coded(_ context.Context, err error) (*problem.Problem, error) {
	ce, ok := asCoded(err)
	if !ok {
		return nil, fmt.Errorf("classify: %T carries no code", err)
	}
	c, perr := code.Parse(ce.ErrorCode())
	if perr != nil {
		c = code.Internal
	}
	var r reason.Reason
	if re, ok := ce.(apis.ReasonedError); ok {
		r, _ = reason.Parse(re.ErrorReason())
	}
	var msg string
	if me, ok := ce.(apis.MessageError); ok {
		msg = me.ErrorMessage()
	}
	p := Describe(d.cfg, d.statuses, c, r, msg)
	if de, ok := ce.(apis.DetailedError); ok {
		p.Errors = de.ErrorDetails()
	}
	return p, nil
}

func isContext(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func (d describer) canceled(_ context.Context, err error) (*problem.Problem, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		return Describe(d.cfg, d.statuses, code.Timeout, reason.Empty, d.verbose(err, "")), nil
	}
	return Describe(d.cfg, d.statuses, code.Canceled, reason.Empty, "The request was canceled before it completed."), nil
}

func isDecode(err error) bool {
	var (
		syn *json.SyntaxError
		typ *json.UnmarshalTypeError
		big *http.MaxBytesError
	)
	return errors.As(err, &syn) || errors.As(err, &typ) || errors.As(err, &big)
}

func (d describer) decode(_ context.Context, err error) (*problem.Problem, error) {
	var (
		syn *json.SyntaxError
		typ *json.UnmarshalTypeError
		big *http.MaxBytesError
	)
	switch {
	case errors.As(err, &big):
		return Describe(d.cfg, d.statuses, code.TooLarge, reason.Empty,
			fmt.Sprintf("Request body exceeds %d bytes.", big.Limit)), nil
	case errors.As(err, &typ):
		return Describe(d.cfg, d.statuses, code.Invalid, reason.Empty,
			fmt.Sprintf("Field %q must be of type %s.", typ.Field, typ.Type)), nil
	case errors.As(err, &syn):
		return Describe(d.cfg, d.statuses, code.Invalid, reason.Empty,
			fmt.Sprintf("Malformed JSON at offset %d.", syn.Offset)), nil
	}
	return nil, fmt.Errorf("classify: %T is not a decode error", err)
}

// upstreamCodes maps statuses returned by gRPC dependencies to categories.
// Server-side failures of a dependency are reported as dependency_failed.
var upstreamCodes = map[codes.Code]code.Code{
	codes.Canceled:           code.Canceled,
	codes.InvalidArgument:    code.Invalid,
	codes.OutOfRange:         code.Invalid,
	codes.DeadlineExceeded:   code.Timeout,
	codes.NotFound:           code.NotFound,
	codes.AlreadyExists:      code.AlreadyExists,
	codes.PermissionDenied:   code.PermissionDenied,
	codes.Unauthenticated:    code.Unauthenticated,
	codes.ResourceExhausted:  code.RateLimited,
	codes.FailedPrecondition: code.PreconditionFailed,
	codes.Aborted:            code.Conflict,
	codes.Unavailable:        code.Unavailable,
	codes.Unimplemented:      code.DependencyFailed,
	codes.Internal:           code.DependencyFailed,
	codes.DataLoss:           code.DependencyFailed,
}

func isUpstreamStatus(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	_, known := upstreamCodes[st.Code()]
	return known
}

// upstream never forwards the dependency's message unless details are
// exposed: it was written for us, not for our clients.
func (d describer) upstream(_ context.Context, err error) (*problem.Problem, error) {
	st, _ := status.FromError(err)
	c, ok := upstreamCodes[st.Code()]
	if !ok {
		return nil, fmt.Errorf("classify: unmapped upstream status %s", st.Code())
	}
	return Describe(d.cfg, d.statuses, c, reason.Empty, d.verbose(err, "")), nil
}

func (d describer) verbose(err error, fallback string) string {
	if d.cfg.ExposeDetail {
		return err.Error()
	}
	return fallback
}
