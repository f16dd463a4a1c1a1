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

package dproblem

import (
	"fmt"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/problem"
	"dirpx.dev/dproblem/reason"
)

// Error is a declared API fault: an error raised on purpose by business logic
// to report that a specific rule failed.
//
// It carries:
//   - Code: the category tag that identifies the failed rule (required);
//   - Reason: optional, finer machine-friendly sub-classification;
//   - Message: client-safe human description, used as problem detail;
//   - Details: free-form structured payload;
//   - Violations: field-level payload (validation failures);
//   - Problem: optional pre-built partial problem description;
//   - Cause: wrapped underlying error, never exposed to clients.
//
// All WithX helpers return a shallow copy, so values can be shared between
// goroutines and refined in a functional style.
type Error struct {
	Code    code.Code
	Reason  reason.Reason
	Message string

	// Details is treated as immutable: WithDetail/WithDetails always copy it.
	// It never reaches clients: the pipeline logs it with the handled fault
	// and custom mappers may read it.
	Details map[string]any

	Violations []apis.Detail

	// Problem, when set, is the starting point for mappers instead of a
	// description derived from Code.
	Problem *problem.Problem

	Cause error
}

var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.MessageError  = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
	_ apis.CausedError   = (*Error)(nil)
)

// E constructs a declared fault and applies opts in order.
//
//	return dproblem.E(code.NotFound, "parcel 42 does not exist",
//	    dproblem.WithReasonOption("parcel.lookup"),
//	    dproblem.WithDetailOption("parcel_id", 42),
//	)
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error formats as "<code>: <message>" or "<code>:<reason>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s:%s: %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) ErrorCode() string    { return string(e.Code) }
func (e *Error) ErrorReason() string  { return string(e.Reason) }
func (e *Error) ErrorMessage() string { return e.Message }
func (e *Error) ErrorCause() error    { return e.Cause }

// ErrorDetails returns a copy of the violations, or nil.
func (e *Error) ErrorDetails() []apis.Detail {
	if len(e.Violations) == 0 {
		return nil
	}
	out := make([]apis.Detail, len(e.Violations))
	copy(out, e.Violations)
	return out
}

// ErrorProblem returns a copy of the pre-built description, or nil.
func (e *Error) ErrorProblem() *problem.Problem {
	if e.Problem == nil {
		return nil
	}
	return e.Problem.Clone()
}

// WithReason returns a copy of e with r set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithMessage returns a copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetail returns a copy of e with one more payload entry.
func (e *Error) WithDetail(k string, v any) *Error {
	return e.WithDetails(map[string]any{k: v})
}

// WithDetails returns a copy of e with kv merged into the payload; kv wins on
// key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k, v := range cp.Details {
		m[k] = v
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithViolations returns a copy of e with ds appended to its violations.
func (e *Error) WithViolations(ds ...apis.Detail) *Error {
	if len(ds) == 0 {
		return e
	}
	cp := *e
	vs := make([]apis.Detail, 0, len(cp.Violations)+len(ds))
	vs = append(vs, cp.Violations...)
	cp.Violations = append(vs, ds...)
	return &cp
}

// WithProblem returns a copy of e carrying a pre-built partial description.
func (e *Error) WithProblem(p *problem.Problem) *Error {
	cp := *e
	cp.Problem = p.Clone()
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
