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
	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/problem"
	"dirpx.dev/dproblem/reason"
)

// Option is a functional option for constructing or refining an Error.
type Option func(*Error) *Error

// WithReasonOption sets the reason. Intended for E(...).
func WithReasonOption(r reason.Reason) Option {
	return func(e *Error) *Error { return e.WithReason(r) }
}

// WithDetailOption adds a single payload entry.
func WithDetailOption(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetailsOption merges several payload entries.
func WithDetailsOption(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// WithViolationsOption appends field-level violations.
func WithViolationsOption(ds ...apis.Detail) Option {
	return func(e *Error) *Error { return e.WithViolations(ds...) }
}

// WithProblemOption attaches a pre-built partial problem description, which
// mappers use as their starting point.
func WithProblemOption(p *problem.Problem) Option {
	return func(e *Error) *Error { return e.WithProblem(p) }
}

// WithCauseOption attaches a cause.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
