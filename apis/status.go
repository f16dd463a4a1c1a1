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

package apis

import (
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/reason"
	"google.golang.org/grpc/codes"
)

// StatusMapper is an immutable, concurrency-safe resolver from a category
// tag (and optional reason) to transport statuses.
type StatusMapper interface {
	// HTTPStatus returns the HTTP status for c and r, falling back to the
	// code-level rule when no reason-specific rule exists.
	HTTPStatus(c code.Code, r reason.Reason) int

	// GRPCStatus is the gRPC counterpart of HTTPStatus.
	GRPCStatus(c code.Code, r reason.Reason) codes.Code

	// Status resolves both transports in one call.
	Status(c code.Code, r reason.Reason) Status

	// Explain describes which rule matched. Diagnostics only.
	Explain(c code.Code, r reason.Reason) string
}

// Status is a resolved pair of transport statuses for one fault.
type Status struct {
	HTTP int
	GRPC codes.Code
}
