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

package pipeline

import (
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/problem"
	"dirpx.dev/dproblem/reason"
)

// Resolution tells which path of the pipeline produced a Delivery.
type Resolution uint8

const (
	ResolvedUnhandled Resolution = iota
	ResolvedByMapping
	ResolvedByClassifier
)

func (r Resolution) String() string {
	switch r {
	case ResolvedByMapping:
		return "mapping"
	case ResolvedByClassifier:
		return "classifier"
	case ResolvedUnhandled:
		return "unhandled"
	default:
		return "unknown"
	}
}

// Delivery carries the resolved description to the transport boundary. It
// is consumed once; Problem is never shared with another handling.
type Delivery struct {
	Problem    *problem.Problem
	Resolution Resolution

	// Label is the public handled-type label that was logged. Empty for
	// unhandled faults.
	Label string

	// Code and Reason are the category the description was resolved for.
	// Transports use them to pick statuses other than HTTP. Code is empty
	// for unhandled faults and for problems outside the type namespace.
	Code   code.Code
	Reason reason.Reason
}
