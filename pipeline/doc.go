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

// Package pipeline turns any fault raised during request handling into
// exactly one problem description.
//
// Handle resolves a fault in four steps:
//
//  1. an *dproblem.InvocationError carrying an inner error is replaced by it;
//  2. a declared fault (*dproblem.Error) goes through the mapper chain; a
//     single matching mapper produces the result, several matching mappers
//     are reported as a configuration anomaly and skipped;
//  3. the classifier chain is consulted, first match wins, and the request's
//     problem instance URI is stamped on the result;
//  4. anything left is described as an unhandled internal error.
//
// The result is returned as a Delivery for the transport to write. Handle
// never writes to a response itself.
//
// A Pipeline is immutable once built and safe for concurrent use.
package pipeline
