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

// Package statusmap resolves a category tag and optional reason into HTTP
// and gRPC statuses.
//
// A mapper is an immutable snapshot built once from Options and shared by
// every request. Resolution order:
//
//  1. exact per-code override (WithHTTPOverride / WithGRPCOverride);
//  2. longest reason-prefix rule for the code (WithHTTPPrefix), where "*"
//     matches exactly one segment and prefixes match on segment boundaries;
//  3. per-code default, library-provided or replaced via WithHTTPDefault;
//  4. fallback: 500 / codes.Internal.
//
// Built-in classifiers use it to pick the status of a coded fault; Explain
// shows which tier decided, for debugging rule sets.
package statusmap
