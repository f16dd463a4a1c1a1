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

package code

// Built-in categories. Default transport statuses live in statusmap; the
// comments only name the usual HTTP status.

// Generic.
const (
	Internal    Code = "internal"    // 500; do not expose details.
	Invalid     Code = "invalid"     // 400; input violates a rule.
	Missing     Code = "missing"     // 400; required value absent.
	Unsupported Code = "unsupported" // 400; known but unsupported option.
)

// Runtime and dependencies.
const (
	Unavailable      Code = "unavailable"       // 503
	Timeout          Code = "timeout"           // 504
	Canceled         Code = "canceled"          // 408
	DependencyFailed Code = "dependency_failed" // 502
	NotReady         Code = "not_ready"         // 503
	Draining         Code = "draining"          // 503
	Overloaded       Code = "overloaded"        // 503
	Throttled        Code = "throttled"         // 429
)

// Resources.
const (
	NotFound           Code = "not_found"           // 404
	Gone               Code = "gone"                // 410
	AlreadyExists      Code = "already_exists"      // 409
	Conflict           Code = "conflict"            // 409
	StaleVersion       Code = "stale_version"       // 409
	PreconditionFailed Code = "precondition_failed" // 412
	TooLarge           Code = "too_large"           // 413
	TooEarly           Code = "too_early"           // 425
)

// Authentication and authorization.
const (
	Unauthenticated  Code = "unauthenticated"   // 401
	TokenExpired     Code = "token_expired"     // 401
	PermissionDenied Code = "permission_denied" // 403
)

// Quotas.
const (
	RateLimited   Code = "rate_limited"   // 429
	QuotaExceeded Code = "quota_exceeded" // 429
)
