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

// The interfaces below are capabilities. Built-in classifiers match on them
// instead of on concrete types, so any error can opt into structured
// handling by implementing the relevant method.

// CodedError is an error classified into a category tag, e.g. "not_found",
// "invalid", "conflict".
//
// The returned value MUST be non-empty and already normalized by the code
// package. Classifiers treat an invalid code as an internal failure.
type CodedError interface {
	error

	// ErrorCode returns the category tag.
	ErrorCode() string
}

// ReasonedError refines a category with a dotted reason such as
// "parcel.lookup" or "storage.pg.connect_timeout". Status rules may key on
// reason prefixes.
type ReasonedError interface {
	error

	// ErrorReason returns the reason; empty means "none".
	ErrorReason() string
}

// MessageError exposes a message that is safe to show to API clients.
//
// Error() is never used as problem detail because wrapped errors tend to
// leak internal context there.
type MessageError interface {
	error

	ErrorMessage() string
}

// DetailedError exposes structured, field-level details, typically one per
// failed validation rule.
type DetailedError interface {
	error

	// ErrorDetails returns the details. May return nil. The caller may keep
	// the slice.
	ErrorDetails() []Detail
}

// CausedError exposes the direct underlying cause, or nil.
type CausedError interface {
	error

	ErrorCause() error
}
