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

// Detail is one structured, client-safe piece of information attached to a
// fault, such as a failed field in a validation error. It travels in the
// problem description's "errors" extension.
type Detail struct {
	// Type is a short classifier, e.g. "field", "conflict", "missing".
	Type string `json:"type,omitempty"`

	// Field is the logical path of the failing field, e.g. "address.postcode".
	Field string `json:"field,omitempty"`

	// Reason is a short explanation such as "required" or "not_unique".
	Reason string `json:"reason,omitempty"`

	// Info carries extra data (allowed values, limits). Values are strings so
	// they survive JSON and proto round-trips.
	Info map[string]string `json:"info,omitempty"`
}
