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

package problem

import (
	"net/http"
	"strings"

	"dirpx.dev/dproblem/apis"
	"github.com/google/uuid"
)

// DefaultTitle is the system-wide title used when nothing more specific is
// known. It is deliberately vague: it is what clients see for unhandled
// faults.
const DefaultTitle = "An error occurred."

// DefaultNamespace is the URN namespace of problem type URIs.
const DefaultNamespace = "dirpx.problem"

// ContentType is the media type of a serialized Problem.
const ContentType = "application/problem+json"

// Problem is the problem description sent to clients.
//
// The five core fields form a stable wire contract. Errors is an optional
// extension that is omitted when empty.
type Problem struct {
	HTTPStatus         int           `json:"httpStatus"`
	Title              string        `json:"title"`
	Detail             string        `json:"detail"`
	ProblemTypeURI     string        `json:"problemTypeUri"`
	ProblemInstanceURI string        `json:"problemInstanceUri"`
	Errors             []apis.Detail `json:"errors,omitempty"`
}

// Defaults holds the values Complete falls back to.
type Defaults struct {
	Title     string
	Namespace string
}

// New returns a Problem for status with the standard status text as title.
func New(status int, detail string) *Problem {
	return &Problem{
		HTTPStatus: status,
		Title:      http.StatusText(status),
		Detail:     detail,
	}
}

// Clone returns a deep copy of p. Nil in, nil out.
func (p *Problem) Clone() *Problem {
	if p == nil {
		return nil
	}
	cp := *p
	if len(p.Errors) > 0 {
		cp.Errors = make([]apis.Detail, len(p.Errors))
		copy(cp.Errors, p.Errors)
	}
	return &cp
}

// Complete fills blank fields from d and never overwrites a set field:
// a zero or out-of-range status becomes 500, an empty title the default
// title and an empty type the generic type URI of the namespace.
func (p *Problem) Complete(d Defaults) *Problem {
	if !ValidStatus(p.HTTPStatus) {
		p.HTTPStatus = http.StatusInternalServerError
	}
	if p.Title == "" {
		p.Title = d.Title
		if p.Title == "" {
			p.Title = DefaultTitle
		}
	}
	if p.ProblemTypeURI == "" {
		p.ProblemTypeURI = GenericTypeURI(d.Namespace)
	}
	return p
}

// ValidStatus reports whether status can be written as an HTTP status code.
func ValidStatus(status int) bool {
	return status >= 100 && status <= 599
}

// Error lets a Problem travel as an error value between layers that do not
// know about the pipeline. Returned from a handler, it is delivered as is.
func (p *Problem) Error() string {
	if p.Detail != "" {
		return p.Title + ": " + p.Detail
	}
	return p.Title
}

// TypeURI returns the type URI of a problem category: urn:<ns>:<category>.
// Category is expected in slug form ("not-found").
func TypeURI(namespace, category string) string {
	return "urn:" + ns(namespace) + ":" + category
}

// GenericTypeURI identifies problems whose producer did not name a category.
func GenericTypeURI(namespace string) string {
	return TypeURI(namespace, "problem")
}

// UnhandledTypeURI identifies faults no classifier or mapper claimed. The
// extra segment keeps it apart from every TypeURI, since category slugs
// never contain ':'.
func UnhandledTypeURI(namespace string) string {
	return "urn:" + ns(namespace) + ":internal:unhandled"
}

// Number returns a fresh, unique problem number: 32 lowercase hex digits.
func Number() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// InstanceURI joins base and number. An empty base yields the bare number.
func InstanceURI(base, number string) string {
	if base == "" {
		return number
	}
	return strings.TrimRight(base, "/") + "/" + number
}

func ns(namespace string) string {
	if namespace == "" {
		return DefaultNamespace
	}
	return namespace
}
