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

package mapping

import (
	"context"
	"net/http"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/problem"
)

// Rename binds c to its base description with a replaced title.
func Rename(c code.Code, title string) Binding {
	return Transform(c, func(_ Env, _ *dproblem.Error, p *problem.Problem) {
		p.Title = title
	})
}

// OverrideStatus binds c to its base description with a replaced status.
// The title follows the new status unless the fault carried its own, and
// the detail is dropped when the new status is 5xx and details are hidden.
func OverrideStatus(c code.Code, status int) Binding {
	return Transform(c, func(env Env, f *dproblem.Error, p *problem.Problem) {
		p.HTTPStatus = status
		if f.Problem == nil || f.Problem.Title == "" {
			if t := http.StatusText(status); t != "" {
				p.Title = t
			}
		}
		if status >= http.StatusInternalServerError && !env.Config.ExposeDetail {
			p.Detail = ""
		}
	})
}

// Transform binds c to its base description, edited in place by fn.
func Transform(c code.Code, fn func(env Env, f *dproblem.Error, p *problem.Problem)) Binding {
	return Binding{
		Code: c,
		Map: func(_ context.Context, env Env, f *dproblem.Error) (*problem.Problem, error) {
			p := env.Base(f)
			fn(env, f, p)
			return p, nil
		},
	}
}
