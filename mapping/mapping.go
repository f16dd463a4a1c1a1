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
	"errors"
	"fmt"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/classify"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/problem"
)

// ErrNoProblem is returned by Map when a mapping function returns neither a
// description nor an error.
var ErrNoProblem = errors.New("mapping: mapper returned no problem")

// Env is the configuration threaded into every mapper.
type Env struct {
	Config   config.Config
	Statuses apis.StatusMapper
}

// Base returns the description a mapper starts from. It is the fault's
// pre-built problem when present, with blank fields derived from the
// category; otherwise it is derived from the category alone.
func (e Env) Base(f *dproblem.Error) *problem.Problem {
	d := classify.Describe(e.Config, e.Statuses, f.Code, f.Reason, f.Message)
	d.Errors = f.ErrorDetails()

	p := f.ErrorProblem()
	if p == nil {
		return d
	}
	if p.HTTPStatus == 0 {
		p.HTTPStatus = d.HTTPStatus
	}
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.Detail == "" {
		p.Detail = d.Detail
	}
	if p.ProblemTypeURI == "" {
		p.ProblemTypeURI = d.ProblemTypeURI
	}
	if len(p.Errors) == 0 {
		p.Errors = d.Errors
	}
	return p
}

// Func transforms a declared fault into a description.
type Func func(ctx context.Context, env Env, f *dproblem.Error) (*problem.Problem, error)

// Binding declares a mapper for a category tag.
//
// Handles defaults to a code match and Map to Env.Base.
type Binding struct {
	Code    code.Code
	Handles func(f *dproblem.Error) bool
	Map     Func
}

// Mapper is a compiled Binding.
type Mapper struct {
	code    code.Code
	handles func(*dproblem.Error) bool
	fn      Func
	env     Env
}

// Code returns the category tag the mapper is bound to.
func (m *Mapper) Code() code.Code { return m.code }

// Handles reports whether m owns f.
func (m *Mapper) Handles(f *dproblem.Error) bool { return m.handles(f) }

// Map runs the mapping function and completes blank fields of its result.
// The instance URI is left as produced.
func (m *Mapper) Map(ctx context.Context, f *dproblem.Error) (*problem.Problem, error) {
	p, err := m.fn(ctx, m.env, f)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoProblem, m.code)
	}
	if p.ProblemTypeURI == "" {
		p.ProblemTypeURI = problem.TypeURI(m.env.Config.TypeNamespace, m.code.Slug())
	}
	return p.Complete(m.env.Config.ProblemDefaults()), nil
}

// Chain holds the compiled mappers. It is immutable.
type Chain struct {
	mappers []*Mapper
}

// NewChain compiles bindings. Bindings with an invalid code are rejected;
// several bindings for one code are accepted and resolved by the caller at
// handling time.
func NewChain(env Env, bindings ...Binding) (Chain, error) {
	if env.Statuses == nil {
		return Chain{}, errors.New("mapping: env has no status mapper")
	}
	env.Config = env.Config.WithDefaults()

	ms := make([]*Mapper, 0, len(bindings))
	for i, b := range bindings {
		c, err := code.Parse(string(b.Code))
		if err != nil {
			return Chain{}, fmt.Errorf("mapping: binding %d: %w", i, err)
		}
		m := &Mapper{code: c, handles: b.Handles, fn: b.Map, env: env}
		if m.handles == nil {
			m.handles = func(f *dproblem.Error) bool { return f.Code == c }
		}
		if m.fn == nil {
			m.fn = base
		}
		ms = append(ms, m)
	}
	return Chain{mappers: ms}, nil
}

// Matches returns every mapper owning f, in binding order.
func (c Chain) Matches(f *dproblem.Error) []*Mapper {
	if f == nil {
		return nil
	}
	var out []*Mapper
	for _, m := range c.mappers {
		if m.Handles(f) {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of mappers.
func (c Chain) Len() int { return len(c.mappers) }

func base(_ context.Context, env Env, f *dproblem.Error) (*problem.Problem, error) {
	return env.Base(f), nil
}
