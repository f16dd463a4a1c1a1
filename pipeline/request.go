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
	"sync"

	"dirpx.dev/dproblem/problem"
	"go.uber.org/zap"
)

// Request is the request-scoped context a transport hands to the pipeline.
type Request interface {
	// ProblemInstanceURI returns the instance URI of the current handling.
	// Every call returns the same value.
	ProblemInstanceURI() string

	// Logger returns the request-scoped logger, or nil to use the
	// pipeline's.
	Logger() *zap.Logger
}

type request struct {
	base string
	log  *zap.Logger

	once     sync.Once
	instance string
}

// NewRequest returns a Request whose instance URI is base joined with a
// fresh problem number, generated on first use.
func NewRequest(base string, logger *zap.Logger) Request {
	return &request{base: base, log: logger}
}

func (r *request) ProblemInstanceURI() string {
	r.once.Do(func() {
		r.instance = problem.InstanceURI(r.base, problem.Number())
	})
	return r.instance
}

func (r *request) Logger() *zap.Logger { return r.log }
