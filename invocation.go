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

package dproblem

import (
	"fmt"
	"runtime/debug"
)

// InvocationError is the wrapper fault produced when a dynamically dispatched
// handler panics. It is an artifact of dispatch, not a failure category: the
// pipeline replaces it with Inner before classification.
type InvocationError struct {
	// Inner is the panic value when that value is an error, nil otherwise.
	Inner error
	// Value is the raw recovered panic value.
	Value any
	// Stack is the goroutine stack captured at recovery time. Logged, never
	// sent to clients.
	Stack []byte
}

func (e *InvocationError) Error() string {
	if e.Inner != nil {
		return "invocation failed: " + e.Inner.Error()
	}
	return fmt.Sprintf("invocation panicked: %v", e.Value)
}

func (e *InvocationError) Unwrap() error { return e.Inner }

// Invoke runs fn and turns a panic into an *InvocationError. Errors returned
// by fn are passed through untouched.
func Invoke(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ie := &InvocationError{Value: r, Stack: debug.Stack()}
			if inner, ok := r.(error); ok {
				ie.Inner = inner
			}
			err = ie
		}
	}()
	return fn()
}
