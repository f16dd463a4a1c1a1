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

package classify

import (
	"context"
	"errors"

	"dirpx.dev/dproblem/problem"
)

// Classifier owns one fault category and turns matching faults into a
// problem description.
type Classifier interface {
	// HandledType names the fault type the classifier owns. It is the
	// "handled type" label in logs, after public-label remapping.
	HandledType() string

	// Handles reports whether the classifier owns err. It must be cheap and
	// side-effect free.
	Handles(err error) bool

	// Classify builds the description. It may block on ctx-aware work. A
	// returned error is a fault of its own and is propagated by the
	// pipeline, not swallowed.
	Classify(ctx context.Context, err error) (*problem.Problem, error)
}

// Func is the signature of a classification function.
type Func func(ctx context.Context, err error) (*problem.Problem, error)

type funcClassifier struct {
	handledType string
	handles     func(error) bool
	classify    Func
}

func (c *funcClassifier) HandledType() string    { return c.handledType }
func (c *funcClassifier) Handles(err error) bool { return c.handles(err) }
func (c *funcClassifier) Classify(ctx context.Context, err error) (*problem.Problem, error) {
	return c.classify(ctx, err)
}

// New builds a Classifier from a predicate and a function.
func New(handledType string, handles func(error) bool, fn Func) Classifier {
	return &funcClassifier{handledType: handledType, handles: handles, classify: fn}
}

// OfType builds a Classifier owning every fault that has a T in its chain
// (errors.As). fn receives the matched T.
func OfType[T error](handledType string, fn func(ctx context.Context, target T) (*problem.Problem, error)) Classifier {
	return &funcClassifier{
		handledType: handledType,
		handles: func(err error) bool {
			var target T
			return errors.As(err, &target)
		},
		classify: func(ctx context.Context, err error) (*problem.Problem, error) {
			var target T
			if !errors.As(err, &target) {
				return nil, errors.New("classify: " + handledType + ": fault does not match")
			}
			return fn(ctx, target)
		},
	}
}

// Chain is an ordered, immutable list of classifiers. The first classifier
// whose Handles returns true wins; later ones are never consulted.
type Chain struct {
	classifiers []Classifier
}

// NewChain places custom classifiers before defaults, so callers can
// override built-in behavior for any fault type. Nil entries are dropped.
func NewChain(custom, defaults []Classifier) Chain {
	all := make([]Classifier, 0, len(custom)+len(defaults))
	for _, group := range [2][]Classifier{custom, defaults} {
		for _, c := range group {
			if c != nil {
				all = append(all, c)
			}
		}
	}
	return Chain{classifiers: all}
}

// Resolve returns the first classifier owning err, or nil.
func (c Chain) Resolve(err error) Classifier {
	for _, cl := range c.classifiers {
		if cl.Handles(err) {
			return cl
		}
	}
	return nil
}

// Len returns the number of classifiers.
func (c Chain) Len() int { return len(c.classifiers) }
