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

// Package classify implements the classifier chain: an ordered list of
// capability-checked classifiers, each owning one fault category.
//
// Resolution is first-match-wins, not most-specific-match. Custom
// classifiers are placed ahead of the built-in ones (see Defaults), which
// lets callers override the default treatment of any fault type:
//
//	chain := classify.NewChain(
//	    []classify.Classifier{
//	        classify.OfType[*store.ConflictError]("ConflictError", describeConflict),
//	    },
//	    classify.Defaults(cfg, statuses),
//	)
//
// Built-in classifiers match on capabilities from package apis and on
// well-known standard library and gRPC error types; they never inspect
// message text.
package classify
