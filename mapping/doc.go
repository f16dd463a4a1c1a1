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

// Package mapping implements the mapper chain for declared API faults
// (*dproblem.Error). A mapper is bound to a category tag and turns the
// fault's own payload into a problem description, typically by renaming it
// or overriding its status:
//
//	chain, err := mapping.NewChain(env,
//	    mapping.Rename(code.NotFound, "Parcel not found"),
//	    mapping.OverrideStatus(code.Conflict, http.StatusUnprocessableEntity),
//	)
//
// Unlike classifiers, mappers are not ordered: Matches returns every mapper
// owning a fault and the caller decides what to do when there is more than
// one.
package mapping
