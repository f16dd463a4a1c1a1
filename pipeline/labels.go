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

import "dirpx.dev/dproblem/classify"

// Labels maps internal handled-type names to the public labels used in logs.
// Names without an entry are logged as is.
type Labels map[string]string

// DefaultLabels returns the built-in table.
func DefaultLabels() Labels {
	return Labels{classify.NotFoundType: "NotFoundException"}
}

// Public returns the public label of name.
func (l Labels) Public(name string) string {
	if pub, ok := l[name]; ok && pub != "" {
		return pub
	}
	return name
}

// with returns a copy of l extended by m; m wins.
func (l Labels) with(m map[string]string) Labels {
	out := make(Labels, len(l)+len(m))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}
