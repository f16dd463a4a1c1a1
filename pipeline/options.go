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
	"dirpx.dev/dproblem/classify"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/mapping"
	"dirpx.dev/dproblem/statusmap"
)

// Option configures a Pipeline at build time.
type Option func(*builder)

type builder struct {
	cfg         config.Config
	classifiers []classify.Classifier
	bindings    []mapping.Binding
	statusOpts  []statusmap.Option
	labels      map[string]string
}

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(b *builder) { b.cfg = cfg }
}

// WithClassifiers appends custom classifiers. They are consulted before the
// built-in ones, in the order given.
func WithClassifiers(cs ...classify.Classifier) Option {
	return func(b *builder) { b.classifiers = append(b.classifiers, cs...) }
}

// WithMappings appends mapper bindings for declared faults.
func WithMappings(bs ...mapping.Binding) Option {
	return func(b *builder) { b.bindings = append(b.bindings, bs...) }
}

// WithStatusOptions tunes the status mapper used by built-in classifiers
// and mappers. Applied after statuses from the configuration.
func WithStatusOptions(opts ...statusmap.Option) Option {
	return func(b *builder) { b.statusOpts = append(b.statusOpts, opts...) }
}

// WithLabel adds a public log label for an internal handled-type name.
func WithLabel(name, public string) Option {
	return func(b *builder) {
		if b.labels == nil {
			b.labels = make(map[string]string)
		}
		b.labels[name] = public
	}
}
