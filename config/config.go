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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/problem"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownFormat is returned by Load for unsupported file extensions.
	ErrUnknownFormat = errors.New("config: unknown format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Config is threaded into classifier and mapper construction. It carries
// the environment-specific knobs of problem rendering.
type Config struct {
	// Environment is informational ("production", "staging", ...).
	Environment string `toml:"environment" yaml:"environment"`

	// TypeNamespace is the URN namespace of problem type URIs.
	TypeNamespace string `toml:"type_namespace" yaml:"type_namespace"`

	// InstanceBaseURI prefixes problem numbers in instance URIs. When empty,
	// transports derive one from the request.
	InstanceBaseURI string `toml:"instance_base_uri" yaml:"instance_base_uri"`

	// DefaultTitle replaces problem.DefaultTitle.
	DefaultTitle string `toml:"default_title" yaml:"default_title"`

	// ExposeDetail keeps fault messages in 5xx problem details. Meant for
	// development environments only.
	ExposeDetail bool `toml:"expose_detail" yaml:"expose_detail"`

	// Labels maps internal handled-type names to public log labels.
	Labels map[string]string `toml:"labels" yaml:"labels"`

	// Statuses replaces the default HTTP status of a category.
	Statuses map[string]int `toml:"statuses" yaml:"statuses"`
}

// Default returns the configuration used when none is supplied.
func Default() Config {
	return Config{
		Environment:   "production",
		TypeNamespace: problem.DefaultNamespace,
		DefaultTitle:  problem.DefaultTitle,
	}
}

// WithDefaults returns c with blank fields filled from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.Environment == "" {
		c.Environment = d.Environment
	}
	if c.TypeNamespace == "" {
		c.TypeNamespace = d.TypeNamespace
	}
	if c.DefaultTitle == "" {
		c.DefaultTitle = d.DefaultTitle
	}
	return c
}

// Validate checks status codes and category names.
func (c Config) Validate() error {
	if strings.ContainsAny(c.TypeNamespace, " /") {
		return fmt.Errorf("%w: type_namespace %q must not contain spaces or slashes", ErrInvalid, c.TypeNamespace)
	}
	for k, v := range c.Statuses {
		if _, err := code.Parse(k); err != nil {
			return fmt.Errorf("%w: statuses: %q: %w", ErrInvalid, k, err)
		}
		if v < 100 || v > 599 {
			return fmt.Errorf("%w: statuses: %q: status %d out of range", ErrInvalid, k, v)
		}
	}
	return nil
}

// StatusDefaults returns Statuses keyed by parsed code. Call Validate first;
// unparsable keys are skipped.
func (c Config) StatusDefaults() map[code.Code]int {
	if len(c.Statuses) == 0 {
		return nil
	}
	out := make(map[code.Code]int, len(c.Statuses))
	for k, v := range c.Statuses {
		if cc, err := code.Parse(k); err == nil {
			out[cc] = v
		}
	}
	return out
}

// ProblemDefaults returns the values used to complete partial problems.
func (c Config) ProblemDefaults() problem.Defaults {
	return problem.Defaults{Title: c.DefaultTitle, Namespace: c.TypeNamespace}
}

// Load reads, parses and validates the file at path. The format follows the
// extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	var f Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		f = FormatTOML
	case ".yaml", ".yml":
		f = FormatYAML
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, f)
}

// Parse decodes data, applies defaults and validates the result.
func Parse(data []byte, f Format) (Config, error) {
	var c Config
	switch f {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
			return Config{}, fmt.Errorf("config: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
