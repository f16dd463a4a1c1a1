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
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/problem"
	"github.com/stretchr/testify/require"
)

const tomlDoc = `
environment = "staging"
type_namespace = "acme.api"
instance_base_uri = "https://api.acme.test/problems"
expose_detail = true

[labels]
ParcelNotFound = "NotFoundException"

[statuses]
conflict = 422
`

const yamlDoc = `
environment: staging
type_namespace: acme.api
instance_base_uri: https://api.acme.test/problems
expose_detail: true
labels:
  ParcelNotFound: NotFoundException
statuses:
  conflict: 422
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for name, doc := range map[string]string{"c.toml": tomlDoc, "c.yaml": yamlDoc, "c.yml": yamlDoc} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

			c, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, "staging", c.Environment)
			require.Equal(t, "acme.api", c.TypeNamespace)
			require.Equal(t, "https://api.acme.test/problems", c.InstanceBaseURI)
			require.True(t, c.ExposeDetail)
			require.Equal(t, problem.DefaultTitle, c.DefaultTitle)
			require.Equal(t, map[string]string{"ParcelNotFound": "NotFoundException"}, c.Labels)
			require.Equal(t, map[code.Code]int{code.Conflict: 422}, c.StatusDefaults())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("settings.json")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	c, err = Parse([]byte(""), FormatTOML)
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad status":    "[statuses]\nconflict = 999\n",
		"bad category":  "[statuses]\n\"x\" = 409\n",
		"bad namespace": "type_namespace = \"a/b\"\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), FormatTOML)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("unknown_key: 1\n"), FormatYAML)
	require.Error(t, err)
}

func TestWithDefaults_KeepsSetFields(t *testing.T) {
	c := Config{TypeNamespace: "acme", DefaultTitle: "Oeps"}.WithDefaults()
	require.Equal(t, "acme", c.TypeNamespace)
	require.Equal(t, "Oeps", c.DefaultTitle)
	require.Equal(t, "production", c.Environment)
	require.Equal(t, problem.Defaults{Title: "Oeps", Namespace: "acme"}, c.ProblemDefaults())
}
