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

// Package config holds the settings threaded through classifier and mapper
// construction: URI namespaces, default title, detail verbosity, public log
// labels and per-category status replacements. Configuration may be built in
// code or loaded from TOML or YAML:
//
//	environment = "staging"
//	type_namespace = "acme.api"
//	instance_base_uri = "https://api.acme.test/problems"
//	expose_detail = true
//
//	[labels]
//	ParcelNotFound = "NotFoundException"
//
//	[statuses]
//	conflict = 422
package config
