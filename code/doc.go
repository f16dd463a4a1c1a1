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

// Package code defines category tags for declared API faults.
//
// A code is short, stable, lowercase and underscore-separated ("not_found",
// "already_exists"). Codes key mapper bindings and status rules, and their
// slug form ends up in problem type URIs, so they are part of the public
// contract of an API.
package code
