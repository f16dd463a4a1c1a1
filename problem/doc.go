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

// Package problem defines the problem description: the single
// machine-readable error payload every fault is turned into.
//
// Wire shape:
//
//	{
//	  "httpStatus": 404,
//	  "title": "Not Found",
//	  "detail": "parcel 42 does not exist",
//	  "problemTypeUri": "urn:dirpx.problem:not-found",
//	  "problemInstanceUri": "https://api.example.com/problems/4f1c..."
//	}
//
// Type URIs identify the category and are stable across releases. Instance
// URIs identify one occurrence and are what operators search logs for.
package problem
