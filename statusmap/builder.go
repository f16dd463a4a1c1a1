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

package statusmap

import (
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/dproblem/code"
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is raw; it is normalized and validated in New.
	prefix string
	val    int
}

// builder accumulates options. gRPC values are kept as int for symmetry
// with HTTP and converted when the snapshot is frozen.
type builder struct {
	httpDefaults map[code.Code]int
	grpcDefaults map[code.Code]int
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]int
	httpPrefixes map[code.Code][]prefixRule
	grpcPrefixes map[code.Code][]prefixRule

	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[code.Code]int, len(defaultHTTP)),
		grpcDefaults: make(map[code.Code]int, len(defaultGRPC)),
		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]int),
		httpPrefixes: make(map[code.Code][]prefixRule),
		grpcPrefixes: make(map[code.Code][]prefixRule),
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}

// ErrInvalidStatus is returned for HTTP statuses outside 100..599 and for
// values that are not canonical gRPC codes.
var ErrInvalidStatus = errors.New("statusmap: invalid status")

// validate checks every value set by options before the snapshot is built.
func (b *builder) validate() error {
	for _, m := range [...]map[code.Code]int{b.httpDefaults, b.httpOverride} {
		for c, v := range m {
			if !validHTTP(v) {
				return fmt.Errorf("%w: HTTP %d for code %q", ErrInvalidStatus, v, c)
			}
		}
	}
	for _, m := range [...]map[code.Code]int{b.grpcDefaults, b.grpcOverride} {
		for c, v := range m {
			if !validGRPC(v) {
				return fmt.Errorf("%w: gRPC %d for code %q", ErrInvalidStatus, v, c)
			}
		}
	}
	for c, rs := range b.httpPrefixes {
		for _, r := range rs {
			if !validHTTP(r.val) {
				return fmt.Errorf("%w: HTTP %d for code %q prefix %q", ErrInvalidStatus, r.val, c, r.prefix)
			}
		}
	}
	for c, rs := range b.grpcPrefixes {
		for _, r := range rs {
			if !validGRPC(r.val) {
				return fmt.Errorf("%w: gRPC %d for code %q prefix %q", ErrInvalidStatus, r.val, c, r.prefix)
			}
		}
	}
	return nil
}

func validHTTP(v int) bool { return v >= 100 && v <= 599 }

func validGRPC(v int) bool { return v >= int(codes.OK) && v <= int(codes.Unauthenticated) }
