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
	"fmt"
	"strings"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/code"
	"dirpx.dev/dproblem/reason"
	"dirpx.dev/dproblem/statusmap/internal/segmenttrie"
	"google.golang.org/grpc/codes"
)

// New builds an immutable apis.StatusMapper snapshot.
//
//  1. Seed a builder with the library defaults.
//  2. Apply opts in order.
//  3. Normalize and validate every reason prefix, compiling them into one
//     segment trie per code and transport.
//  4. Copy everything into fresh maps, so neither the builder nor caller
//     data is referenced afterwards.
//
// Errors report invalid prefixes and out-of-range statuses.
func New(opts ...Option) (apis.StatusMapper, error) {
	b := newBuilder()
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}

	httpTrie, err := compile(b.httpPrefixes, func(v int) int { return v })
	if err != nil {
		return nil, fmt.Errorf("statusmap: HTTP %w", err)
	}
	grpcTrie, err := compile(b.grpcPrefixes, func(v int) codes.Code { return codes.Code(v) })
	if err != nil {
		return nil, fmt.Errorf("statusmap: gRPC %w", err)
	}

	return &mapper{
		httpDefault:  freeze(b.httpDefaults, func(v int) int { return v }),
		grpcDefault:  freeze(b.grpcDefaults, func(v int) codes.Code { return codes.Code(v) }),
		httpOverride: freeze(b.httpOverride, func(v int) int { return v }),
		grpcOverride: freeze(b.grpcOverride, func(v int) codes.Code { return codes.Code(v) }),
		httpTrie:     httpTrie,
		grpcTrie:     grpcTrie,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// mapper resolves statuses, highest precedence first:
//  1. exact per-code override;
//  2. per-code longest reason-prefix rule;
//  3. per-code default;
//  4. fallback (500 / codes.Internal).
//
// Lookups cost O(reason depth) and are safe for concurrent use.
type mapper struct {
	httpDefault  map[code.Code]int
	grpcDefault  map[code.Code]codes.Code
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code
	httpTrie     map[code.Code]*segmenttrie.Trie[int]
	grpcTrie     map[code.Code]*segmenttrie.Trie[codes.Code]
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// source names the tier a status came from.
type source string

const (
	srcOverride source = "override"
	srcPrefix   source = "prefix"
	srcDefault  source = "default"
	srcFallback source = "fallback"
)

func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	v, _, _ := resolve(c, r, m.httpOverride, m.httpTrie, m.httpDefault, m.fallbackHTTP)
	return v
}

func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	v, _, _ := resolve(c, r, m.grpcOverride, m.grpcTrie, m.grpcDefault, m.fallbackGRPC)
	return v
}

func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{HTTP: m.HTTPStatus(c, r), GRPC: m.GRPCStatus(c, r)}
}

// Explain renders how both statuses were chosen:
//
//	code="unavailable" reason="storage.pg.connect_timeout"
//	http: source=prefix pattern="storage.pg" -> 503
//	grpc: source=default -> UNAVAILABLE(14)
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q reason=%q\n", c, r)

	hv, hsrc, hpat := resolve(c, r, m.httpOverride, m.httpTrie, m.httpDefault, m.fallbackHTTP)
	b.WriteString(explainLine("http", hsrc, hpat, fmt.Sprintf("%d", hv)))
	b.WriteByte('\n')

	gv, gsrc, gpat := resolve(c, r, m.grpcOverride, m.grpcTrie, m.grpcDefault, m.fallbackGRPC)
	b.WriteString(explainLine("grpc", gsrc, gpat, fmt.Sprintf("%s(%d)", strings.ToUpper(gv.String()), int(gv))))
	return b.String()
}

func explainLine(transport string, src source, pattern, value string) string {
	if src == srcPrefix {
		return fmt.Sprintf("%s: source=%s pattern=%q -> %s", transport, src, pattern, value)
	}
	return fmt.Sprintf("%s: source=%s -> %s", transport, src, value)
}

// resolve walks the precedence tiers for one transport.
func resolve[T any](
	c code.Code,
	r reason.Reason,
	override map[code.Code]T,
	tries map[code.Code]*segmenttrie.Trie[T],
	defaults map[code.Code]T,
	fallback T,
) (T, source, string) {
	if v, ok := override[c]; ok {
		return v, srcOverride, ""
	}
	if t := tries[c]; t != nil {
		if v, ok, pat := t.MatchWithPattern(string(r)); ok {
			return v, srcPrefix, pat
		}
	}
	if v, ok := defaults[c]; ok {
		return v, srcDefault, ""
	}
	return fallback, srcFallback, ""
}

// compile turns raw prefix rules into per-code tries.
func compile[T any](rules map[code.Code][]prefixRule, conv func(int) T) (map[code.Code]*segmenttrie.Trie[T], error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make(map[code.Code]*segmenttrie.Trie[T], len(rules))
	for c, rs := range rules {
		if len(rs) == 0 {
			continue
		}
		t := segmenttrie.New[T]()
		for _, r := range rs {
			p := reason.Normalize(r.prefix)
			if err := t.Insert(p, conv(r.val)); err != nil {
				return nil, fmt.Errorf("reason-prefix %q for code %q: %w", r.prefix, c, err)
			}
		}
		out[c] = t
	}
	return out, nil
}

// freeze copies src into a fresh map, converting values. Empty maps become
// nil.
func freeze[T any](src map[code.Code]int, conv func(int) T) map[code.Code]T {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]T, len(src))
	for k, v := range src {
		dst[k] = conv(v)
	}
	return dst
}
