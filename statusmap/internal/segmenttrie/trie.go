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

package segmenttrie

import (
	"errors"
	"strings"
)

// Trie indexes dot-separated reason prefixes segment by segment. The segment
// "*" matches exactly one segment. Lookups return the deepest matching rule,
// so "storage.pg.connect" beats "storage.pg"; at equal depth an exact
// segment beats a wildcard.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the rule as inserted; kept for Explain.
	pattern string
	// depth is the number of segments in pattern.
	depth int
}

// ErrInvalidPrefix is returned for empty prefixes, empty or malformed
// segments, and prefixes made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates prefix with val, replacing an earlier value for the
// same prefix.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	concrete := false
	for _, s := range segs {
		if s == "*" {
			continue
		}
		if !ValidSegment(s) {
			return ErrInvalidPrefix
		}
		concrete = true
	}
	if !concrete {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		next, ok := cur.children[s]
		if !ok {
			next = New[T]()
			cur.children[s] = next
		}
		cur = next
	}
	cur.hasVal, cur.val, cur.pattern, cur.depth = true, val, prefix, len(segs)
	return nil
}

// Match returns the value of the deepest rule matching reason.
func (t *Trie[T]) Match(reason string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(reason)
	return v, ok
}

// MatchWithPattern is Match that also returns the matched rule.
func (t *Trie[T]) MatchWithPattern(reason string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best := t.walk(reason, 0, nil)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// walk explores exact and wildcard branches from offset off and returns the
// deepest node carrying a value. Exact children are visited first and only a
// strictly deeper node replaces the current best, so exact wins ties.
// Segments are sliced from reason without allocating.
func (t *Trie[T]) walk(reason string, off int, best *Trie[T]) *Trie[T] {
	if t.hasVal && (best == nil || t.depth > best.depth) {
		best = t
	}
	if off >= len(reason) {
		return best
	}
	end := strings.IndexByte(reason[off:], '.')
	if end < 0 {
		end = len(reason)
	} else {
		end += off
	}
	seg := reason[off:end]
	if !ValidSegment(seg) {
		return best
	}
	for _, key := range [2]string{seg, "*"} {
		if child, ok := t.children[key]; ok {
			best = child.walk(reason, end+1, best)
		}
	}
	return best
}

// ValidSegment reports whether seg matches [a-z][a-z0-9_]*.
func ValidSegment(seg string) bool {
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
