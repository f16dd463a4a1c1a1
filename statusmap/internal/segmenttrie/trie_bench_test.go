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
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// segment returns a random segment matching [a-z][a-z0-9_]{2,7}.
func segment(rng *rand.Rand) string {
	const tail = "abcdefghijklmnopqrstuvwxyz0123456789_"
	n := 3 + rng.Intn(6)
	b := make([]byte, n)
	b[0] = byte('a' + rng.Intn(26))
	for i := 1; i < n; i++ {
		b[i] = tail[rng.Intn(len(tail))]
	}
	return string(b)
}

// rule returns a prefix of depth segments. With wildcards set, the middle
// segment of rules deeper than two is "*".
func rule(rng *rand.Rand, depth int, wildcards bool) string {
	segs := make([]string, depth)
	for i := range segs {
		segs[i] = segment(rng)
	}
	if wildcards && depth > 2 {
		segs[depth/2] = "*"
	}
	return strings.Join(segs, ".")
}

// concrete fills the wildcards of r and appends one more segment so the
// rule is matched as a proper prefix.
func concrete(rng *rand.Rand, r string) string {
	segs := strings.Split(r, ".")
	for i, s := range segs {
		if s == "*" {
			segs[i] = segment(rng)
		}
	}
	return strings.Join(append(segs, segment(rng)), ".")
}

// loaded builds a trie of n rules and a query set with one hit per rule and
// one miss per eight rules.
func loaded(b *testing.B, n, depth int, wildcards bool) (*Trie[int], []string) {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	tr := New[int]()
	reasons := make([]string, 0, n+n/8+1)
	for i := 0; i < n; i++ {
		r := rule(rng, depth, wildcards)
		if err := tr.Insert(r, 400+i%200); err != nil {
			b.Fatalf("insert %q: %v", r, err)
		}
		reasons = append(reasons, concrete(rng, r))
	}
	for i := 0; i < n/8+1; i++ {
		reasons = append(reasons, rule(rng, depth+1, false))
	}
	return tr, reasons
}

type shape struct {
	rules     int
	depth     int
	wildcards bool
}

func (s shape) String() string {
	w := "exact"
	if s.wildcards {
		w = "wildcard"
	}
	return fmt.Sprintf("rules=%d,depth=%d,%s", s.rules, s.depth, w)
}

var shapes = []shape{
	{rules: 8, depth: 2},
	{rules: 64, depth: 3},
	{rules: 512, depth: 3},
	{rules: 512, depth: 4, wildcards: true},
	{rules: 4096, depth: 4},
}

func BenchmarkInsert(b *testing.B) {
	for _, s := range shapes {
		b.Run(s.String(), func(b *testing.B) {
			rng := rand.New(rand.NewSource(2))
			rules := make([]string, s.rules)
			for i := range rules {
				rules[i] = rule(rng, s.depth, s.wildcards)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tr := New[int]()
				for j, r := range rules {
					if err := tr.Insert(r, j); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

func BenchmarkMatchRules(b *testing.B) {
	for _, s := range shapes {
		b.Run(s.String(), func(b *testing.B) {
			tr, reasons := loaded(b, s.rules, s.depth, s.wildcards)
			b.ReportAllocs()
			b.ResetTimer()
			hits := 0
			for i := 0; i < b.N; i++ {
				if _, ok := tr.Match(reasons[i%len(reasons)]); ok {
					hits++
				}
			}
			if hits == 0 {
				b.Fatal("no reason matched")
			}
		})
	}
}

func BenchmarkMatchRulesParallel(b *testing.B) {
	for _, s := range shapes[2:] {
		b.Run(s.String(), func(b *testing.B) {
			tr, reasons := loaded(b, s.rules, s.depth, s.wildcards)
			b.ReportAllocs()
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					_, _ = tr.Match(reasons[i%len(reasons)])
					i++
				}
			})
		})
	}
}

// BenchmarkMatchDeepest measures a reason that passes every level of a
// chain of nested rules before the deepest one wins.
func BenchmarkMatchDeepest(b *testing.B) {
	rng := rand.New(rand.NewSource(3))
	segs := make([]string, 4)
	for i := range segs {
		segs[i] = segment(rng)
	}
	tr := New[int]()
	for i := range segs {
		if err := tr.Insert(strings.Join(segs[:i+1], "."), i); err != nil {
			b.Fatal(err)
		}
	}
	reason := strings.Join(append(segs, "extra"), ".")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if v, ok := tr.Match(reason); !ok || v != len(segs)-1 {
			b.Fatalf("got %d, %v", v, ok)
		}
	}
}
