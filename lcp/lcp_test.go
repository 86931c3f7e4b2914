// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lcp

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alancleary/mr-cfg/csa"
	"github.com/alancleary/mr-cfg/internal/testutil"
)

// naiveInterval is an LCP-interval computed from first principles.
type naiveInterval struct {
	LCP, Begin, End, Extensions int
}

// naiveIntervals enumerates the LCP-intervals of text by sorting the
// suffixes, building the LCP array, and sweeping it with the classic stack
// algorithm. Extension counts come from scanning the BWT range directly.
func naiveIntervals(text []byte) []naiveInterval {
	n := len(text) + 1
	comps := make([]int, n)
	var char2comp [256]int
	next := 1
	for b := 0; b < 256; b++ {
		for _, c := range text {
			if int(c) == b {
				char2comp[b] = next
				next++
				break
			}
		}
	}
	for i, b := range text {
		comps[i] = char2comp[b]
	}

	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(x, y int) bool {
		i, j := sa[x], sa[y]
		for {
			if comps[i] != comps[j] {
				return comps[i] < comps[j]
			}
			i++
			j++
		}
	})

	bwt := make([]int, n)
	for i, p := range sa {
		if p == 0 {
			bwt[i] = comps[n-1]
		} else {
			bwt[i] = comps[p-1]
		}
	}
	extensions := func(lb, rb int) int {
		seen := make(map[int]bool)
		for _, v := range bwt[lb : rb+1] {
			seen[v] = true
		}
		return len(seen)
	}

	lcp := make([]int, n+1)
	for i := 1; i < n; i++ {
		a, b := sa[i-1], sa[i]
		for comps[a] == comps[b] {
			lcp[i]++
			a++
			b++
		}
	}
	lcp[n] = -1 // flushes the stack, root included

	var out []naiveInterval
	type ent struct{ lcp, lb int }
	stack := []ent{{0, 0}}
	for i := 1; i <= n; i++ {
		lb := i - 1
		for len(stack) > 0 && lcp[i] < stack[len(stack)-1].lcp {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			out = append(out, naiveInterval{top.lcp, top.lb, i - 1, extensions(top.lb, i-1)})
			lb = top.lb
		}
		if len(stack) > 0 && lcp[i] > stack[len(stack)-1].lcp {
			stack = append(stack, ent{lcp[i], lb})
		}
	}
	return out
}

var testStrings = []string{
	"",
	"a",
	"ab",
	"abab",
	"aaaaaa",
	"banana",
	"mississippi",
	"abcabcabc",
	"abracadabra",
	"SIX.MIXED.PIXIES.SIFT.SIXTY.PIXIE.DUST.BOXES",
}

func collect(idx *csa.CSA) []Interval {
	var out []Interval
	it := NewIterator(idx)
	for it.Next() {
		out = append(out, it.Current())
	}
	return out
}

func TestIntervals(t *testing.T) {
	for i, s := range testStrings {
		text := []byte(s)
		got := collect(csa.New(text))

		// The first interval is the length-0 one spanning everything.
		n := len(text) + 1
		if len(got) == 0 || got[0].LCP != 0 || got[0].Begin != 0 || got[0].End != n-1 {
			t.Errorf("test %d (%q), first interval = %+v, want length-0 over [0,%d]", i, s, got[0], n-1)
		}

		// Intervals arrive in LCP order.
		for j := 1; j < len(got); j++ {
			if got[j].LCP < got[j-1].LCP {
				t.Errorf("test %d (%q), LCP order violated at %d: %+v after %+v", i, s, j, got[j], got[j-1])
			}
		}

		// Exactly the LCP-intervals of the text, each exactly once.
		gotSet := make([]naiveInterval, len(got))
		for j, iv := range got {
			gotSet[j] = naiveInterval{iv.LCP, iv.Begin, iv.End, iv.Extensions}
		}
		want := naiveIntervals(text)
		less := func(a, b naiveInterval) bool {
			if a.LCP != b.LCP {
				return a.LCP < b.LCP
			}
			return a.Begin < b.Begin
		}
		sort.Slice(gotSet, func(x, y int) bool { return less(gotSet[x], gotSet[y]) })
		sort.Slice(want, func(x, y int) bool { return less(want[x], want[y]) })
		if diff := cmp.Diff(want, gotSet); diff != "" {
			t.Errorf("test %d (%q), interval mismatch (-want +got):\n%s", i, s, diff)
		}
	}
}

func TestIntervalsRandom(t *testing.T) {
	rd := testutil.NewRand(97)
	for i := 0; i < 16; i++ {
		text := rd.BytesOver(1+rd.Intn(256), 2+rd.Intn(4))
		got := collect(csa.New(text))
		gotSet := make([]naiveInterval, len(got))
		for j, iv := range got {
			gotSet[j] = naiveInterval{iv.LCP, iv.Begin, iv.End, iv.Extensions}
		}
		want := naiveIntervals(text)
		less := func(a, b naiveInterval) bool {
			if a.LCP != b.LCP {
				return a.LCP < b.LCP
			}
			return a.Begin < b.Begin
		}
		sort.Slice(gotSet, func(x, y int) bool { return less(gotSet[x], gotSet[y]) })
		sort.Slice(want, func(x, y int) bool { return less(want[x], want[y]) })
		if diff := cmp.Diff(want, gotSet); diff != "" {
			t.Fatalf("test %d (%q), interval mismatch (-want +got):\n%s", i, text, diff)
		}
	}
}

func TestLocalMax(t *testing.T) {
	vectors := []struct {
		input string
		want  map[naiveInterval]bool // (LCP, Begin, End, Extensions) -> LocalMax
	}{{
		input: "abab",
		want: map[naiveInterval]bool{
			{0, 0, 4, 3}: false, // root
			{1, 3, 4, 1}: true,  // "b"
			{2, 1, 2, 2}: true,  // "ab"
		},
	}, {
		input: "banana",
		want: map[naiveInterval]bool{
			{0, 0, 6, 4}: false, // root
			{1, 1, 3, 2}: false, // "a", which embeds the "ana" interval
			{2, 5, 6, 1}: true,  // "na"
			{3, 2, 3, 2}: true,  // "ana"
		},
	}}
	for i, v := range vectors {
		got := collect(csa.New([]byte(v.input)))
		if len(got) != len(v.want) {
			t.Errorf("test %d (%q), interval count = %d, want %d", i, v.input, len(got), len(v.want))
			continue
		}
		for _, iv := range got {
			key := naiveInterval{iv.LCP, iv.Begin, iv.End, iv.Extensions}
			want, ok := v.want[key]
			if !ok {
				t.Errorf("test %d (%q), unexpected interval %+v", i, v.input, iv)
				continue
			}
			if iv.LocalMax != want {
				t.Errorf("test %d (%q), interval %+v LocalMax = %v, want %v", i, v.input, key, iv.LocalMax, want)
			}
		}
	}
}
