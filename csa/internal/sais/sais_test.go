// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

import (
	"sort"
	"testing"

	"github.com/alancleary/mr-cfg/internal/testutil"
)

// naiveSA sorts the suffixes directly.
func naiveSA(t []int32) []int32 {
	sa := make([]int32, len(t))
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(x, y int) bool {
		i, j := sa[x], sa[y]
		for int(i) < len(t) && int(j) < len(t) {
			if t[i] != t[j] {
				return t[i] < t[j]
			}
			i++
			j++
		}
		return int(i) == len(t)
	})
	return sa
}

// encode maps a string to the compact alphabet used by the CSA: byte value
// plus one, with a trailing 0 sentinel.
func encode(s string) (t []int32, sigma int) {
	t = make([]int32, len(s)+1)
	sigma = 1
	for i := 0; i < len(s); i++ {
		t[i] = int32(s[i]) + 1
		if int(t[i]) >= sigma {
			sigma = int(t[i]) + 1
		}
	}
	return t, sigma
}

func TestComputeSA(t *testing.T) {
	vectors := []string{
		"",
		"a",
		"aa",
		"ab",
		"abab",
		"aaaaaa",
		"banana",
		"mississippi",
		"abcabcabc",
		"abracadabra",
		"SIX.MIXED.PIXIES.SIFT.SIXTY.PIXIE.DUST.BOXES",
		"Mary had a little lamb, its fleece was white as snow",
	}
	for i, s := range vectors {
		text, sigma := encode(s)
		sa := make([]int32, len(text))
		ComputeSA(text, sa, sigma)
		want := naiveSA(text)
		for j := range sa {
			if sa[j] != want[j] {
				t.Errorf("test %d (%q), output mismatch at %d: got %d, want %d", i, s, j, sa[j], want[j])
				break
			}
		}
	}
}

func TestComputeSARandom(t *testing.T) {
	rd := testutil.NewRand(37)
	for i := 0; i < 32; i++ {
		n := 1 + rd.Intn(512)
		sigma := 2 + rd.Intn(6)
		text := make([]int32, n+1)
		for j := 0; j < n; j++ {
			text[j] = 1 + int32(rd.Intn(sigma-1))
		}
		sa := make([]int32, len(text))
		ComputeSA(text, sa, sigma)
		want := naiveSA(text)
		for j := range sa {
			if sa[j] != want[j] {
				t.Fatalf("test %d (n=%d sigma=%d), output mismatch at %d: got %d, want %d", i, n, sigma, j, sa[j], want[j])
			}
		}
	}
}
