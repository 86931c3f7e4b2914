// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
package sais

// This package implements the Suffix Array by Induced Sorting (SA-IS)
// methodology by Nong, Zhang, and Chan. Unlike the byte-oriented version used
// for BWT block sorting, this one operates on an integer alphabet so that the
// recursion on the reduced string and the compact-alphabet text of a CSA can
// share a single implementation.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://ge-nong.googlecode.com/files/Two%20Efficient%20Algorithms%20for%20Linear%20Time%20Suffix%20Array%20Construction.pdf

// ComputeSA computes the suffix array of t and places the result in sa.
// Both t and sa must be the same length. The text must terminate with a
// sentinel symbol 0 that appears nowhere else, and every symbol must be in
// the range [0, sigma).
func ComputeSA(t, sa []int32, sigma int) {
	if len(sa) != len(t) {
		panic("sais: mismatching sizes")
	}
	computeSA(t, sa, int32(sigma))
}

func computeSA(t, sa []int32, sigma int32) {
	n := len(t)
	for i := range sa {
		sa[i] = -1
	}
	switch n {
	case 0:
		return
	case 1:
		sa[0] = 0
		return
	}

	// Classify every position as S-type (true) or L-type (false).
	// The sentinel is S-type by definition.
	styp := make([]bool, n)
	styp[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case t[i] < t[i+1]:
			styp[i] = true
		case t[i] > t[i+1]:
			styp[i] = false
		default:
			styp[i] = styp[i+1]
		}
	}

	// Collect LMS positions in text order.
	var lms []int32
	for i := 1; i < n; i++ {
		if styp[i] && !styp[i-1] {
			lms = append(lms, int32(i))
		}
	}

	// First induction pass sorts the LMS substrings.
	induce(t, sa, styp, sigma, lms)

	// Name the LMS substrings in sorted order. Equal substrings share a name
	// so that the reduced string preserves the suffix order of the original.
	names := make([]int32, n)
	for i := range names {
		names[i] = -1
	}
	var name int32
	prev := int32(-1)
	for _, pos := range sa {
		if pos <= 0 || !styp[pos] || styp[pos-1] {
			continue
		}
		if prev >= 0 && !equalLMS(t, styp, prev, pos) {
			name++
		}
		names[pos] = name
		prev = pos
	}
	numNames := name + 1

	reduced := make([]int32, len(lms))
	for i, pos := range lms {
		reduced[i] = names[pos]
	}

	// Order the LMS suffixes, recursing only when some names collided.
	ordered := make([]int32, len(lms))
	if int(numNames) < len(reduced) {
		redSA := make([]int32, len(reduced))
		computeSA(reduced, redSA, numNames)
		for i, j := range redSA {
			ordered[i] = lms[j]
		}
	} else {
		for i, v := range reduced {
			ordered[v] = lms[i]
		}
	}

	// Second induction pass with the exactly sorted LMS suffixes.
	for i := range sa {
		sa[i] = -1
	}
	induce(t, sa, styp, sigma, ordered)
}

// induce seeds sa with the given LMS positions and induces the L-type and
// S-type suffixes around them.
func induce(t, sa []int32, styp []bool, sigma int32, lms []int32) {
	freq := make([]int32, sigma)
	for _, v := range t {
		freq[v]++
	}
	bucket := make([]int32, sigma)

	// Place LMS suffixes at their bucket tails.
	bucketTails(freq, bucket)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := t[pos]
		sa[bucket[c]] = pos
		bucket[c]--
	}

	// Induce L-type suffixes left to right.
	bucketHeads(freq, bucket)
	for i := 0; i < len(sa); i++ {
		pos := sa[i]
		if pos > 0 && !styp[pos-1] {
			c := t[pos-1]
			sa[bucket[c]] = pos - 1
			bucket[c]++
		}
	}

	// Induce S-type suffixes right to left.
	bucketTails(freq, bucket)
	for i := len(sa) - 1; i >= 0; i-- {
		pos := sa[i]
		if pos > 0 && styp[pos-1] {
			c := t[pos-1]
			sa[bucket[c]] = pos - 1
			bucket[c]--
		}
	}
}

func bucketHeads(freq, bucket []int32) {
	var sum int32
	for i, n := range freq {
		bucket[i] = sum
		sum += n
	}
}

func bucketTails(freq, bucket []int32) {
	var sum int32
	for i, n := range freq {
		sum += n
		bucket[i] = sum - 1
	}
}

// equalLMS reports whether the LMS substrings starting at i and j are equal.
func equalLMS(t []int32, styp []bool, i, j int32) bool {
	n := int32(len(t))
	for k := int32(0); ; k++ {
		if t[i+k] != t[j+k] {
			return false
		}
		iLMS := i+k > 0 && k > 0 && styp[i+k] && !styp[i+k-1]
		jLMS := j+k > 0 && k > 0 && styp[j+k] && !styp[j+k-1]
		if iLMS && jLMS {
			return true
		}
		if iLMS != jLMS {
			return false
		}
		if i+k+1 >= n || j+k+1 >= n {
			return false
		}
	}
}
