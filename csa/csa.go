// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package csa implements a compressed suffix array: an FM-index over the
// Burrows-Wheeler transform of a text, with the BWT held in a wavelet tree.
//
// The text handed to New may contain arbitrary bytes. Construction appends a
// sentinel that compares smaller than every byte; in the compact alphabet the
// sentinel is always symbol 0 and the input bytes occupy symbols 1 and up.
package csa

import (
	"github.com/alancleary/mr-cfg/csa/internal/sais"
)

// CSA is a compressed suffix array over a byte text plus sentinel.
// It is immutable after construction.
type CSA struct {
	text      []byte  // input text, without the sentinel
	comps     []int32 // compact-alphabet text, with the sentinel
	sigma     int     // number of distinct symbols, sentinel included
	char2comp [256]int32
	comp2char []byte
	cnt       []int // cnt[k] is the number of text symbols smaller than k
	sa        []int32
	isa       []int32
	wt        *waveletTree
}

// New builds the CSA for the given text. The text is retained by the CSA and
// must not be modified afterwards.
func New(text []byte) *CSA {
	n := len(text) + 1

	var present [256]bool
	for _, b := range text {
		present[b] = true
	}
	c := &CSA{text: text}
	c.comp2char = append(c.comp2char, 0) // symbol 0 is the sentinel
	for b := 0; b < 256; b++ {
		if present[b] {
			c.char2comp[b] = int32(len(c.comp2char))
			c.comp2char = append(c.comp2char, byte(b))
		}
	}
	c.sigma = len(c.comp2char)

	c.comps = make([]int32, n)
	for i, b := range text {
		c.comps[i] = c.char2comp[b]
	}

	c.sa = make([]int32, n)
	sais.ComputeSA(c.comps, c.sa, c.sigma)
	c.isa = make([]int32, n)
	for i, p := range c.sa {
		c.isa[p] = int32(i)
	}

	c.cnt = make([]int, c.sigma+1)
	for _, v := range c.comps {
		c.cnt[v+1]++
	}
	for k := 1; k <= c.sigma; k++ {
		c.cnt[k] += c.cnt[k-1]
	}

	bwt := make([]int32, n)
	for i, p := range c.sa {
		if p == 0 {
			bwt[i] = c.comps[n-1]
		} else {
			bwt[i] = c.comps[p-1]
		}
	}
	c.wt = newWaveletTree(bwt, c.sigma)
	return c
}

// Size reports the length of the indexed text, sentinel included.
func (c *CSA) Size() int { return len(c.sa) }

// Sigma reports the number of distinct symbols, sentinel included.
func (c *CSA) Sigma() int { return c.sigma }

// C reports the number of text symbols strictly smaller than compact symbol k.
// The suffix array rows for k form the half-open range [C(k), C(k+1)).
func (c *CSA) C(k int) int { return c.cnt[k] }

// SA reports the text position of the i-th smallest suffix.
func (c *CSA) SA(i int) int { return int(c.sa[i]) }

// ISA reports the suffix array row of the suffix starting at text position i.
func (c *CSA) ISA(i int) int { return int(c.isa[i]) }

// Comp maps a raw byte to its compact symbol. Bytes absent from the text
// map to 0.
func (c *CSA) Comp(b byte) int { return int(c.char2comp[b]) }

// Char maps a compact symbol back to its raw byte. Symbol 0 is the sentinel
// and has no byte; Char(0) returns 0.
func (c *CSA) Char(k int) byte { return c.comp2char[k] }

// CompAt reports the compact symbol at text position i. Position Size()-1 is
// the sentinel.
func (c *CSA) CompAt(i int) int { return int(c.comps[i]) }

// Alphabet returns the compact-to-raw symbol table, indexed by compact
// symbol. Entry 0 is the sentinel placeholder. The caller must not modify
// the returned slice.
func (c *CSA) Alphabet() []byte { return c.comp2char }

// Bytes returns the indexed text without the sentinel. The caller must not
// modify the returned slice.
func (c *CSA) Bytes() []byte { return c.text }

// IntervalSymbols reports the distinct symbols preceding the suffixes in rows
// [lb, rb) of the suffix array, i.e. the distinct symbols of bwt[lb..rb).
// The symbols are written to syms, and for the j-th symbol rankLb[j] and
// rankRb[j] receive its number of occurrences in bwt[0..lb) and bwt[0..rb).
// All three slices must have room for Sigma() entries. The number of distinct
// symbols is returned.
func (c *CSA) IntervalSymbols(lb, rb int, syms, rankLb, rankRb []int) int {
	return intervalSymbols(c.wt.root, lb, rb, 0, syms, rankLb, rankRb)
}
