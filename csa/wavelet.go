// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package csa

// The wavelet tree stores the BWT as a balanced binary tree over the compact
// alphabet. Each internal node holds one bit per position, 1 meaning the
// symbol belongs to the upper half of the node's alphabet range. The bits are
// kept in roaring bitmaps, which double as the rank structure.

import "github.com/RoaringBitmap/roaring"

type waveletTree struct {
	root  *wtNode
	sigma int
}

type wtNode struct {
	lo, hi      int // alphabet range [lo, hi)
	bits        *roaring.Bitmap
	left, right *wtNode
}

func newWaveletTree(seq []int32, sigma int) *waveletTree {
	return &waveletTree{root: newWTNode(seq, 0, sigma), sigma: sigma}
}

func newWTNode(seq []int32, lo, hi int) *wtNode {
	nd := &wtNode{lo: lo, hi: hi}
	if hi-lo == 1 {
		return nd
	}
	mid := (lo + hi) / 2
	nd.bits = roaring.New()
	var left, right []int32
	for i, v := range seq {
		if int(v) >= mid {
			nd.bits.Add(uint32(i))
			right = append(right, v)
		} else {
			left = append(left, v)
		}
	}
	nd.left = newWTNode(left, lo, mid)
	nd.right = newWTNode(right, mid, hi)
	return nd
}

// rank1 reports the number of 1-bits in positions [0, i).
func (nd *wtNode) rank1(i int) int {
	if i == 0 {
		return 0
	}
	return int(nd.bits.Rank(uint32(i - 1)))
}

// intervalSymbols descends the tree, narrowing the node-relative range [l, r)
// at each level. At a leaf the range bounds are exactly the symbol's ranks at
// the original interval bounds. Symbols are produced in increasing order.
func intervalSymbols(nd *wtNode, l, r, k int, syms, rankLb, rankRb []int) int {
	if l >= r {
		return k
	}
	if nd.hi-nd.lo == 1 {
		syms[k] = nd.lo
		rankLb[k] = l
		rankRb[k] = r
		return k + 1
	}
	l1, r1 := nd.rank1(l), nd.rank1(r)
	k = intervalSymbols(nd.left, l-l1, r-r1, k, syms, rankLb, rankRb)
	k = intervalSymbols(nd.right, l1, r1, k, syms, rankLb, rankRb)
	return k
}
