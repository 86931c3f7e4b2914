// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lcp enumerates the LCP-intervals of a text from its compressed
// suffix array.
//
// The algorithm is the queue-based traversal from "Space-Efficient
// Computation of Maximal and Supermaximal Repeats in Genome Sequences" by
// Beller, Berger, and Ohlebusch. Intervals are produced in
// length-lexicographic order: by LCP value ascending, and within one LCP
// value in alphabetical order of the leading symbol. The whole enumeration
// runs in O(n log sigma) wavelet tree operations.
package lcp

import "github.com/alancleary/mr-cfg/csa"

// Interval is one LCP-interval of the text: the suffix array rows
// [Begin, End] share exactly LCP leading symbols.
type Interval struct {
	LCP   int
	Begin int // first suffix array row, inclusive
	End   int // last suffix array row, inclusive

	// Extensions is the number of distinct symbols preceding the suffixes in
	// the interval, sentinel included. The interval is a maximal repeat when
	// Extensions > 1.
	Extensions int

	// LocalMax reports whether the interval is a local maximum, i.e. its
	// final child range is a single row. The grammar construction does not
	// consume it; it classifies supermaximal repeats.
	LocalMax bool
}

// Iterator lazily produces every LCP-interval of a text exactly once.
//
// The first produced interval is always the LCP-value-0 interval spanning
// the whole suffix array; consumers typically discard it. Current returns a
// copy of the latest interval, so the value stays valid across later calls
// to Next.
type Iterator struct {
	idx   *csa.CSA
	sigma int

	queues  []pairQueue // one FIFO of (lb, rb) pairs per compact symbol
	sizes   []int       // pairs left in each queue for the current LCP value
	pending int         // pairs queued across all queues

	finished []bool // suffix array rows already closing an interval

	lcpValue int
	alpha    int  // queue currently being drained
	inRound  bool // sizes snapshot taken for lcpValue

	lastLb  int
	lastIdx int
	locMax  bool

	ext      []bool // distinct preceding symbols of the interval being closed
	extCnt   int
	extTouch []int

	syms, rankLb, rankRb []int // scratch for IntervalSymbols

	cur Interval
}

// NewIterator creates an iterator over all LCP-intervals of the indexed text.
func NewIterator(idx *csa.CSA) *Iterator {
	n := idx.Size()
	sigma := idx.Sigma()
	it := &Iterator{
		idx:      idx,
		sigma:    sigma,
		queues:   make([]pairQueue, sigma),
		sizes:    make([]int, sigma),
		finished: make([]bool, n+1),
		locMax:   true,
		ext:      make([]bool, sigma),
		extTouch: make([]int, 0, sigma),
		syms:     make([]int, sigma),
		rankLb:   make([]int, sigma),
		rankRb:   make([]int, sigma),
	}
	it.finished[0] = true
	it.finished[n] = true
	for k := 0; k < sigma; k++ {
		it.queues[k].push(idx.C(k), idx.C(k+1))
		it.pending++
	}
	return it
}

// Current returns the most recently produced interval.
func (it *Iterator) Current() Interval { return it.cur }

// Next advances to the next LCP-interval, reporting false when the
// enumeration is exhausted.
func (it *Iterator) Next() bool {
	for it.pending > 0 {
		if !it.inRound {
			// Snapshot the queue sizes before this LCP value adds more
			// intervals; pairs pushed during the round belong to the next one.
			for k := range it.queues {
				it.sizes[k] = it.queues[k].pairs()
			}
			it.alpha = 0
			it.inRound = true
		}
		for ; it.alpha < it.sigma; it.alpha++ {
			for it.sizes[it.alpha] > 0 {
				it.sizes[it.alpha]--
				lb, rb := it.queues[it.alpha].pop()
				it.pending--
				if it.finished[rb] && it.lastIdx != lb {
					continue
				}
				if it.visit(lb, rb) {
					return true
				}
			}
		}
		it.lcpValue++
		it.inRound = false
	}
	return false
}

// visit processes one queued range and reports whether an interval was
// produced. The two-visit convention closes an interval: the first visit of a
// range marks its right boundary, and the visit whose left boundary meets the
// previously marked row emits the accumulated interval.
func (it *Iterator) visit(lb, rb int) bool {
	cnt := it.idx.IntervalSymbols(lb, rb, it.syms, it.rankLb, it.rankRb)
	for j := 0; j < cnt; j++ {
		c := it.syms[j]
		if !it.ext[c] {
			it.ext[c] = true
			it.extCnt++
			it.extTouch = append(it.extTouch, c)
		}
		// The sentinel counts as an extension but cannot be extended further.
		if c == 0 {
			continue
		}
		it.queues[c].push(it.idx.C(c)+it.rankLb[j], it.idx.C(c)+it.rankRb[j])
		it.pending++
	}
	if !it.finished[rb] {
		it.finished[rb] = true
		if it.lastIdx != lb {
			it.lastLb = lb
		}
		it.lastIdx = rb
		return false
	}
	// Second visit: lastIdx == lb, so [lastLb, rb) is complete.
	if lb != rb-1 {
		it.locMax = false
	}
	it.cur = Interval{
		LCP:        it.lcpValue,
		Begin:      it.lastLb,
		End:        rb - 1,
		Extensions: it.extCnt,
		LocalMax:   it.locMax,
	}
	for _, c := range it.extTouch {
		it.ext[c] = false
	}
	it.extTouch = it.extTouch[:0]
	it.extCnt = 0
	it.lastLb, it.lastIdx = 0, 0
	it.locMax = true
	return true
}

// pairQueue is a FIFO of (lb, rb) pairs stored flat.
type pairQueue struct {
	buf  []int
	head int
}

func (q *pairQueue) push(lb, rb int) {
	q.buf = append(q.buf, lb, rb)
}

func (q *pairQueue) pop() (lb, rb int) {
	lb, rb = q.buf[q.head], q.buf[q.head+1]
	q.head += 2
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	}
	return lb, rb
}

func (q *pairQueue) pairs() int {
	return (len(q.buf) - q.head) / 2
}
