// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package interval

import (
	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/dsnet/golib/errs"

	"github.com/alancleary/mr-cfg/csa"
	"github.com/alancleary/mr-cfg/lcp"
)

// OptimalStabber preprocesses every maximal-repeat LCP-interval of the text
// so that stabbing queries cost a constant number of bitmap operations.
//
// Every indexed interval receives a binary ID: a bitmap holding one bit of
// its own plus the bits of every interval it is nested in. The nearest
// updated ancestor of a stabbed interval is then the intersection of its
// binary ID with the union of all updated IDs. Bits are handed out in
// decreasing order along a left-to-right walk, so within any nesting chain
// the deepest interval owns the smallest bit and Minimum() selects it.
//
// The bit count per ID is O(m/w) words for m maximal repeats, but m is small
// on real data and the depth-first layout produces runs that the roaring
// containers compress well.
type OptimalStabber struct {
	// begin and end+1 positions of every indexed interval
	positionBits *roaring64.Bitmap
	// deepest binary ID opening or resuming at each boundary position
	lookup map[uint64]*roaring64.Bitmap
	// binary IDs of every indexed interval, owned by their slot
	ids []*roaring64.Bitmap
	// union of the binary IDs passed to Update
	updated *roaring64.Bitmap
	// external ID recorded for each interval's own bit
	idMap map[uint64]uint64
}

// NewOptimal indexes all maximal-repeat LCP-intervals of the text.
// Construction enumerates the LCP-intervals once and walks the text's suffix
// array positions once, so it is linear up to bitmap operations.
func NewOptimal(idx *csa.CSA) *OptimalStabber {
	s := &OptimalStabber{
		positionBits: roaring64.NewBitmap(),
		lookup:       make(map[uint64]*roaring64.Bitmap),
		updated:      roaring64.NewBitmap(),
		idMap:        make(map[uint64]uint64),
	}
	s.index(idx)
	return s
}

func (s *OptimalStabber) index(idx *csa.CSA) {
	n := uint64(idx.Size())

	// Enumerate the LCP-intervals, keeping the maximal ones: mark their
	// boundary bits and bin their end rows by begin row. Bins fill in LCP
	// order, so each bin runs from shallow to deep.
	numRepeats := 0
	bins := make(map[uint64][]uint64)
	it := lcp.NewIterator(idx)
	it.Next() // the LCP-value-0 interval spans everything; skip it
	for it.Next() {
		iv := it.Current()
		if iv.Extensions <= 1 {
			continue
		}
		numRepeats++
		begin, end := uint64(iv.Begin), uint64(iv.End)
		s.positionBits.Add(begin)
		if end+1 < n {
			s.positionBits.Add(end + 1)
		}
		bins[begin] = append(bins[begin], end)
	}

	// Dovetail the begin and end rows left to right, deriving each binary ID
	// from its parent on the containment stack. The stack base is the still
	// empty updated set, which top-level intervals clone as their parent; a
	// boundary where the stack falls back to the base keeps no lookup entry,
	// so stabs there miss.
	s.ids = make([]*roaring64.Bitmap, numRepeats)
	next := uint64(numRepeats)
	endStack := make([]uint64, 0, 16)
	idStack := []*roaring64.Bitmap{s.updated}
	for i := uint64(0); i+1 < n; i++ {
		for len(endStack) > 0 && endStack[len(endStack)-1] == i {
			endStack = endStack[:len(endStack)-1]
			idStack = idStack[:len(idStack)-1]
			if len(idStack) > 1 {
				s.lookup[i+1] = idStack[len(idStack)-1]
			} else {
				delete(s.lookup, i+1)
			}
		}
		ends, ok := bins[i]
		if !ok {
			continue
		}
		for _, end := range ends {
			next--
			id := idStack[len(idStack)-1].Clone()
			id.Add(next)
			s.ids[next] = id
			endStack = append(endStack, end)
			idStack = append(idStack, id)
		}
		s.lookup[i] = idStack[len(idStack)-1]
	}
}

// stabBits returns the binary ID of the deepest indexed interval containing
// row i, or nil when no interval does.
func (s *OptimalStabber) stabBits(i uint64) *roaring64.Bitmap {
	rank := s.positionBits.Rank(i)
	if rank == 0 {
		return nil
	}
	j, err := s.positionBits.Select(rank - 1)
	if err != nil {
		return nil
	}
	return s.lookup[j]
}

func (s *OptimalStabber) Stab(i uint64) (uint64, bool) {
	bits := s.stabBits(i)
	if bits == nil {
		return 0, false
	}
	ancestors := roaring64.And(s.updated, bits)
	if ancestors.IsEmpty() {
		return 0, false
	}
	id, ok := s.idMap[ancestors.Minimum()]
	return id, ok
}

func (s *OptimalStabber) Update(begin, end, id uint64) {
	// Intersecting the binary IDs at both endpoints isolates the interval
	// itself: its own bit plus its ancestors, with the deeper intervals that
	// cover only one endpoint removed.
	beginBits := s.stabBits(begin)
	endBits := s.stabBits(end)
	errs.Assert(beginBits != nil && endBits != nil, errNotFound)
	self := roaring64.And(beginBits, endBits)
	errs.Assert(!self.IsEmpty(), errOverlap)
	s.idMap[self.Minimum()] = id
	s.updated.Or(self)
}
