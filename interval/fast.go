// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package interval

import "github.com/RoaringBitmap/roaring/roaring64"

// FastStabber keeps the boundary positions in a compressed bitmap and the
// interval IDs in a map keyed by boundary position. A stab is one rank and
// one select on the bitmap.
type FastStabber struct {
	bits   *roaring64.Bitmap
	lookup map[uint64]uint64
}

// NewFast creates an empty FastStabber.
func NewFast() *FastStabber {
	return &FastStabber{
		bits:   roaring64.NewBitmap(),
		lookup: make(map[uint64]uint64),
	}
}

func (s *FastStabber) Stab(i uint64) (uint64, bool) {
	rank := s.bits.Rank(i)
	if rank == 0 {
		return 0, false
	}
	j, err := s.bits.Select(rank - 1)
	if err != nil {
		return 0, false
	}
	id, ok := s.lookup[j]
	return id, ok
}

func (s *FastStabber) Update(begin, end, id uint64) {
	parent, ok := s.Stab(begin)
	// If end+1 is already a boundary it was set by another interval's begin
	// or end and must not change.
	if !s.bits.Contains(end + 1) {
		s.bits.Add(end + 1)
		// Boundaries with no enclosing interval carry no map entry.
		if ok {
			s.lookup[end+1] = parent
		}
	}
	s.bits.Add(begin)
	s.lookup[begin] = id
}
