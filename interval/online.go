// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package interval

import (
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// noID marks a boundary position that no updated interval covers.
const noID = uint64(math.MaxUint64)

// OnlineStabber keeps a sorted map from boundary position to interval ID.
// A stab resolves to the greatest boundary at or before the point; an update
// writes the interval's ID at its begin position and restores the enclosing
// interval's ID just past its end.
type OnlineStabber struct {
	lookup *treemap.Map
}

// NewOnline creates an empty OnlineStabber.
func NewOnline() *OnlineStabber {
	return &OnlineStabber{lookup: treemap.NewWith(utils.UInt64Comparator)}
}

func (s *OnlineStabber) Stab(i uint64) (uint64, bool) {
	k, v := s.lookup.Floor(i)
	if k == nil {
		return 0, false
	}
	id := v.(uint64)
	if id == noID {
		return 0, false
	}
	return id, true
}

func (s *OnlineStabber) Update(begin, end, id uint64) {
	// The parent must be resolved before the begin boundary is written.
	parent, ok := s.Stab(begin)
	// If end+1 is already a boundary it was set by another interval's begin
	// or end and must not change.
	if _, found := s.lookup.Get(end + 1); !found {
		if ok {
			s.lookup.Put(end+1, parent)
		} else {
			s.lookup.Put(end+1, noID)
		}
	}
	s.lookup.Put(begin, id)
}
