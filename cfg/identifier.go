// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package cfg

import "github.com/alancleary/mr-cfg/csa"

// identifiers assigns rule IDs to LCP-intervals. The ID of an interval is
// keyed by the text position where its repeat's first occurrence ends, so the
// chain of ever-longer repeats ending at one position shares a single ID
// until the builder finalizes a rule and removes the key.
type identifiers struct {
	idx  *csa.CSA
	next ID
	ids  map[int]ID
}

func newIdentifiers(idx *csa.CSA) *identifiers {
	// The first sigma IDs are reserved for the alphabet symbols.
	return &identifiers{
		idx:  idx,
		next: ID(idx.Sigma()),
		ids:  make(map[int]ID),
	}
}

// nextID reports the ID the next unseen interval would receive.
func (r *identifiers) nextID() ID {
	return r.next
}

// getID returns the ID for the interval (lcp, begin, end), allocating one the
// first time its key is seen.
func (r *identifiers) getID(lcp, begin, end int) ID {
	key := r.idx.SA(begin) + lcp
	id, ok := r.ids[key]
	if !ok {
		id = r.next
		r.ids[key] = id
		r.next++
	}
	return id
}

// removeID forgets the interval's key so a longer repeat ending at the same
// text position receives a fresh ID. Removing an unknown key is a no-op.
func (r *identifiers) removeID(lcp, begin, end int) {
	delete(r.ids, r.idx.SA(begin)+lcp)
}
