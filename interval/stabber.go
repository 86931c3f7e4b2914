// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package interval answers stabbing queries on nested intervals over a finite
// range [0..n].
//
// Any two registered intervals are either disjoint or one contains the other;
// partially overlapping input is not legal. Only the deepest updated interval
// containing a point is ever needed, so no interval tree is maintained.
package interval

import "github.com/alancleary/mr-cfg/csa"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "interval: " + string(e) }

var (
	ErrVariant  error = Error("unknown stabber variant")
	errOverlap  error = Error("updated interval is not an indexed nested interval")
	errNotFound error = Error("update names an interval the index never saw")
)

// Stabber is the capability shared by all variants.
type Stabber interface {
	// Stab returns the ID of the deepest updated interval containing suffix
	// array row i, if any.
	Stab(i uint64) (id uint64, ok bool)

	// Update registers an interval so later stabbing queries can return it.
	// The interval must be disjoint from or strictly nested in every
	// previously updated interval.
	Update(begin, end, id uint64)
}

// Variant selects a Stabber implementation.
type Variant int

const (
	// Online keeps a sorted map of boundary positions. No preprocessing;
	// logarithmic updates and queries.
	Online Variant = iota

	// Fast keeps the boundary positions in a compressed bitmap. Near
	// constant updates and queries, compact under clustered boundaries.
	Fast

	// Optimal preprocesses every maximal-repeat LCP-interval of the text for
	// constant-word-count queries.
	Optimal
)

var variantNames = map[Variant]string{
	Online:  "ONLINE",
	Fast:    "FAST",
	Optimal: "OPTIMAL",
}

func (v Variant) String() string { return variantNames[v] }

// ParseVariant maps a command line selector to a Variant.
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if s == name {
			return v, nil
		}
	}
	return 0, ErrVariant
}

// New constructs the selected variant. Only Optimal consults the CSA; the
// other variants start empty and ignore it.
func New(v Variant, idx *csa.CSA) (Stabber, error) {
	switch v {
	case Online:
		return NewOnline(), nil
	case Fast:
		return NewFast(), nil
	case Optimal:
		return NewOptimal(idx), nil
	}
	return nil, ErrVariant
}
