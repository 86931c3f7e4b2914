// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package cfg

import (
	"github.com/dsnet/golib/errs"

	"github.com/alancleary/mr-cfg/csa"
	"github.com/alancleary/mr-cfg/interval"
	"github.com/alancleary/mr-cfg/lcp"
)

// Build constructs the maximal-repeat grammar of the indexed text.
//
// The LCP-intervals are enumerated in length-lexicographic order. Every
// interval bumps the occurrence count of its ID; the maximal ones (more than
// one distinct preceding symbol) become rules whose productions are
// synthesized by stabbing the already-installed rules along one occurrence of
// the repeat. Unit productions are discarded. The start rule is computed last
// over the whole text. Runs in O(n) stabbing and CSA operations on top of the
// O(n log sigma) enumeration.
func Build(idx *csa.CSA, v interval.Variant) (g *Grammar, err error) {
	defer errs.Recover(&err)

	stabber, err := interval.New(v, idx)
	if err != nil {
		return nil, err
	}

	g = &Grammar{
		Rules: make(map[ID]Production),
		Sigma: idx.Sigma(),
	}

	// Terminals produce themselves.
	sizes := make(map[ID]int)
	for k := 0; k < idx.Sigma(); k++ {
		sizes[ID(k)] = 1
	}

	ids := newIdentifiers(idx)
	it := lcp.NewIterator(idx)
	it.Next() // the LCP-value-0 interval spans everything; skip it

	for it.Next() {
		iv := it.Current()
		rid := ids.getID(iv.LCP, iv.Begin, iv.End)
		// Count this occurrence of the repeat before any maximality check
		// consults the total.
		sizes[rid]++
		if iv.Extensions <= 1 {
			continue
		}
		// The repeat occurs with distinct left extensions: finalize a rule
		// covering its first occurrence.
		i := idx.SA(iv.Begin)
		n := i + sizes[rid]
		p := computeProduction(idx, stabber, sizes, i, n)
		if len(p) > 1 {
			g.Rules[rid] = p
			stabber.Update(uint64(iv.Begin), uint64(iv.End), uint64(rid))
		} else {
			// A unit production is dictionary-useless.
			delete(g.Rules, rid)
			delete(sizes, rid)
		}
		// A longer repeat ending at the same text position is a different
		// rule.
		ids.removeID(iv.LCP, iv.Begin, iv.End)
	}

	g.Start = ids.nextID()
	g.Rules[g.Start] = computeProduction(idx, stabber, sizes, 0, idx.Size())
	return g, nil
}

// computeProduction synthesizes the production deriving text positions
// [i, n), greedily consuming the longest installed rule at each position and
// falling back to terminals. O(n-i) stabbing and CSA operations.
func computeProduction(idx *csa.CSA, stabber interval.Stabber, sizes map[ID]int, i, n int) Production {
	var p Production
	for i < n {
		j := idx.ISA(i)
		if rid, ok := stabber.Stab(uint64(j)); ok {
			id := ID(rid)
			size, ok := sizes[id]
			errs.Assert(ok && size > 0, errNoSize)
			p = append(p, id)
			i += size
		} else {
			p = append(p, ID(idx.CompAt(i)))
			i++
		}
	}
	return p
}
