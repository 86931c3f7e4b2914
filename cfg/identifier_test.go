// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package cfg

import (
	"testing"

	"github.com/alancleary/mr-cfg/csa"
)

func TestIdentifiers(t *testing.T) {
	// For "abab" the "b" interval at LCP 1 and the "ab" interval at LCP 2
	// share a first-occurrence end position, so they share an ID until the
	// key is removed.
	idx := csa.New([]byte("abab"))
	ids := newIdentifiers(idx)

	if got, want := ids.nextID(), ID(idx.Sigma()); got != want {
		t.Fatalf("nextID() = %d, want %d", got, want)
	}

	b := ids.getID(1, 3, 4)
	if got, want := b, ID(idx.Sigma()); got != want {
		t.Errorf("getID(1, 3, 4) = %d, want %d", got, want)
	}
	if got := ids.getID(2, 1, 2); got != b {
		t.Errorf("getID(2, 1, 2) = %d, want shared ID %d", got, b)
	}
	if got, want := ids.nextID(), b+1; got != want {
		t.Errorf("nextID() after one allocation = %d, want %d", got, want)
	}

	// Removal forces a fresh ID for the same key.
	ids.removeID(2, 1, 2)
	if got, want := ids.getID(1, 3, 4), b+1; got != want {
		t.Errorf("getID(1, 3, 4) after removal = %d, want %d", got, want)
	}

	// Removing a key that was never allocated is a no-op.
	ids.removeID(0, 2, 4)
	if got, want := ids.nextID(), b+2; got != want {
		t.Errorf("nextID() after stray removal = %d, want %d", got, want)
	}
}
