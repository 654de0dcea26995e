// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poh

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestSequencerTickChains(t *testing.T) {
	seed := ids.GenerateTestID()
	s := NewSequencer(seed, 10)

	e1 := s.Tick()
	require.Equal(t, seed, e1.PrevHash)
	require.NotEqual(t, seed, e1.OutHash)

	e2 := s.Tick()
	require.Equal(t, e1.OutHash, e2.PrevHash)
	require.Equal(t, s.Head(), e2.OutHash)
}

func TestVerifyEntriesRoundTrip(t *testing.T) {
	seed := ids.GenerateTestID()
	s := NewSequencer(seed, 5)
	s.Tick()
	s.MixIn(ids.GenerateTestID())
	s.Tick()

	require.True(t, VerifyEntries(seed, 5, s.Entries()))
}

func TestVerifyEntriesRejectsTamperedChain(t *testing.T) {
	seed := ids.GenerateTestID()
	s := NewSequencer(seed, 5)
	s.Tick()
	entries := s.Entries()
	entries[0].OutHash = ids.GenerateTestID()

	require.False(t, VerifyEntries(seed, 5, entries))
}
