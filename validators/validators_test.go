// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestSetQuorumSize(t *testing.T) {
	tests := []struct {
		n      int
		quorum int
	}{
		{1, 1},
		{3, 3},
		{4, 3},
		{7, 5},
		{10, 7},
	}
	for _, tc := range tests {
		s := NewSet()
		for i := 0; i < tc.n; i++ {
			s.Add(NewValidator(ids.GenerateTestNodeID(), 1, 1_000_000))
		}
		require.Equal(t, tc.quorum, s.QuorumSize())
	}
}

func TestSetAddRemove(t *testing.T) {
	s := NewSet()
	nodeID := ids.GenerateTestNodeID()
	s.Add(NewValidator(nodeID, 5, 500_000))
	require.True(t, s.Has(nodeID))
	require.Equal(t, 1, s.Len())
	require.Equal(t, uint64(5), s.TotalWeight())

	require.NoError(t, s.SetLight(nodeID, 900_000))
	v, ok := s.Get(nodeID)
	require.True(t, ok)
	require.Equal(t, uint64(900_000), v.Light())

	s.Remove(nodeID)
	require.False(t, s.Has(nodeID))
	require.Equal(t, 0, s.Len())
}

func TestSetValidatorOutputs(t *testing.T) {
	s := NewSet()
	a := ids.GenerateTestNodeID()
	s.Add(NewValidator(a, 7, 1))
	outputs := s.ValidatorOutputs()
	require.Len(t, outputs, 1)
	require.Equal(t, uint64(7), outputs[a].Weight)
	require.Equal(t, a, outputs[a].NodeID)
}

func TestSetLightUnknownNode(t *testing.T) {
	s := NewSet()
	err := s.SetLight(ids.GenerateTestNodeID(), 1)
	require.Error(t, err)
}

func TestStateValidators(t *testing.T) {
	s := NewSet()
	s.Add(NewValidator(ids.GenerateTestNodeID(), 1, 1))
	st := NewState(s)
	require.Equal(t, s, st.Validators())
}
