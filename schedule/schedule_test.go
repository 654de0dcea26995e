// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schedule

import (
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

func buildSet(n int, light uint64) validators.Set {
	s := validators.NewSet()
	for i := 0; i < n; i++ {
		s.Add(validators.NewValidator(ids.GenerateTestNodeID(), 1, light))
	}
	return s
}

func TestGenerateFallsBackOnOracleFailure(t *testing.T) {
	set := buildSet(4, 1_000_000)
	e, err := Generate(0, ids.GenerateTestID(), time.Now(), 450*time.Millisecond, 4, set, RoundRobinOracle{}, 100_000)
	require.NoError(t, err)
	require.Len(t, e.Leaders, 4)
	for _, l := range e.Leaders {
		require.True(t, set.Has(l))
	}
}

func TestGenerateRejectsEmptyValidatorSet(t *testing.T) {
	_, err := Generate(0, ids.GenerateTestID(), time.Now(), time.Second, 4, validators.NewSet(), RoundRobinOracle{}, 0)
	require.ErrorIs(t, err, ErrNoValidators)
}

func TestGenerateFallsBackWhenNoneViable(t *testing.T) {
	set := buildSet(3, 0)
	e, err := Generate(0, ids.GenerateTestID(), time.Now(), time.Second, 3, set, RoundRobinOracle{}, 100_000)
	require.NoError(t, err)
	require.Len(t, e.Leaders, 3)
}

func TestManagerBootstrapAndRollover(t *testing.T) {
	set := buildSet(4, 1_000_000)
	start := time.Now()
	m := NewManager(time.Millisecond, 2, 100_000, RoundRobinOracle{}, set)
	require.NoError(t, m.Bootstrap(start, ids.GenerateTestID()))

	leader, ok := m.LeaderAtSlot(0)
	require.True(t, ok)
	require.True(t, set.Has(leader))

	require.NoError(t, m.RegenerateNext(ids.GenerateTestID()))
	require.NoError(t, m.Rollover())
}

func TestManagerRolloverFailsWithoutNext(t *testing.T) {
	set := buildSet(2, 1_000_000)
	m := NewManager(time.Millisecond, 2, 0, RoundRobinOracle{}, set)
	require.NoError(t, m.Bootstrap(time.Now(), ids.GenerateTestID()))
	require.Error(t, m.Rollover())
}

func TestWeightedScoreOracleDeterministic(t *testing.T) {
	set := buildSet(5, 900_000)
	o := WeightedScoreOracle{}
	seed := ids.GenerateTestID()
	a, err := o.Select(seed, set.List())
	require.NoError(t, err)
	b, err := o.Select(seed, set.List())
	require.NoError(t, err)
	require.Equal(t, a, b)
}
