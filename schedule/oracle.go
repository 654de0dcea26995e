// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schedule

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/consensus/utils/sampler"
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// ErrOracleUnavailable is returned by RoundRobinOracle's Select to force
// callers down the deterministic round-robin fallback path, for use in
// tests and local clusters that run without a quantum annealing
// collaborator.
var ErrOracleUnavailable = errors.New("schedule: oracle unavailable")

// RoundRobinOracle always fails Select, so Generate always falls back to
// round-robin assignment over the viable set. It exists for local
// development and for exercising the fallback path under test.
type RoundRobinOracle struct{}

func (RoundRobinOracle) Select(ids.ID, []validators.Validator) (ids.NodeID, error) {
	return ids.NodeID{}, ErrOracleUnavailable
}

// WeightedScoreOracle picks among the viable validators with a draw
// weighted by each validator's Light (quantum-annealing effective) score,
// seeded deterministically from the slot seed so every node reproduces
// the identical pick. It is a deterministic stand-in that exercises the
// same Select contract a real quantum-annealing collaborator would fill,
// used when no external solver is wired in.
type WeightedScoreOracle struct{}

func (WeightedScoreOracle) Select(seed ids.ID, viable []validators.Validator) (ids.NodeID, error) {
	if len(viable) == 0 {
		return ids.NodeID{}, ErrOracleUnavailable
	}

	weights := make([]uint64, len(viable))
	var total uint64
	for i, v := range viable {
		// every viable validator keeps at least weight 1 so a validator
		// with Light() == 0 (possible right at the viability floor's
		// boundary under a stale score) is still drawable.
		w := v.Light() + 1
		weights[i] = w
		total += w
	}

	src := sampler.NewSource(seedToInt64(seed))
	w := sampler.NewWeightedWithoutReplacement(src)
	if err := w.Initialize(weights); err != nil {
		return ids.NodeID{}, err
	}
	picked, ok := w.Sample(1)
	if !ok || len(picked) == 0 {
		return ids.NodeID{}, ErrOracleUnavailable
	}
	return viable[picked[0]].ID(), nil
}

// seedToInt64 folds a 32-byte slot seed down to the int64 the sampler
// package's Source takes, preserving determinism (same seed -> same
// draw) without needing a wider-than-int64 RNG seed type.
func seedToInt64(seed ids.ID) int64 {
	return int64(binary.BigEndian.Uint64(seed[:8]))
}
