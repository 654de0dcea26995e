// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package schedule deterministically assigns a leader to every slot of an
// epoch from a validator set and an opaque quantum-scoring oracle, with a
// round-robin fallback when the oracle is unavailable or its pick is not
// viable.
package schedule

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// ErrNoValidators is returned when the validator set is empty and a
// schedule cannot be produced at all.
var ErrNoValidators = errors.New("schedule: validator set is empty")

// Oracle scores a slot seed against the viable validator set and returns
// its preferred leader. Its internals (a quantum annealing solver) are a
// black box; only this contract matters here.
type Oracle interface {
	Select(seed ids.ID, viable []validators.Validator) (ids.NodeID, error)
}

// Epoch is a fully computed slot -> leader assignment for one epoch.
type Epoch struct {
	Index        uint64
	StartTime    time.Time
	SlotDuration time.Duration
	Leaders      []ids.NodeID // index i is the leader for slot i
}

// LeaderAt returns the leader for slot s within the epoch, or false if s
// is out of range.
func (e *Epoch) LeaderAt(s uint64) (ids.NodeID, bool) {
	if s >= uint64(len(e.Leaders)) {
		return ids.NodeID{}, false
	}
	return e.Leaders[s], true
}

// SlotStart returns the absolute start time of slot s.
func (e *Epoch) SlotStart(s uint64) time.Time {
	return e.StartTime.Add(time.Duration(s) * e.SlotDuration)
}

// defaultViabilityFloor is the default minimum effective score (Light) a
// validator needs to be schedulable as a leader.
const defaultViabilityFloor = 100_000 // 0.1 scaled to 1e6 fixed point

// Generate computes the complete, gap-free leader map for epoch index
// with the given seed material, validator set, oracle and viability
// floor (scaled the same way as Validator.Light, 1e6 = 1.0).
func Generate(epochIndex uint64, parentBlockHash ids.ID, start time.Time, slotDuration time.Duration, slotsPerEpoch int, set validators.Set, oracle Oracle, viabilityFloor uint64) (*Epoch, error) {
	if set.Len() == 0 {
		return nil, ErrNoValidators
	}

	epochSeed := hashEpochSeed(epochIndex, parentBlockHash)

	all := set.List()
	viable := filterViable(all, viabilityFloor)
	if len(viable) == 0 {
		viable = all
	}

	leaders := make([]ids.NodeID, slotsPerEpoch)
	for s := 0; s < slotsPerEpoch; s++ {
		slotSeed := hashSlotSeed(epochSeed, uint64(s))

		candidate, err := selectCandidate(oracle, slotSeed, viable)
		if err == nil && isViableNode(candidate, viable) {
			leaders[s] = candidate
			continue
		}
		leaders[s] = viable[s%len(viable)].ID()
	}

	return &Epoch{
		Index:        epochIndex,
		StartTime:    start,
		SlotDuration: slotDuration,
		Leaders:      leaders,
	}, nil
}

func selectCandidate(oracle Oracle, seed ids.ID, viable []validators.Validator) (ids.NodeID, error) {
	if oracle == nil {
		return ids.NodeID{}, errors.New("schedule: no oracle configured")
	}
	return oracle.Select(seed, viable)
}

func filterViable(all []validators.Validator, floor uint64) []validators.Validator {
	out := make([]validators.Validator, 0, len(all))
	for _, v := range all {
		if v.Light() >= floor {
			out = append(out, v)
		}
	}
	return out
}

func isViableNode(nodeID ids.NodeID, viable []validators.Validator) bool {
	for _, v := range viable {
		if v.ID() == nodeID {
			return true
		}
	}
	return false
}

func hashEpochSeed(epoch uint64, parentHash ids.ID) ids.ID {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], epoch)
	h.Write(buf[:])
	h.Write(parentHash[:])
	var out ids.ID
	copy(out[:], h.Sum(nil))
	return out
}

func hashSlotSeed(epochSeed ids.ID, slot uint64) ids.ID {
	h := sha256.New()
	h.Write(epochSeed[:])
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], slot)
	h.Write(buf[:])
	var out ids.ID
	copy(out[:], h.Sum(nil))
	return out
}

// DefaultViabilityFloor exposes the spec's example threshold (0.1) for
// callers that have not been given a cluster-configured value.
func DefaultViabilityFloor() uint64 { return defaultViabilityFloor }
