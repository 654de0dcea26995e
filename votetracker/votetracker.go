// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package votetracker counts validator votes on (block_hash, state_root)
// outcomes and reports when a block crosses the ⌊2|V|/3⌋+1 finalization
// quorum.
package votetracker

import (
	"sync"

	"github.com/luxfi/consensus/utils/bag"
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// Outcome is the pair a validator attests to having observed after
// re-executing a block.
type Outcome struct {
	BlockHash ids.ID
	StateRoot ids.ID
}

// Tracker is the append-only, per-block-hash vote ledger described in the
// concurrency model: readers take a short read lock to check quorum,
// writers append under a write lock. One Tracker instance lives per voted
// block hash.
type Tracker struct {
	mu       sync.RWMutex
	set      validators.Set
	votes    bag.Bag[Outcome]
	voted    map[ids.NodeID]Outcome
	finalize *Outcome
}

// New builds an empty Tracker over the current validator set.
func New(set validators.Set) *Tracker {
	return &Tracker{
		set:   set,
		votes: bag.New[Outcome](),
		voted: make(map[ids.NodeID]Outcome),
	}
}

// Record registers voter's attestation to outcome, ignoring a validator's
// second vote (equivocation is not penalized here, only the first vote
// counts, matching the no-negative-vote design). It returns whether the
// tracker is finalized after this call: true from the vote that crosses
// the validator set's quorum size onward, including for later ignored
// votes.
func (t *Tracker) Record(voter ids.NodeID, outcome Outcome) (finalized bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.set.Has(voter) {
		return t.finalize != nil
	}
	if _, already := t.voted[voter]; already {
		return t.finalize != nil
	}
	t.voted[voter] = outcome
	t.votes.Add(outcome)

	if t.finalize == nil && t.votes.Count(outcome) >= t.set.QuorumSize() {
		o := outcome
		t.finalize = &o
	}
	return t.finalize != nil
}

// RecordTransaction extracts the (voter, outcome) pair from a KindVote
// transaction and records it. Callers are expected to have already
// verified the transaction's signature.
func (t *Tracker) RecordTransaction(v *tx.Transaction) bool {
	if v.Kind != tx.KindVote {
		return t.Finalized()
	}
	return t.Record(v.Sender, Outcome{BlockHash: v.VoteBlockHash, StateRoot: v.VoteStateRoot})
}

// Count returns the number of distinct validators that have voted for
// outcome so far.
func (t *Tracker) Count(outcome Outcome) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.votes.Count(outcome)
}

// Finalized reports whether any outcome has crossed quorum.
func (t *Tracker) Finalized() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.finalize != nil
}

// FinalizedOutcome returns the finalized outcome, if any.
func (t *Tracker) FinalizedOutcome() (Outcome, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.finalize == nil {
		return Outcome{}, false
	}
	return *t.finalize, true
}
