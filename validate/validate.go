// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validate implements the validator side of the protocol:
// re-executing a received block against local account state and
// deciding whether to cast a vote, per the six hard validation gates.
// Any gate failing silently drops the block — there is no negative
// vote, only an abstain and the failed gate reported in the Outcome.
package validate

import (
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/errs"
	"github.com/shubham4564/proofwithquantumannealing-sub001/executor"
	"github.com/shubham4564/proofwithquantumannealing-sub001/poh"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

// PubKeyResolver resolves a node's raw public key bytes from its NodeID,
// so signature checks (leader and per-transaction) don't need to carry a
// full validator directory through every call.
type PubKeyResolver interface {
	PubKey(id ids.NodeID) ([]byte, bool)
}

// Outcome records which of the six gates a block passed, stopping at the
// first failure: FailedGate, which the caller logs, is the sole record of
// "which gate failed".
type Outcome struct {
	Accepted   bool
	FailedGate errs.Kind
	StateRoot  ids.ID
}

// Validate re-executes b against a snapshot of the validator's local
// account state and reports whether it should vote. scheduledLeader is
// the leader schedule's assignment for b's slot; parentClosing is the
// parent block's closing PoH hash, the seed b's PoH sequence must
// replay from.
func Validate(
	b *block.Block,
	scheduledLeader ids.NodeID,
	parentClosing ids.ID,
	hashesPerTick uint64,
	parentState *executor.State,
	keys PubKeyResolver,
) Outcome {
	// Gate 1: reconstruction succeeded and deserialization is
	// well-formed. A caller only reaches Validate with a *block.Block
	// that already decoded cleanly (shred.Reconstruct/block.Decode
	// return an error otherwise), so this gate is the nil check.
	if b == nil {
		return Outcome{FailedGate: errs.KindPacketDecode}
	}

	// Gate 2: leader signature valid and signer matches the scheduled
	// leader.
	if b.Leader != scheduledLeader {
		return Outcome{FailedGate: errs.KindLeaderMismatch}
	}
	leaderKey, ok := keys.PubKey(b.Leader)
	if !ok || !b.VerifySignature(leaderKey) {
		return Outcome{FailedGate: errs.KindLeaderMismatch}
	}

	// Gate 3: PoH sequence replays correctly from the parent's closing
	// hash (parentClosing) through every claimed entry.
	if !poh.VerifyEntries(parentClosing, hashesPerTick, b.PohEntries) {
		return Outcome{FailedGate: errs.KindPoHMismatch}
	}

	// Gate 4: every transaction's signature verifies.
	for _, t := range b.Transactions {
		pubKey, ok := keys.PubKey(t.Sender)
		if !ok || !t.VerifySignature(pubKey) {
			return Outcome{FailedGate: errs.KindSignatureInvalid}
		}
	}

	// Gate 5: re-execute all transactions through the same parallel
	// executor against the validator's local account-state snapshot.
	snapshot := parentState.Clone()
	_, stateRoot := executor.Execute(snapshot, b.Transactions)

	// Gate 6: state_root' == block.state_root.
	if stateRoot != b.StateRootV {
		return Outcome{FailedGate: errs.KindStateRootMismatch, StateRoot: stateRoot}
	}

	return Outcome{Accepted: true, StateRoot: stateRoot}
}

// EmitVote builds the unsigned Vote transaction this validator attests
// to after Validate returns Accepted: true. The caller signs it (the
// same way any other transaction is signed) and broadcasts it, re-
// entering the pipeline as a KindVote transaction at the next slot.
func EmitVote(voter ids.NodeID, b *block.Block, outcome Outcome, slot uint64, now int64) *tx.Transaction {
	return &tx.Transaction{
		Sender:        voter,
		Kind:          tx.KindVote,
		Timestamp:     now,
		VoteBlockHash: b.ID(),
		VoteStateRoot: outcome.StateRoot,
		VoteSlot:      slot,
	}
}
