// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package votetracker

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

func buildSet(n int) (validators.Set, []ids.NodeID) {
	set := validators.NewSet()
	nodes := make([]ids.NodeID, n)
	for i := range nodes {
		nodes[i] = ids.GenerateTestNodeID()
		set.Add(validators.NewValidator(nodes[i], 1, 0))
	}
	return set, nodes
}

func TestRecordFinalizesAtQuorum(t *testing.T) {
	set, nodes := buildSet(4) // quorum = floor(8/3)+1 = 3
	tracker := New(set)
	outcome := Outcome{BlockHash: ids.GenerateTestID(), StateRoot: ids.GenerateTestID()}

	require.False(t, tracker.Record(nodes[0], outcome))
	require.False(t, tracker.Record(nodes[1], outcome))
	require.True(t, tracker.Record(nodes[2], outcome))

	got, ok := tracker.FinalizedOutcome()
	require.True(t, ok)
	require.Equal(t, outcome, got)
}

func TestRecordIgnoresDuplicateVoterAndNonMembers(t *testing.T) {
	set, nodes := buildSet(4)
	tracker := New(set)
	outcome := Outcome{BlockHash: ids.GenerateTestID(), StateRoot: ids.GenerateTestID()}

	tracker.Record(nodes[0], outcome)
	tracker.Record(nodes[0], outcome) // duplicate, should not double count
	require.Equal(t, 1, tracker.Count(outcome))

	stranger := ids.GenerateTestNodeID()
	tracker.Record(stranger, outcome)
	require.Equal(t, 1, tracker.Count(outcome))
}

func TestRecordTransactionExtractsVotePayload(t *testing.T) {
	set, nodes := buildSet(4)
	tracker := New(set)
	outcome := Outcome{BlockHash: ids.GenerateTestID(), StateRoot: ids.GenerateTestID()}

	vote := &tx.Transaction{
		Sender:        nodes[0],
		Kind:          tx.KindVote,
		VoteBlockHash: outcome.BlockHash,
		VoteStateRoot: outcome.StateRoot,
		VoteSlot:      7,
	}
	require.False(t, tracker.RecordTransaction(vote))
	require.Equal(t, 1, tracker.Count(outcome))
}

func TestDivergentOutcomesDoNotFinalizeEachOther(t *testing.T) {
	set, nodes := buildSet(4)
	tracker := New(set)
	a := Outcome{BlockHash: ids.GenerateTestID(), StateRoot: ids.GenerateTestID()}
	b := Outcome{BlockHash: ids.GenerateTestID(), StateRoot: ids.GenerateTestID()}

	tracker.Record(nodes[0], a)
	tracker.Record(nodes[1], b)
	tracker.Record(nodes[2], a)
	require.False(t, tracker.Finalized())
	require.Equal(t, 2, tracker.Count(a))
	require.Equal(t, 1, tracker.Count(b))
}
