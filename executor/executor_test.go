// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

func TestBatchesPacksDisjointAccounts(t *testing.T) {
	a, b, c, d := ids.GenerateTestNodeID(), ids.GenerateTestNodeID(), ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	txs := []*tx.Transaction{
		{Sender: a, Receiver: b, Amount: 1},
		{Sender: c, Receiver: d, Amount: 1},
		{Sender: a, Receiver: c, Amount: 1},
	}
	batches := Batches(txs)
	require.Len(t, batches, 2)
	require.Len(t, batches[0], 2)
	require.Len(t, batches[1], 1)
}

func TestExecuteAppliesTransferAndComputesRoot(t *testing.T) {
	a, b := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	state := NewState(map[ids.NodeID]uint64{a: 100, b: 0})

	results, root := Execute(state, []*tx.Transaction{{Sender: a, Receiver: b, Amount: 40}})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.Equal(t, uint64(60), state.Balance(a))
	require.Equal(t, uint64(40), state.Balance(b))
	require.Equal(t, state.Root(), root)
}

func TestExecuteRejectsInsufficientBalance(t *testing.T) {
	a, b := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	state := NewState(map[ids.NodeID]uint64{a: 10, b: 0})

	results, _ := Execute(state, []*tx.Transaction{{Sender: a, Receiver: b, Amount: 40}})
	require.Error(t, results[0].Err)
	require.Equal(t, uint64(10), state.Balance(a))
}

func TestExecuteExchangeMints(t *testing.T) {
	a := ids.GenerateTestNodeID()
	state := NewState(map[ids.NodeID]uint64{a: 0})

	results, _ := Execute(state, []*tx.Transaction{{Sender: ids.GenerateTestNodeID(), Receiver: a, Amount: 500, Kind: tx.KindExchange}})
	require.NoError(t, results[0].Err)
	require.Equal(t, uint64(500), state.Balance(a))
}

func TestStateRootDeterministic(t *testing.T) {
	a, b := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	s1 := NewState(map[ids.NodeID]uint64{a: 10, b: 20})
	s2 := NewState(map[ids.NodeID]uint64{b: 20, a: 10})
	require.Equal(t, s1.Root(), s2.Root())
}

// Two transactions sharing a sender land in separate batches and must
// still apply correctly when those batches run in order.
func TestExecuteSerializesConflictingBatchesInOrder(t *testing.T) {
	a, b, c := ids.GenerateTestNodeID(), ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	state := NewState(map[ids.NodeID]uint64{a: 100, b: 0, c: 0})
	txs := []*tx.Transaction{
		{Sender: a, Receiver: b, Amount: 10},
		{Sender: a, Receiver: c, Amount: 20},
	}

	batches := Batches(txs)
	require.Len(t, batches, 2)

	results, _ := Execute(state, txs)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	require.Equal(t, uint64(70), state.Balance(a))
	require.Equal(t, uint64(10), state.Balance(b))
	require.Equal(t, uint64(20), state.Balance(c))
}

// Two disjoint transactions submitted together pack into a single batch,
// execute concurrently, and leave every touched balance correct.
func TestExecuteAppliesDisjointBatchInParallel(t *testing.T) {
	a, b, c, d := ids.GenerateTestNodeID(), ids.GenerateTestNodeID(), ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	state := NewState(map[ids.NodeID]uint64{a: 100, b: 0, c: 100, d: 0})
	txs := []*tx.Transaction{
		{Sender: a, Receiver: b, Amount: 10},
		{Sender: c, Receiver: d, Amount: 20},
	}

	batches := Batches(txs)
	require.Len(t, batches, 1)

	results, _ := Execute(state, txs)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	require.Equal(t, uint64(90), state.Balance(a))
	require.Equal(t, uint64(10), state.Balance(b))
	require.Equal(t, uint64(80), state.Balance(c))
	require.Equal(t, uint64(20), state.Balance(d))
}
