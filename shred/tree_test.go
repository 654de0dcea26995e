// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package shred

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

func buildSet(t *testing.T, n int) (validators.Set, []ids.NodeID) {
	t.Helper()
	set := validators.NewSet()
	nodes := make([]ids.NodeID, n)
	for i := range nodes {
		nodes[i] = ids.GenerateTestNodeID()
		set.Add(validators.NewValidator(nodes[i], uint64(n-i), 0))
	}
	return set, nodes
}

func TestBroadcastPartitionsAcrossFanout(t *testing.T) {
	set, nodes := buildSet(t, 6)
	leader := nodes[0]
	tree := NewTree(set, leader, 2)

	shreds := make([]Shred, 10)
	for i := range shreds {
		shreds[i] = Shred{Index: i, DataShreds: 8, IsData: i < 8, Payload: []byte{byte(i)}}
	}

	tasks := Broadcast(tree, leader, shreds)
	require.Len(t, tasks, 2)

	total := 0
	for _, task := range tasks {
		total += len(task.Shreds)
		require.NotEqual(t, leader, task.Target)
	}
	require.Equal(t, len(shreds), total)
}

func TestOnReceiveForwardsToOwnChildrenAndDetectsReadiness(t *testing.T) {
	set, nodes := buildSet(t, 7)
	leader := nodes[0]
	tree := NewTree(set, leader, 2)

	shreds := make([]Shred, 6)
	for i := range shreds {
		shreds[i] = Shred{Index: i, DataShreds: 4, IsData: i < 4, Payload: []byte{byte(i)}}
	}
	tasks := Broadcast(tree, leader, shreds)
	require.NotEmpty(t, tasks)

	// The first recipient in the tree forwards its partition onward to its
	// own children and isn't yet ready unless it received enough shreds.
	first := tasks[0]
	result := OnReceive(tree, first.Target, nil, first.Shreds)
	if len(first.Shreds) >= 4 {
		require.True(t, result.ReadyToReconstruct)
	} else {
		require.False(t, result.ReadyToReconstruct)
	}
}

func TestNewTreeExcludesLeaderAndOrdersByWeight(t *testing.T) {
	set, nodes := buildSet(t, 4)
	leader := nodes[0]
	tree := NewTree(set, leader, 3)

	require.Len(t, tree.order, 3)
	for _, id := range tree.order {
		require.NotEqual(t, leader, id)
	}
}
