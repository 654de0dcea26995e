// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package shred

import (
	"math/rand"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

func testBlock(t *testing.T) *block.Block {
	t.Helper()
	leader := ids.GenerateTestNodeID()
	sender, receiver := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	return &block.Block{
		HeightV:       7,
		PreviousHashV: ids.GenerateTestID(),
		Leader:        leader,
		TimestampV:    1700000000,
		Transactions: []*tx.Transaction{
			{Sender: sender, Receiver: receiver, Amount: 40, Nonce: 1},
			{Sender: receiver, Receiver: sender, Amount: 10, Nonce: 2},
		},
		StateRootV: ids.GenerateTestID(),
	}
}

func TestSplitThenReconstructRecoversBlock(t *testing.T) {
	blk := testBlock(t)

	shreds, err := Split(blk, DefaultShredSize, 0.3)
	require.NoError(t, err)
	require.Greater(t, len(shreds), 0)

	got, err := Reconstruct(shreds, 0.3)
	require.NoError(t, err)
	require.Equal(t, blk.ID(), got.ID())
	require.Equal(t, blk.HeightV, got.HeightV)
	require.Len(t, got.Transactions, len(blk.Transactions))
}

func TestReconstructSurvivesDroppedShreds(t *testing.T) {
	blk := testBlock(t)

	// A larger block, so erasure coding has enough data shreds to make
	// dropping several of them meaningful.
	for i := 0; i < 40; i++ {
		blk.Transactions = append(blk.Transactions, &tx.Transaction{
			Sender:   ids.GenerateTestNodeID(),
			Receiver: ids.GenerateTestNodeID(),
			Amount:   uint64(i + 1),
			Nonce:    uint64(i),
		})
	}

	shreds, err := Split(blk, 256, 0.3)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(shreds), 20)

	rng := rand.New(rand.NewSource(1))
	dropped := make(map[int]bool)
	for len(dropped) < 5 {
		dropped[rng.Intn(len(shreds))] = true
	}
	var surviving []Shred
	for i, s := range shreds {
		if !dropped[i] {
			surviving = append(surviving, s)
		}
	}

	got, err := Reconstruct(surviving, 0.3)
	require.NoError(t, err)
	require.Equal(t, blk.ID(), got.ID())
}

func TestReconstructFailsBelowThreshold(t *testing.T) {
	blk := testBlock(t)
	for i := 0; i < 40; i++ {
		blk.Transactions = append(blk.Transactions, &tx.Transaction{
			Sender:   ids.GenerateTestNodeID(),
			Receiver: ids.GenerateTestNodeID(),
			Amount:   uint64(i + 1),
		})
	}

	shreds, err := Split(blk, 256, 0.3)
	require.NoError(t, err)

	dataShreds := 0
	for _, s := range shreds {
		if s.IsData {
			dataShreds++
		}
	}
	// Keep far fewer than dataShreds shreds.
	tooFew := shreds[:dataShreds/2]

	_, err = Reconstruct(tooFew, 0.3)
	require.Error(t, err)
}

func TestShredWireRoundTrip(t *testing.T) {
	s := Shred{
		Index:      2,
		DataShreds: 5,
		IsData:     true,
		BlockHash:  ids.GenerateTestID(),
		Payload:    []byte("shred-payload"),
	}
	data, err := s.Encode()
	require.NoError(t, err)

	got, err := DecodeShred(data)
	require.NoError(t, err)
	require.Equal(t, s, got)
}
