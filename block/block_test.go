// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"testing"

	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/errs"
	"github.com/shubham4564/proofwithquantumannealing-sub001/poh"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

func buildBlock(t *testing.T, leader ids.NodeID) *Block {
	t.Helper()
	seq := poh.NewSequencer(ids.GenerateTestID(), 4)
	seq.Tick()
	seq.MixIn(ids.GenerateTestID())
	seq.Tick()
	return &Block{
		HeightV:       1,
		PreviousHashV: ids.GenerateTestID(),
		Leader:        leader,
		TimestampV:    1234,
		Transactions:  []*tx.Transaction{{Sender: ids.GenerateTestNodeID(), Receiver: ids.GenerateTestNodeID(), Amount: 10}},
		PohEntries:    seq.Entries(),
		StateRootV:    ids.GenerateTestID(),
	}
}

func TestBytesDecodeRoundTrip(t *testing.T) {
	b := buildBlock(t, ids.GenerateTestNodeID())
	decoded, err := Decode(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, b.HeightV, decoded.HeightV)
	require.Equal(t, b.PreviousHashV, decoded.PreviousHashV)
	require.Equal(t, b.Leader, decoded.Leader)
	require.Equal(t, b.StateRootV, decoded.StateRootV)
	require.Equal(t, b.ID(), decoded.ID())
}

func TestSignAndVerifySignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	b := buildBlock(t, ids.GenerateTestNodeID())
	require.NoError(t, b.Sign(key))

	pubKey := crypto.FromECDSAPub(&key.PublicKey)
	require.True(t, b.VerifySignature(pubKey))

	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.False(t, b.VerifySignature(crypto.FromECDSAPub(&other.PublicKey)))
}

func TestVerifyChain(t *testing.T) {
	parent := buildBlock(t, ids.GenerateTestNodeID())
	parent.HeightV = 5

	child := buildBlock(t, ids.GenerateTestNodeID())
	child.HeightV = 6
	child.PreviousHashV = parent.ID()
	require.NoError(t, VerifyChain(parent, child))

	child.PreviousHashV = ids.GenerateTestID()
	require.ErrorIs(t, VerifyChain(parent, child), errs.ErrParentMismatch)
}
