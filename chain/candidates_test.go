// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

func encodeAsDatagram(t *testing.T, txn *tx.Transaction) []byte {
	t.Helper()
	raw, err := txn.Encode()
	require.NoError(t, err)
	d := &wire.TxDatagram{Transaction: raw, Version: wire.ProtocolVersion}
	out, err := wire.Encode(d)
	require.NoError(t, err)
	return out
}

func TestCollectCandidatesDedupesAcrossSources(t *testing.T) {
	txn := &tx.Transaction{Sender: ids.GenerateTestNodeID(), Receiver: ids.GenerateTestNodeID(), Amount: 1}
	raw := encodeAsDatagram(t, txn)

	// the same transaction arrives via both the TPU buffer and the pending pool
	out, failures := collectCandidates([][]byte{raw}, [][]byte{raw})
	require.Zero(t, failures)
	require.Len(t, out, 1)
}

func TestCollectCandidatesCountsDecodeFailures(t *testing.T) {
	txn := &tx.Transaction{Sender: ids.GenerateTestNodeID(), Receiver: ids.GenerateTestNodeID(), Amount: 1}
	good := encodeAsDatagram(t, txn)
	garbage := []byte("not a valid datagram")

	out, failures := collectCandidates([][]byte{good, garbage})
	require.Len(t, out, 1)
	require.Equal(t, 1, failures)
}
