// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &Transaction{
		Sender:    ids.GenerateTestNodeID(),
		Receiver:  ids.GenerateTestNodeID(),
		Amount:    250,
		Kind:      KindTransfer,
		Timestamp: 1700000000,
		Nonce:     7,
		Signature: []byte{1, 2, 3, 4},
	}

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, original.Digest(), decoded.Digest())
	require.Equal(t, original.Sender, decoded.Sender)
	require.Equal(t, original.Receiver, decoded.Receiver)
	require.Equal(t, original.Amount, decoded.Amount)
	require.Equal(t, original.Signature, decoded.Signature)
}

func TestDigestDiffersByKindAndVoteFields(t *testing.T) {
	base := &Transaction{Sender: ids.GenerateTestNodeID(), Receiver: ids.GenerateTestNodeID(), Amount: 1}
	transfer := *base
	transfer.Kind = KindTransfer
	exchange := *base
	exchange.Kind = KindExchange
	require.NotEqual(t, transfer.Digest(), exchange.Digest())

	vote1 := &Transaction{Sender: base.Sender, Kind: KindVote, VoteSlot: 1}
	vote2 := &Transaction{Sender: base.Sender, Kind: KindVote, VoteSlot: 2}
	require.NotEqual(t, vote1.Digest(), vote2.Digest())
}

func TestAccountsReturnsSenderAndReceiver(t *testing.T) {
	a, b := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	txn := &Transaction{Sender: a, Receiver: b}
	require.Equal(t, [2]ids.NodeID{a, b}, txn.Accounts())
}
