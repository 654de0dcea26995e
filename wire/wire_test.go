// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPortsAreDeterministicAndDistinct(t *testing.T) {
	key := []byte("node-pubkey")
	require.Equal(t, P2PPort(key), P2PPort(key))
	require.NotEqual(t, P2PPort(key), ForwarderPort(key))
	require.NotEqual(t, TPUPort(key), TVUPort(key))
}

func TestTxDatagramRoundTrip(t *testing.T) {
	d := &TxDatagram{Transaction: []byte("tx"), SourceNode: "abc", PacketID: "1", Timestamp: float64(time.Now().UnixNano()) / 1e9, Version: ProtocolVersion}
	data, err := Encode(d)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, d.SourceNode, decoded.SourceNode)
	require.Less(t, decoded.Age(time.Now()), time.Second)
}

func TestEncodeRejectsOversizedDatagram(t *testing.T) {
	d := &TxDatagram{Transaction: make([]byte, MaxDatagramSize)}
	_, err := Encode(d)
	require.ErrorIs(t, err, ErrDatagramTooLarge)
}

func TestShredHeaderRoundTrip(t *testing.T) {
	header := ShredHeader{Index: 3, TotalShreds: 26, IsDataShred: true, BlockHash: "deadbeef"}
	payload := []byte("shred-payload")

	data, err := EncodeShred(header, payload)
	require.NoError(t, err)

	gotHeader, gotPayload, err := DecodeShred(data)
	require.NoError(t, err)
	require.Equal(t, header, gotHeader)
	require.Equal(t, payload, gotPayload)
}

func TestDecodeShredRejectsTruncated(t *testing.T) {
	_, _, err := DecodeShred([]byte{0, 0})
	require.Error(t, err)
}
