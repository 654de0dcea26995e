// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"encoding/json"
	"errors"
	"time"
)

// MaxDatagramSize is the largest forwarder/TPU datagram this node will
// accept or send, matching the UDP practical payload ceiling.
const MaxDatagramSize = 65507

// ProtocolVersion is the wire version stamped on every forwarder/TPU
// datagram this build produces.
const ProtocolVersion = "1"

// ErrDatagramTooLarge is returned by Encode when the serialized datagram
// would exceed MaxDatagramSize.
var ErrDatagramTooLarge = errors.New("wire: datagram exceeds max size")

// TxDatagram is the forwarder/TPU wire format: a serialized transaction
// plus provenance and freshness metadata.
type TxDatagram struct {
	Transaction []byte  `json:"transaction"`
	SourceNode  string  `json:"source_node"`
	PacketID    string  `json:"packet_id"`
	Timestamp   float64 `json:"timestamp"`
	Version     string  `json:"version"`
}

// Age returns how long ago Timestamp was relative to now.
func (d *TxDatagram) Age(now time.Time) time.Duration {
	sent := time.Unix(0, int64(d.Timestamp*float64(time.Second)))
	return now.Sub(sent)
}

// Encode serializes d as JSON, rejecting datagrams too large for a
// single UDP send.
func Encode(d *TxDatagram) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDatagramSize {
		return nil, ErrDatagramTooLarge
	}
	return data, nil
}

// Decode parses a received datagram.
func Decode(data []byte) (*TxDatagram, error) {
	var d TxDatagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
