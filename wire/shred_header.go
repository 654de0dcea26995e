// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// ShredHeader is the JSON header prefixing every shred: its position in
// the block's shred set, whether it is a data or recovery shred, and the
// block it belongs to.
type ShredHeader struct {
	Index        int    `json:"index"`
	TotalShreds  int    `json:"total_shreds"`
	IsDataShred  bool   `json:"is_data_shred"`
	BlockHash    string `json:"block_hash"`
}

// EncodeShred writes the wire form of a shred: a 4-byte big-endian header
// length, the JSON header, then the raw payload bytes.
func EncodeShred(header ShredHeader, payload []byte) ([]byte, error) {
	headerBytes, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(headerBytes)))
	buf.Write(lenBuf[:])
	buf.Write(headerBytes)
	buf.Write(payload)
	return buf.Bytes(), nil
}

// DecodeShred parses the wire form produced by EncodeShred.
func DecodeShred(data []byte) (ShredHeader, []byte, error) {
	if len(data) < 4 {
		return ShredHeader{}, nil, fmt.Errorf("wire: shred too short: %d bytes", len(data))
	}
	headerLen := binary.BigEndian.Uint32(data[:4])
	if int(4+headerLen) > len(data) {
		return ShredHeader{}, nil, io.ErrUnexpectedEOF
	}
	var header ShredHeader
	if err := json.Unmarshal(data[4:4+headerLen], &header); err != nil {
		return ShredHeader{}, nil, err
	}
	payload := data[4+headerLen:]
	return header, payload, nil
}
