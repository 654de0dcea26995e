// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package shred erasure-codes a block into fixed-size fragments for
// broadcast and reconstructs a block from any sufficient subset of them.
package shred

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/reedsolomon"
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// DefaultShredSize is the approximate payload capacity of one data shred,
// matching the spec's ~1 KiB target.
const DefaultShredSize = 1024

// lengthPrefixSize is the size of the big-endian length prefix framed
// around a block's canonical bytes before erasure coding, so Reconstruct
// can recover the exact payload length from the zero-padded last shard.
const lengthPrefixSize = 4

// Shred is one fragment of an erasure-coded block: either a slice of its
// canonical encoding (a data shred) or a recovery fragment computed from
// it (a recovery shred).
type Shred struct {
	Index      int
	DataShreds int
	IsData     bool
	BlockHash  ids.ID
	Payload    []byte
}

func (s Shred) header() wire.ShredHeader {
	return wire.ShredHeader{
		Index:       s.Index,
		TotalShreds: s.DataShreds,
		IsDataShred: s.IsData,
		BlockHash:   s.BlockHash.String(),
	}
}

// Encode produces the wire form of s.
func (s Shred) Encode() ([]byte, error) {
	return wire.EncodeShred(s.header(), s.Payload)
}

// DecodeShred parses the wire form produced by Shred.Encode.
func DecodeShred(data []byte) (Shred, error) {
	h, payload, err := wire.DecodeShred(data)
	if err != nil {
		return Shred{}, err
	}
	blockHash, err := ids.FromString(h.BlockHash)
	if err != nil {
		return Shred{}, fmt.Errorf("shred: invalid block hash %q: %w", h.BlockHash, err)
	}
	return Shred{
		Index:      h.Index,
		DataShreds: h.TotalShreds,
		IsData:     h.IsDataShred,
		BlockHash:  blockHash,
		Payload:    payload,
	}, nil
}

// recoveryCount is R = ceil(D * erasureRatio), always at least 1, the
// derived quantity every node in the cluster computes from its own copy
// of the shared erasure ratio rather than carrying it on the wire.
func recoveryCount(dataShreds int, erasureRatio float64) int {
	r := int(math.Ceil(float64(dataShreds) * erasureRatio))
	if r < 1 {
		r = 1
	}
	return r
}

// Split shreds b's canonical encoding into data fragments of approximately
// shredSize bytes plus recoveryCount(dataShreds, erasureRatio) recovery
// fragments, per the block assembler's final step.
func Split(b *block.Block, shredSize int, erasureRatio float64) ([]Shred, error) {
	if shredSize <= 0 {
		shredSize = DefaultShredSize
	}
	payload := b.Bytes()

	framed := make([]byte, lengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(framed[:lengthPrefixSize], uint32(len(payload)))
	copy(framed[lengthPrefixSize:], payload)

	dataShreds := (len(framed) + shredSize - 1) / shredSize
	if dataShreds < 1 {
		dataShreds = 1
	}
	recoveryShreds := recoveryCount(dataShreds, erasureRatio)

	enc, err := reedsolomon.New(dataShreds, recoveryShreds)
	if err != nil {
		return nil, fmt.Errorf("shred: building encoder: %w", err)
	}
	shards, err := enc.Split(framed)
	if err != nil {
		return nil, fmt.Errorf("shred: splitting block bytes: %w", err)
	}
	shardSize := len(shards[0])
	for i := 0; i < recoveryShreds; i++ {
		shards = append(shards, make([]byte, shardSize))
	}
	if err := enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("shred: computing recovery shards: %w", err)
	}

	blockHash := b.ID()
	out := make([]Shred, len(shards))
	for i, shard := range shards {
		out[i] = Shred{
			Index:      i,
			DataShreds: dataShreds,
			IsData:     i < dataShreds,
			BlockHash:  blockHash,
			Payload:    shard,
		}
	}
	return out, nil
}

// Reconstruct rebuilds a block from a set of received shreds, data or
// recovery, in any order. It needs at least DataShreds distinct shreds
// to invert the code and fails loudly rather than guessing on a short
// set, so the caller can abstain from voting on this slot.
func Reconstruct(received []Shred, erasureRatio float64) (*block.Block, error) {
	if len(received) == 0 {
		return nil, errors.New("shred: no shreds received")
	}
	dataShreds := received[0].DataShreds
	blockHash := received[0].BlockHash
	recoveryShreds := recoveryCount(dataShreds, erasureRatio)
	total := dataShreds + recoveryShreds

	shards := make([][]byte, total)
	present := 0
	for _, s := range received {
		if s.BlockHash != blockHash {
			return nil, errors.New("shred: mixed block hashes in reconstruction set")
		}
		if s.Index < 0 || s.Index >= total {
			continue
		}
		if shards[s.Index] == nil {
			shards[s.Index] = s.Payload
			present++
		}
	}
	if present < dataShreds {
		return nil, fmt.Errorf("shred: insufficient shreds: have %d, need %d of %d", present, dataShreds, total)
	}

	enc, err := reedsolomon.New(dataShreds, recoveryShreds)
	if err != nil {
		return nil, fmt.Errorf("shred: building encoder: %w", err)
	}
	if err := enc.Reconstruct(shards); err != nil {
		return nil, fmt.Errorf("shred: reconstruction failed: %w", err)
	}

	var joined bytes.Buffer
	if err := enc.Join(&joined, shards, dataShreds*len(shards[0])); err != nil {
		return nil, fmt.Errorf("shred: joining shards: %w", err)
	}
	framed := joined.Bytes()
	if len(framed) < lengthPrefixSize {
		return nil, errors.New("shred: reconstructed payload too short")
	}
	payloadLen := binary.BigEndian.Uint32(framed[:lengthPrefixSize])
	if int(lengthPrefixSize)+int(payloadLen) > len(framed) {
		return nil, errors.New("shred: reconstructed payload length out of range")
	}
	end := lengthPrefixSize + int(payloadLen)

	blk, err := block.Decode(framed[lengthPrefixSize:end])
	if err != nil {
		return nil, fmt.Errorf("shred: decoding reconstructed block: %w", err)
	}
	return blk, nil
}
