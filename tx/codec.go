// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/codec"
)

// wireForm is the canonical shape encoded inside a forwarder/TPU
// datagram's "transaction" field.
type wireForm struct {
	Sender        ids.NodeID `json:"sender"`
	Receiver      ids.NodeID `json:"receiver"`
	Amount        uint64     `json:"amount"`
	Kind          Kind       `json:"kind"`
	Timestamp     int64      `json:"timestamp"`
	Nonce         uint64     `json:"nonce"`
	VoteBlockHash ids.ID     `json:"vote_block_hash"`
	VoteStateRoot ids.ID     `json:"vote_state_root"`
	VoteSlot      uint64     `json:"vote_slot"`
	Signature     []byte     `json:"signature"`
}

// Encode produces the canonical byte form wire.TxDatagram.Transaction
// carries: decode(encode(tx)) reproduces every field bit-for-bit.
func (t *Transaction) Encode() ([]byte, error) {
	w := wireForm{
		Sender:        t.Sender,
		Receiver:      t.Receiver,
		Amount:        t.Amount,
		Kind:          t.Kind,
		Timestamp:     t.Timestamp,
		Nonce:         t.Nonce,
		VoteBlockHash: t.VoteBlockHash,
		VoteStateRoot: t.VoteStateRoot,
		VoteSlot:      t.VoteSlot,
		Signature:     t.Signature,
	}
	return codec.Codec.Marshal(codec.CurrentVersion, w)
}

// Decode parses the byte form produced by Encode.
func Decode(data []byte) (*Transaction, error) {
	var w wireForm
	if _, err := codec.Codec.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &Transaction{
		Sender:        w.Sender,
		Receiver:      w.Receiver,
		Amount:        w.Amount,
		Kind:          w.Kind,
		Timestamp:     w.Timestamp,
		Nonce:         w.Nonce,
		VoteBlockHash: w.VoteBlockHash,
		VoteStateRoot: w.VoteStateRoot,
		VoteSlot:      w.VoteSlot,
		Signature:     w.Signature,
	}, nil
}
