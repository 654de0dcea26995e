// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tx defines the transaction type accepted by the forwarder and
// executed by the parallel executor.
package tx

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/luxfi/ids"
)

// Kind is the transaction's opcode. This spec executes value transfers
// only; no smart-contract bytecode.
type Kind uint8

const (
	KindTransfer Kind = iota
	KindExchange
	KindVote
)

func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindExchange:
		return "exchange"
	case KindVote:
		return "vote"
	default:
		return "unknown"
	}
}

// Transaction is a signed instruction to move value between two accounts,
// mint value (Exchange), or cast a validator vote. VoteBlockHash,
// VoteStateRoot and VoteSlot are only meaningful when Kind is KindVote: a
// vote re-enters the pipeline as a transaction rather than a separate
// message type, so Sender doubles as the voter.
type Transaction struct {
	Sender        ids.NodeID
	Receiver      ids.NodeID
	Amount        uint64
	Kind          Kind
	Timestamp     int64
	Nonce         uint64
	VoteBlockHash ids.ID
	VoteStateRoot ids.ID
	VoteSlot      uint64
	Signature     []byte
}

// Digest is the hash of the transaction's signed fields, used as its
// identity for dedup pools and inclusion proofs.
func (t *Transaction) Digest() ids.ID {
	h := sha256.New()
	h.Write(t.Sender[:])
	h.Write(t.Receiver[:])
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], t.Amount)
	h.Write(buf[:])
	h.Write([]byte{byte(t.Kind)})
	binary.BigEndian.PutUint64(buf[:], uint64(t.Timestamp))
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], t.Nonce)
	h.Write(buf[:])
	if t.Kind == KindVote {
		h.Write(t.VoteBlockHash[:])
		h.Write(t.VoteStateRoot[:])
		binary.BigEndian.PutUint64(buf[:], t.VoteSlot)
		h.Write(buf[:])
	}
	var id ids.ID
	copy(id[:], h.Sum(nil))
	return id
}

// Accounts returns the pair of accounts a transaction touches, used by
// the executor's conflict scheduler to decide whether two transactions
// may run in the same parallel batch.
func (t *Transaction) Accounts() [2]ids.NodeID {
	return [2]ids.NodeID{t.Sender, t.Receiver}
}
