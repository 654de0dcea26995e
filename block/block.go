// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block defines the canonical Block type produced at every slot
// boundary: a leader's ordered transactions, the PoH sequence that proves
// they were processed in order, and the resulting state root.
package block

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/binary"

	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/codec"
	"github.com/shubham4564/proofwithquantumannealing-sub001/errs"
	"github.com/shubham4564/proofwithquantumannealing-sub001/poh"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

// Block is one slot's worth of ordered transactions, sealed with a PoH
// sequence and the resulting account-state root.
type Block struct {
	HeightV       uint64
	PreviousHashV ids.ID
	Leader        ids.NodeID
	TimestampV    int64
	Transactions  []*tx.Transaction
	PohEntries    []poh.Entry
	StateRootV    ids.ID
	Signature     []byte

	status errs.Status
}

// ID is the SHA-256 hash of the block's height, previous hash, leader,
// timestamp, state root and every transaction's digest, in that order.
// The PoH entries and the signature are not part of the hash.
func (b *Block) ID() ids.ID {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], b.HeightV)
	h.Write(buf[:])
	h.Write(b.PreviousHashV[:])
	h.Write(b.Leader[:])
	binary.BigEndian.PutUint64(buf[:], uint64(b.TimestampV))
	h.Write(buf[:])
	h.Write(b.StateRootV[:])
	for _, t := range b.Transactions {
		digest := t.Digest()
		h.Write(digest[:])
	}
	var id ids.ID
	copy(id[:], h.Sum(nil))
	return id
}

func (b *Block) Height() uint64        { return b.HeightV }
func (b *Block) Timestamp() int64      { return b.TimestampV }
func (b *Block) Parent() ids.ID        { return b.PreviousHashV }
func (b *Block) StateRoot() ids.ID     { return b.StateRootV }
func (b *Block) Status() errs.Status   { return b.status }
func (b *Block) NumTransactions() int  { return len(b.Transactions) }

// wireForm is the canonical, codec-marshaled shape of a Block: the form
// shredded for broadcast and reconstructed by downstream validators.
type wireForm struct {
	Height       uint64             `json:"height"`
	PreviousHash ids.ID             `json:"previous_hash"`
	Leader       ids.NodeID         `json:"leader"`
	Timestamp    int64              `json:"timestamp"`
	Transactions []*tx.Transaction  `json:"transactions"`
	PohEntries   []poh.Entry        `json:"poh_entries"`
	StateRoot    ids.ID             `json:"state_root"`
	Signature    []byte             `json:"signature"`
}

func (b *Block) toWireForm() wireForm {
	return wireForm{
		Height:       b.HeightV,
		PreviousHash: b.PreviousHashV,
		Leader:       b.Leader,
		Timestamp:    b.TimestampV,
		Transactions: b.Transactions,
		PohEntries:   b.PohEntries,
		StateRoot:    b.StateRootV,
		Signature:    b.Signature,
	}
}

// Bytes is the deterministic encoding shredded for broadcast and replayed
// by validators on reconstruction; it is what Sign signs and what
// SignedDigest hashes, modulo the Signature field itself.
func (b *Block) Bytes() []byte {
	data, err := codec.Codec.Marshal(codec.CurrentVersion, b.toWireForm())
	if err != nil {
		// Transactions and PoH entries are all plain data types; a
		// marshal failure here means a field was built incorrectly
		// upstream, not a transient condition a caller can retry.
		panic("block: canonical encoding failed: " + err.Error())
	}
	return data
}

// Decode parses the wire form produced by Bytes back into a Block.
func Decode(data []byte) (*Block, error) {
	var w wireForm
	if _, err := codec.Codec.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &Block{
		HeightV:       w.Height,
		PreviousHashV: w.PreviousHash,
		Leader:        w.Leader,
		TimestampV:    w.Timestamp,
		Transactions:  w.Transactions,
		PohEntries:    w.PohEntries,
		StateRootV:    w.StateRoot,
		Signature:     w.Signature,
	}, nil
}

// SignedDigest is the Keccak256 hash of the block's signature-stripped
// canonical encoding, the payload the leader's signature covers.
func (b *Block) SignedDigest() []byte {
	unsigned := *b
	unsigned.Signature = nil
	return crypto.Keccak256(unsigned.Bytes())
}

// Sign signs the block's SignedDigest with the leader's private key,
// step 7 of the block assembler's procedure ("sign the block's canonical
// serialization").
func (b *Block) Sign(leaderKey *ecdsa.PrivateKey) error {
	sig, err := crypto.Sign(b.SignedDigest(), leaderKey)
	if err != nil {
		return err
	}
	b.Signature = sig
	return nil
}

// VerifySignature reports whether Signature is a valid signature over
// SignedDigest() by leaderPubKey, the raw public key bytes of the
// scheduled leader for this block's slot.
func (b *Block) VerifySignature(leaderPubKey []byte) bool {
	if len(b.Signature) == 0 {
		return false
	}
	return crypto.VerifySignature(leaderPubKey, b.SignedDigest(), b.Signature[:len(b.Signature)-1])
}

// Accept marks the block as finalized by the vote tracker.
func (b *Block) Accept(context.Context) error {
	b.status = errs.StatusAccepted
	return nil
}

// Reject marks the block as abandoned (quorum not reached, or shred
// reconstruction timed out and the validator abstained).
func (b *Block) Reject(context.Context) error {
	b.status = errs.StatusRejected
	return nil
}

// Verify marks the block as verified. It performs no check itself: Block
// does not own executor state, so re-execution and the state-root
// comparison are done by validate.Validate.
func (b *Block) Verify(context.Context) error {
	b.status = errs.StatusVerified
	return nil
}

// VerifyChain checks the previous_hash/height invariant of child against
// parent.
func VerifyChain(parent, child *Block) error {
	if child.HeightV != parent.HeightV+1 {
		return errs.ErrHeightMismatch
	}
	if child.PreviousHashV != parent.ID() {
		return errs.ErrParentMismatch
	}
	return nil
}
