// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poh implements the proof-of-history sequencer: a strict hash
// chain that gives every transaction a verifiable position in time
// relative to every other transaction and tick within a leader's slot.
package poh

import (
	"sync"

	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"
)

// Entry is one step of the hash chain: either a bare tick (mix is empty)
// or a transaction-ingest mix-in.
type Entry struct {
	PrevHash  ids.ID
	TickCount uint64
	Mix       []byte
	OutHash   ids.ID
}

// Sequencer produces a PoH entry for every tick and every mixed-in
// transaction digest, chaining each output hash from the previous one.
// A single Sequencer is owned by the leader for the duration of its slot.
type Sequencer struct {
	mu         sync.Mutex
	hash       ids.ID
	tickCount  uint64
	hashesTick uint64
	entries    []Entry
}

// NewSequencer starts a chain from seed, hashing HashesPerTick times
// between produced ticks.
func NewSequencer(seed ids.ID, hashesPerTick uint64) *Sequencer {
	return &Sequencer{hash: seed, hashesTick: hashesPerTick}
}

// Tick advances the chain by HashesPerTick iterated hashes with no
// transaction mixed in, and records the resulting entry.
func (s *Sequencer) Tick() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.hash
	s.hash = iterate(s.hash, s.hashesTick)
	s.tickCount++
	e := Entry{PrevHash: prev, TickCount: s.tickCount, OutHash: s.hash}
	s.entries = append(s.entries, e)
	return e
}

// MixIn advances the chain by one hash over prev_hash||digest, recording
// a transaction's inclusion at this exact point in the sequence.
func (s *Sequencer) MixIn(digest ids.ID) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.hash
	var buf [64]byte
	copy(buf[:32], prev[:])
	copy(buf[32:], digest[:])
	sum := crypto.Keccak256(buf[:])
	var out ids.ID
	copy(out[:], sum)
	s.hash = out
	e := Entry{PrevHash: prev, TickCount: s.tickCount, Mix: digest[:], OutHash: out}
	s.entries = append(s.entries, e)
	return e
}

// Entries returns every entry produced so far, in order. The slice is
// sealed (copied) when the block closes.
func (s *Sequencer) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Head is the current chain tip.
func (s *Sequencer) Head() ids.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash
}

func iterate(h ids.ID, n uint64) ids.ID {
	cur := h
	for i := uint64(0); i < n; i++ {
		sum := crypto.Keccak256(cur[:])
		copy(cur[:], sum)
	}
	return cur
}

// VerifyEntries replays a sealed sequence starting from seed and reports
// whether every entry's out_hash matches H(prev_hash || mix), rejecting a
// block whose producer skipped or forged hashes.
func VerifyEntries(seed ids.ID, hashesPerTick uint64, entries []Entry) bool {
	cur := seed
	for _, e := range entries {
		if e.PrevHash != cur {
			return false
		}
		if len(e.Mix) == 0 {
			cur = iterate(cur, hashesPerTick)
		} else {
			var buf [64]byte
			copy(buf[:32], cur[:])
			copy(buf[32:], e.Mix)
			sum := crypto.Keccak256(buf[:])
			copy(cur[:], sum)
		}
		if e.OutHash != cur {
			return false
		}
	}
	return true
}
