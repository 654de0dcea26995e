// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain owns the canonical chain of blocks: the durable store
// keyed by height and hash, the block assembler that turns a leader's
// slot into a signed block, and the single-threaded chain task that
// drives both across slot boundaries.
package chain

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/errs"
)

var (
	blockPrefix  = []byte("b/") // height (8 bytes BE) -> encoded block
	hashPrefix   = []byte("h/") // block hash -> height (8 bytes BE)
	tipKey       = []byte("tip")
)

// Store is the single owner of the canonical block chain for this node.
// Every other component holds only immutable snapshots (a cloned
// executor.State) or cursor indices (a height number) into it, never a
// live reference into Store's own bookkeeping.
type Store struct {
	db database.Database

	mu  sync.RWMutex
	tip uint64
	has bool
}

// NewStore wraps db as a chain Store. db is expected to be durable
// (pebble-backed, matching the teacher's cockroachdb/pebble dependency)
// so a restart resumes from the last committed height rather than
// replaying from genesis.
func NewStore(db database.Database) (*Store, error) {
	s := &Store{db: db}
	raw, err := db.Get(tipKey)
	if err != nil {
		if err == database.ErrNotFound {
			return s, nil
		}
		return nil, fmt.Errorf("chain: loading tip: %w", err)
	}
	s.tip = binary.BigEndian.Uint64(raw)
	s.has = true
	return s, nil
}

func heightKey(h uint64) []byte {
	key := make([]byte, len(blockPrefix)+8)
	copy(key, blockPrefix)
	binary.BigEndian.PutUint64(key[len(blockPrefix):], h)
	return key
}

func hashKey(id ids.ID) []byte {
	key := make([]byte, len(hashPrefix)+len(id))
	copy(key, hashPrefix)
	copy(key[len(hashPrefix):], id[:])
	return key
}

// Tip returns the highest block height committed to the chain and
// whether the chain has any blocks at all (it is empty before genesis'
// first block is added).
func (s *Store) Tip() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tip, s.has
}

// GetByHeight loads the block committed at height, or errs.ErrUnknownBlock
// if none has been added yet.
func (s *Store) GetByHeight(height uint64) (*block.Block, error) {
	raw, err := s.db.Get(heightKey(height))
	if err != nil {
		if err == database.ErrNotFound {
			return nil, errs.ErrUnknownBlock
		}
		return nil, err
	}
	return block.Decode(raw)
}

// GetByHash resolves a block hash to its height and loads the block.
func (s *Store) GetByHash(hash ids.ID) (*block.Block, error) {
	raw, err := s.db.Get(hashKey(hash))
	if err != nil {
		if err == database.ErrNotFound {
			return nil, errs.ErrUnknownBlock
		}
		return nil, err
	}
	height := binary.BigEndian.Uint64(raw)
	return s.GetByHeight(height)
}

// Add commits b to the chain. Adding an already-finalized block a second
// time (same height, same hash) is a no-op, per the idempotence
// requirement that re-delivering a block never double-applies it.
func (s *Store) Add(b *block.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && b.HeightV <= s.tip {
		existing, err := s.GetByHeight(b.HeightV)
		if err == nil && existing.ID() == b.ID() {
			return nil
		}
	}
	if s.has && b.HeightV != s.tip+1 {
		return errs.ErrHeightMismatch
	}

	if err := s.db.Put(heightKey(b.HeightV), b.Bytes()); err != nil {
		return fmt.Errorf("chain: committing block %d: %w", b.HeightV, err)
	}
	heightBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(heightBuf, b.HeightV)
	if err := s.db.Put(hashKey(b.ID()), heightBuf); err != nil {
		return fmt.Errorf("chain: indexing block %d by hash: %w", b.HeightV, err)
	}
	if err := s.db.Put(tipKey, heightBuf); err != nil {
		return fmt.Errorf("chain: committing tip: %w", err)
	}

	s.tip = b.HeightV
	s.has = true
	return nil
}
