// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package executor applies transactions to account state in parallel
// wherever two transactions touch disjoint accounts, packing conflicting
// transactions into sequential batches.
package executor

import (
	"crypto/sha256"
	"sort"
	"sync"

	"github.com/luxfi/ids"
	"golang.org/x/sync/errgroup"

	"github.com/shubham4564/proofwithquantumannealing-sub001/errs"
	qmath "github.com/shubham4564/proofwithquantumannealing-sub001/utils/math"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

// Result is the outcome of executing a single transaction.
type Result struct {
	Tx  *tx.Transaction
	Err error
}

// account is one balance plus the fine-grained lock that serializes
// writers to it within a batch, per the executor's "acquire account locks
// in a globally sorted order" execution semantics.
type account struct {
	mu      sync.Mutex
	balance uint64
}

// State is the account-state map the executor mutates. Callers clone it
// (copy-on-write) before taking a validator snapshot at a block boundary.
// structMu guards only insertion of new accounts into the map, never a
// balance itself, so two goroutines crediting/debiting disjoint accounts
// never contend on anything but their own account's mutex.
type State struct {
	structMu sync.RWMutex
	accounts map[ids.NodeID]*account
}

// NewState builds a State seeded with the given balances.
func NewState(initial map[ids.NodeID]uint64) *State {
	s := &State{accounts: make(map[ids.NodeID]*account, len(initial))}
	for k, v := range initial {
		s.accounts[k] = &account{balance: v}
	}
	return s
}

// Clone returns a deep copy, used for read snapshots at block boundaries.
func (s *State) Clone() *State {
	s.structMu.RLock()
	defer s.structMu.RUnlock()
	out := make(map[ids.NodeID]*account, len(s.accounts))
	for k, a := range s.accounts {
		a.mu.Lock()
		out[k] = &account{balance: a.balance}
		a.mu.Unlock()
	}
	return &State{accounts: out}
}

// Balance returns the current balance of account, 0 if never seen.
func (s *State) Balance(id ids.NodeID) uint64 {
	a := s.lookup(id)
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// lookup returns the existing account entry for id, or nil.
func (s *State) lookup(id ids.NodeID) *account {
	s.structMu.RLock()
	defer s.structMu.RUnlock()
	return s.accounts[id]
}

// getOrCreate returns id's account entry, inserting a zero-balance one
// under a brief write lock if this is the first time id is touched.
func (s *State) getOrCreate(id ids.NodeID) *account {
	if a := s.lookup(id); a != nil {
		return a
	}
	s.structMu.Lock()
	defer s.structMu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return a
	}
	a := &account{}
	s.accounts[id] = a
	return a
}

// Root computes the deterministic hash of the sorted (account, balance)
// pairs: identical state always yields an identical root.
func (s *State) Root() ids.ID {
	s.structMu.RLock()
	byID := make(map[ids.NodeID]*account, len(s.accounts))
	ordered := make([]ids.NodeID, 0, len(s.accounts))
	for k, a := range s.accounts {
		byID[k] = a
		ordered = append(ordered, k)
	}
	s.structMu.RUnlock()

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].String() < ordered[j].String()
	})

	h := sha256.New()
	for _, id := range ordered {
		h.Write(id[:])
		entry := byID[id]
		entry.mu.Lock()
		bal := entry.balance
		entry.mu.Unlock()
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(bal >> (56 - 8*i))
		}
		h.Write(buf[:])
	}
	var root ids.ID
	copy(root[:], h.Sum(nil))
	return root
}

// apply performs a single transaction's balance delta, locking sender and
// receiver in a globally sorted byte order so two transactions touching
// overlapping accounts (necessarily in different batches, never
// concurrently per the scheduler's disjointness guarantee, but defended
// here regardless) can never deadlock.
func (s *State) apply(t *tx.Transaction) error {
	if t.Kind == tx.KindVote {
		// Votes carry no balance delta; they're surfaced to the vote
		// tracker by chain.Manager, not applied to account state.
		return nil
	}

	sender := s.getOrCreate(t.Sender)
	receiver := s.getOrCreate(t.Receiver)
	first, second := sender, receiver
	if !accountBefore(t.Sender, t.Receiver) {
		first, second = receiver, sender
	}
	first.mu.Lock()
	if second != first {
		second.mu.Lock()
	}
	defer func() {
		if second != first {
			second.mu.Unlock()
		}
		first.mu.Unlock()
	}()

	if t.Kind != tx.KindExchange {
		if sender.balance < t.Amount {
			return errs.New(errs.KindInsufficientBalance, "account %s has %d, needs %d", t.Sender, sender.balance, t.Amount)
		}
		newBal, err := qmath.Sub64(sender.balance, t.Amount)
		if err != nil {
			return err
		}
		sender.balance = newBal
	}
	credited, err := qmath.Add64(receiver.balance, t.Amount)
	if err != nil {
		return err
	}
	receiver.balance = credited
	return nil
}

// accountBefore orders two NodeIDs for lock acquisition.
func accountBefore(a, b ids.NodeID) bool {
	return string(a[:]) < string(b[:])
}

// Batches greedily packs transactions so that every transaction within a
// batch touches an account set disjoint from every other transaction in
// that batch. Batches themselves must execute in order.
func Batches(txs []*tx.Transaction) [][]*tx.Transaction {
	var batches [][]*tx.Transaction
	for _, t := range txs {
		placed := false
		for bi := range batches {
			if disjointFromBatch(batches[bi], t) {
				batches[bi] = append(batches[bi], t)
				placed = true
				break
			}
		}
		if !placed {
			batches = append(batches, []*tx.Transaction{t})
		}
	}
	return batches
}

func disjointFromBatch(batch []*tx.Transaction, t *tx.Transaction) bool {
	touched := t.Accounts()
	for _, existing := range batch {
		ex := existing.Accounts()
		for _, a := range ex {
			if a == touched[0] || a == touched[1] {
				return false
			}
		}
	}
	return true
}

// Execute runs every batch in order, running transactions within a batch
// concurrently (one errgroup goroutine per transaction), and returns every
// transaction's result plus the resulting state root.
func Execute(state *State, txs []*tx.Transaction) ([]Result, ids.ID) {
	results := make([]Result, len(txs))
	batches := Batches(txs)

	// map each transaction back to its position in the original slice so
	// results preserve caller-visible ordering (PoH order), not batch order.
	pos := make(map[*tx.Transaction]int, len(txs))
	for i, t := range txs {
		pos[t] = i
	}

	for _, batch := range batches {
		var eg errgroup.Group
		batch := batch
		for _, t := range batch {
			t := t
			eg.Go(func() error {
				err := state.apply(t)
				results[pos[t]] = Result{Tx: t, Err: err}
				return nil
			})
		}
		_ = eg.Wait()
	}

	return results, state.Root()
}
