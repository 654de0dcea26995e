// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schedule

import (
	"sync"
	"time"

	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// Manager publishes the current and next epoch's leader schedule via an
// atomic swap of immutable Epoch values, so readers (the forwarder, the
// chain task) never block on the writer that regenerates "next".
type Manager struct {
	mu   sync.RWMutex
	cur  *Epoch
	next *Epoch

	slotDuration    time.Duration
	slotsPerEpoch   int
	viabilityFloor  uint64
	oracle          Oracle
	validatorSet    validators.Set
}

// NewManager builds a Manager with no epoch computed yet; Bootstrap
// computes epoch 0, and callers must call RegenerateNext before the
// current epoch ends, or Rollover will fail.
func NewManager(slotDuration time.Duration, slotsPerEpoch int, viabilityFloor uint64, oracle Oracle, set validators.Set) *Manager {
	return &Manager{
		slotDuration:   slotDuration,
		slotsPerEpoch:  slotsPerEpoch,
		viabilityFloor: viabilityFloor,
		oracle:         oracle,
		validatorSet:   set,
	}
}

// Bootstrap computes epoch 0 starting at start, from genesisHash as the
// "parent block hash" seed.
func (m *Manager) Bootstrap(start time.Time, genesisHash ids.ID) error {
	e, err := Generate(0, genesisHash, start, m.slotDuration, m.slotsPerEpoch, m.validatorSet, m.oracle, m.viabilityFloor)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.cur = e
	m.mu.Unlock()
	return nil
}

// RegenerateNext computes the schedule for the epoch following the
// current one, from the given parent block hash, without yet publishing
// it — Rollover performs the atomic swap.
func (m *Manager) RegenerateNext(parentBlockHash ids.ID) error {
	m.mu.RLock()
	cur := m.cur
	m.mu.RUnlock()
	if cur == nil {
		return ErrNoValidators
	}
	start := cur.StartTime.Add(time.Duration(len(cur.Leaders)) * cur.SlotDuration)
	e, err := Generate(cur.Index+1, parentBlockHash, start, m.slotDuration, m.slotsPerEpoch, m.validatorSet, m.oracle, m.viabilityFloor)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.next = e
	m.mu.Unlock()
	return nil
}

// HasNext reports whether the following epoch's schedule has already
// been computed and is waiting for Rollover to publish it.
func (m *Manager) HasNext() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.next != nil
}

// TransitionNeeded reports whether now has reached the current epoch's
// end.
func (m *Manager) TransitionNeeded(now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return false
	}
	end := m.cur.StartTime.Add(time.Duration(len(m.cur.Leaders)) * m.cur.SlotDuration)
	return !now.Before(end)
}

// Rollover swaps next into current. It is a no-op error if next has not
// been computed yet, since rollover must never leave a gap.
func (m *Manager) Rollover() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next == nil {
		return ErrNoValidators
	}
	m.cur = m.next
	m.next = nil
	return nil
}

// CurrentLeader returns the leader for "now" within the current epoch.
func (m *Manager) CurrentLeader(now time.Time) (ids.NodeID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return ids.NodeID{}, false
	}
	slot := slotIndex(m.cur, now)
	return m.cur.LeaderAt(slot)
}

// CurrentSlot returns the slot index within the current epoch for now,
// the value a validator's emitted vote records alongside its outcome.
func (m *Manager) CurrentSlot(now time.Time) (uint64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return 0, false
	}
	return slotIndex(m.cur, now), true
}

// LeaderAtSlot returns the leader for a specific slot of the current
// epoch.
func (m *Manager) LeaderAtSlot(slot uint64) (ids.NodeID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return ids.NodeID{}, false
	}
	return m.cur.LeaderAt(slot)
}

// Upcoming returns the next n (slot, leader, absolute start time) tuples
// starting from now, spanning into the next epoch if published.
func (m *Manager) Upcoming(now time.Time, n int) []UpcomingSlot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []UpcomingSlot
	if m.cur != nil {
		start := slotIndex(m.cur, now)
		for s := start; s < uint64(len(m.cur.Leaders)) && len(out) < n; s++ {
			leader, _ := m.cur.LeaderAt(s)
			out = append(out, UpcomingSlot{Slot: s, Leader: leader, AbsoluteTime: m.cur.SlotStart(s)})
		}
	}
	if m.next != nil {
		for s := uint64(0); s < uint64(len(m.next.Leaders)) && len(out) < n; s++ {
			leader, _ := m.next.LeaderAt(s)
			out = append(out, UpcomingSlot{Slot: s, Leader: leader, AbsoluteTime: m.next.SlotStart(s)})
		}
	}
	return out
}

// UpcomingSlot is one entry of Manager.Upcoming's result.
type UpcomingSlot struct {
	Slot         uint64
	Leader       ids.NodeID
	AbsoluteTime time.Time
}

func slotIndex(e *Epoch, now time.Time) uint64 {
	if now.Before(e.StartTime) {
		return 0
	}
	elapsed := now.Sub(e.StartTime)
	return uint64(elapsed / e.SlotDuration)
}
