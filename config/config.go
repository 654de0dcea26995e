// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the cluster configuration every node in a
// quantum-annealing-assisted cluster must agree on: slot and epoch timing,
// proof-of-history rate, erasure-coding ratio and the broadcast-tree
// fanout.
package config

import "time"

// ClusterConfig is the set of parameters that must be identical across
// every node in a cluster; it is carried inside the genesis file and
// bounds-checked with Validate when LoadGenesis reads that file.
type ClusterConfig struct {
	// SlotDuration is the wall-clock duration of one leader slot.
	SlotDuration time.Duration
	// SlotsPerEpoch is epoch_duration / slot_duration.
	SlotsPerEpoch int
	// LeaderAdvance is how many slots ahead the next epoch's schedule is
	// computed, in slots; must be >= SlotsPerEpoch.
	LeaderAdvance int
	// HashesPerTick is the number of iterated hashes the PoH sequencer
	// performs between ticks.
	HashesPerTick uint64
	// ErasureRatio (rho) controls how many recovery shreds are generated
	// per data shred: R = ceil(D * ErasureRatio).
	ErasureRatio float64
	// BroadcastFanout is the number of children each node forwards shreds
	// to in the broadcast tree.
	BroadcastFanout int
	// ViabilityFloor is the minimum quantum-annealing effective score a
	// validator needs to be scheduled as leader.
	ViabilityFloor float64
}

// DefaultClusterConfig returns sane defaults suitable for local development.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		SlotDuration:    450 * time.Millisecond,
		SlotsPerEpoch:   4,
		LeaderAdvance:   4,
		HashesPerTick:   12_500,
		ErasureRatio:    0.3,
		BroadcastFanout: 200,
		ViabilityFloor:  0.1,
	}
}

// Validate checks every field is within the bounds the rest of the system
// assumes.
func (c ClusterConfig) Validate() error {
	if c.SlotDuration < time.Millisecond {
		return ErrInvalidSlotDuration
	}
	if c.SlotsPerEpoch < 1 {
		return ErrInvalidSlotsPerEpoch
	}
	if c.LeaderAdvance < c.SlotsPerEpoch {
		return ErrInvalidLeaderAdvance
	}
	if c.HashesPerTick < 1 {
		return ErrInvalidHashesPerTick
	}
	if c.ErasureRatio <= 0 || c.ErasureRatio >= 1 {
		return ErrInvalidErasureRatio
	}
	if c.BroadcastFanout < 1 {
		return ErrInvalidFanout
	}
	if c.ViabilityFloor < 0 || c.ViabilityFloor > 1 {
		return ErrInvalidViabilityFloor
	}
	return nil
}

// EpochDuration is SlotDuration * SlotsPerEpoch.
func (c ClusterConfig) EpochDuration() time.Duration {
	return c.SlotDuration * time.Duration(c.SlotsPerEpoch)
}

// Builder incrementally constructs a ClusterConfig, mirroring the
// cluster's own builder-style parameter assembly.
type Builder struct {
	cfg ClusterConfig
}

// NewBuilder starts from DefaultClusterConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultClusterConfig()}
}

func (b *Builder) SlotDuration(d time.Duration) *Builder {
	b.cfg.SlotDuration = d
	return b
}

func (b *Builder) SlotsPerEpoch(n int) *Builder {
	b.cfg.SlotsPerEpoch = n
	return b
}

func (b *Builder) LeaderAdvance(n int) *Builder {
	b.cfg.LeaderAdvance = n
	return b
}

func (b *Builder) HashesPerTick(n uint64) *Builder {
	b.cfg.HashesPerTick = n
	return b
}

func (b *Builder) ErasureRatio(rho float64) *Builder {
	b.cfg.ErasureRatio = rho
	return b
}

func (b *Builder) BroadcastFanout(n int) *Builder {
	b.cfg.BroadcastFanout = n
	return b
}

func (b *Builder) ViabilityFloor(f float64) *Builder {
	b.cfg.ViabilityFloor = f
	return b
}

// Build validates and returns the assembled ClusterConfig.
func (b *Builder) Build() (ClusterConfig, error) {
	if err := b.cfg.Validate(); err != nil {
		return ClusterConfig{}, err
	}
	return b.cfg, nil
}
