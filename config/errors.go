// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset reports that name does not match any known preset.
func ErrUnknownPreset(name string) error {
	return fmt.Errorf("config: unknown preset %q", name)
}

var (
	ErrInvalidSlotDuration    = errors.New("config: slot_duration must be >= 1ms")
	ErrInvalidSlotsPerEpoch   = errors.New("config: slots_per_epoch must be >= 1")
	ErrInvalidLeaderAdvance   = errors.New("config: leader_advance must be >= slots_per_epoch")
	ErrInvalidHashesPerTick   = errors.New("config: hashes_per_tick must be >= 1")
	ErrInvalidErasureRatio    = errors.New("config: erasure ratio must be in (0, 1)")
	ErrInvalidFanout          = errors.New("config: broadcast fanout must be >= 1")
	ErrInvalidViabilityFloor  = errors.New("config: viability floor must be in [0, 1]")
	ErrNetworkIDMismatch      = errors.New("config: genesis network_id does not match local network_id")
	ErrEmptyValidatorSet      = errors.New("config: cluster configuration has no validators")
)
