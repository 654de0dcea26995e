// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "time"

// MainnetConfig returns the cluster configuration used for production
// deployments: the default 450ms slots with a much longer epoch.
func MainnetConfig() ClusterConfig {
	c := DefaultClusterConfig()
	c.SlotDuration = 450 * time.Millisecond
	c.SlotsPerEpoch = 432_000 / 450 // 960 slots, ~432s per epoch at 450ms
	c.LeaderAdvance = c.SlotsPerEpoch
	return c
}

// TestnetConfig shortens the epoch for faster iteration while keeping
// mainnet's slot duration.
func TestnetConfig() ClusterConfig {
	c := DefaultClusterConfig()
	c.SlotDuration = 450 * time.Millisecond
	c.SlotsPerEpoch = 64
	c.LeaderAdvance = c.SlotsPerEpoch
	return c
}

// LocalConfig is tuned for single-machine development: short slots, small
// epochs, a small fanout appropriate for a handful of local validators.
func LocalConfig() ClusterConfig {
	c := DefaultClusterConfig()
	c.SlotDuration = 50 * time.Millisecond
	c.SlotsPerEpoch = 4
	c.LeaderAdvance = 4
	c.BroadcastFanout = 8
	return c
}

// PresetNames returns the names accepted by GetPresetConfig.
func PresetNames() []string {
	return []string{"mainnet", "testnet", "local"}
}

// GetPresetConfig resolves a preset name to its ClusterConfig.
func GetPresetConfig(name string) (ClusterConfig, error) {
	switch name {
	case "mainnet":
		return MainnetConfig(), nil
	case "testnet":
		return TestnetConfig(), nil
	case "local":
		return LocalConfig(), nil
	default:
		return ClusterConfig{}, ErrUnknownPreset(name)
	}
}
