// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package timeout accounts for the forwarder and TPU's fixed per-send
// deadline: every outbound datagram gets the same bounded budget, and
// slow or failed sends are counted rather than retried at this layer.
package timeout

import (
	"context"
	"sync/atomic"
	"time"
)

// Manager hands out a fixed-duration context for each send and counts
// how many sends exceeded it.
type Manager interface {
	// WithTimeout returns a derived context bounded by the configured
	// duration, and a cancel func the caller must invoke.
	WithTimeout(ctx context.Context) (context.Context, context.CancelFunc)
	// TimeoutDuration returns the configured per-send budget.
	TimeoutDuration() time.Duration
	// RecordTimeout increments the timeout counter; callers invoke this
	// when a send's context expired.
	RecordTimeout()
	// TimeoutCount returns the number of recorded timeouts so far.
	TimeoutCount() uint64
}

type manager struct {
	duration time.Duration
	count    atomic.Uint64
}

// NewManager builds a Manager enforcing duration as every send's budget
// (the spec's "timeout per send: <= 100ms").
func NewManager(duration time.Duration) Manager {
	return &manager{duration: duration}
}

func (m *manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.duration)
}

func (m *manager) TimeoutDuration() time.Duration {
	return m.duration
}

func (m *manager) RecordTimeout() {
	m.count.Add(1)
}

func (m *manager) TimeoutCount() uint64 {
	return m.count.Load()
}
