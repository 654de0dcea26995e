// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"net"
	"time"

	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/schedule"
)

// ScheduleResolver adapts a leader schedule and a peer directory into the
// forwarder's LeaderResolver: at any wall-clock instant it answers "who
// leads now, and who leads next, and where do I reach them".
type ScheduleResolver struct {
	schedule *schedule.Manager
	dir      *Directory
	now      func() time.Time
}

// NewScheduleResolver builds a ScheduleResolver. now defaults to
// time.Now when nil, overridable for deterministic tests.
func NewScheduleResolver(sched *schedule.Manager, dir *Directory, now func() time.Time) *ScheduleResolver {
	if now == nil {
		now = time.Now
	}
	return &ScheduleResolver{schedule: sched, dir: dir, now: now}
}

// CurrentLeaderAddr resolves the forwarder ingress address of whoever
// leads the slot containing now().
func (r *ScheduleResolver) CurrentLeaderAddr() (*net.UDPAddr, ids.NodeID, bool) {
	leader, ok := r.schedule.CurrentLeader(r.now())
	if !ok {
		return nil, ids.NodeID{}, false
	}
	addr, ok := r.dir.ForwarderAddr(leader)
	return addr, leader, ok
}

// NextLeaderAddr resolves the forwarder ingress address of whoever leads
// the slot immediately following now()'s, which may be the same validator
// as the current slot (the forwarder itself dedupes that case).
func (r *ScheduleResolver) NextLeaderAddr() (*net.UDPAddr, ids.NodeID, bool) {
	upcoming := r.schedule.Upcoming(r.now(), 2)
	if len(upcoming) < 2 {
		return nil, ids.NodeID{}, false
	}
	next := upcoming[1].Leader
	addr, ok := r.dir.ForwarderAddr(next)
	return addr, next, ok
}
