// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forwarder

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/timeout"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

type fakeSender struct {
	sent int
	err  error
}

func (f *fakeSender) Send(ctx context.Context, addr *net.UDPAddr, payload []byte) error {
	f.sent++
	return f.err
}

type fakeResolver struct {
	curAddr, nextAddr     *net.UDPAddr
	curLeader, nextLeader ids.NodeID
	haveCur, haveNext     bool
}

func (r *fakeResolver) CurrentLeaderAddr() (*net.UDPAddr, ids.NodeID, bool) {
	return r.curAddr, r.curLeader, r.haveCur
}

func (r *fakeResolver) NextLeaderAddr() (*net.UDPAddr, ids.NodeID, bool) {
	return r.nextAddr, r.nextLeader, r.haveNext
}

func newTestForwarder(self ids.NodeID, snd *fakeSender, resolver *fakeResolver) *Forwarder {
	return New(self, snd, timeout.NewManager(100*time.Millisecond), resolver, nil)
}

func TestForwardSendsToCurrentAndNext(t *testing.T) {
	self := ids.GenerateTestNodeID()
	cur, next := ids.GenerateTestNodeID(), ids.GenerateTestNodeID()
	resolver := &fakeResolver{
		curAddr: &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1}, curLeader: cur, haveCur: true,
		nextAddr: &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 2}, nextLeader: next, haveNext: true,
	}
	snd := &fakeSender{}
	f := newTestForwarder(self, snd, resolver)

	res, err := f.Forward(context.Background(), &wire.TxDatagram{Version: wire.ProtocolVersion}, ids.GenerateTestID())
	require.NoError(t, err)
	require.True(t, res.SentToCurrent)
	require.True(t, res.SentToNext)
	require.Equal(t, 2, snd.sent)
}

func TestForwardSkipsSelfAsCurrentLeader(t *testing.T) {
	self := ids.GenerateTestNodeID()
	next := ids.GenerateTestNodeID()
	resolver := &fakeResolver{
		curLeader: self, haveCur: true,
		nextAddr: &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 2}, nextLeader: next, haveNext: true,
	}
	snd := &fakeSender{}
	f := newTestForwarder(self, snd, resolver)

	res, err := f.Forward(context.Background(), &wire.TxDatagram{Version: wire.ProtocolVersion}, ids.GenerateTestID())
	require.NoError(t, err)
	require.True(t, res.SentToCurrent)
	require.Equal(t, 1, snd.sent)
	require.Len(t, f.DrainPending(), 1)
}

func TestForwardSkipsDuplicateNextLeader(t *testing.T) {
	self := ids.GenerateTestNodeID()
	leader := ids.GenerateTestNodeID()
	addr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1}
	resolver := &fakeResolver{
		curAddr: addr, curLeader: leader, haveCur: true,
		nextAddr: addr, nextLeader: leader, haveNext: true,
	}
	snd := &fakeSender{}
	f := newTestForwarder(self, snd, resolver)

	res, err := f.Forward(context.Background(), &wire.TxDatagram{Version: wire.ProtocolVersion}, ids.GenerateTestID())
	require.NoError(t, err)
	require.True(t, res.SentToCurrent)
	require.False(t, res.SentToNext)
	require.Equal(t, 1, snd.sent)
}

func TestOnReceiveRejectsStaleAndDuplicates(t *testing.T) {
	self := ids.GenerateTestNodeID()
	f := newTestForwarder(self, &fakeSender{}, &fakeResolver{})

	d := &wire.TxDatagram{Version: wire.ProtocolVersion, Timestamp: float64(time.Now().Unix())}
	raw, err := wire.Encode(d)
	require.NoError(t, err)
	digest := ids.GenerateTestID()

	require.NoError(t, f.OnReceive(raw, digest, time.Now()))
	require.Len(t, f.DrainPending(), 1)

	require.NoError(t, f.OnReceive(raw, digest, time.Now()))
	require.Empty(t, f.DrainPending())

	stale := &wire.TxDatagram{Version: wire.ProtocolVersion, Timestamp: float64(time.Now().Add(-time.Hour).Unix())}
	rawStale, err := wire.Encode(stale)
	require.NoError(t, err)
	require.Error(t, f.OnReceive(rawStale, ids.GenerateTestID(), time.Now()))
}
