// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node wires the cluster's genesis and peer manifest into a
// running validator: the leader schedule, the fast transaction
// forwarder, the TPU and TVU UDP ingress points, the chain task and the
// validator vote pipeline that reconstructs and re-executes blocks this
// node does not lead.
package node

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/luxfi/crypto"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"golang.org/x/sync/errgroup"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/chain"
	"github.com/shubham4564/proofwithquantumannealing-sub001/config"
	"github.com/shubham4564/proofwithquantumannealing-sub001/executor"
	"github.com/shubham4564/proofwithquantumannealing-sub001/forwarder"
	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/metrics"
	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/sender"
	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/timeout"
	"github.com/shubham4564/proofwithquantumannealing-sub001/schedule"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tpu"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tvu"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validate"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// sendTimeout is the per-send budget every outbound UDP write is given,
// the spec's fixed timeout-per-send design.
const sendTimeout = 100 * time.Millisecond

// ErrPortBind wraps any of the three deterministic-port bind failures New
// can return, letting a cmd-level caller distinguish "couldn't bind a
// socket" from every other startup failure for exit-code purposes.
var ErrPortBind = errors.New("node: deterministic port bind failed")

// Config is everything a running node needs that cannot be derived from
// the genesis and network files alone.
type Config struct {
	Genesis   *config.Genesis
	Network   *config.NetworkConfig
	Self      ids.NodeID
	LeaderKey *ecdsa.PrivateKey
	Logger    log.Logger
}

// Node owns every long-running collaborator a validator needs: the chain
// task, the three UDP ingress points (forwarder, TPU, TVU) and the
// sockets they're bound to.
type Node struct {
	self      ids.NodeID
	leaderKey *ecdsa.PrivateKey
	cfg       config.ClusterConfig
	genesisHash ids.ID

	set      validators.Set
	sched    *schedule.Manager
	dir      *chain.Directory
	keys     pubKeyDirectory

	chainMgr  *chain.Manager

	fwdConn     *net.UDPConn
	fwd         *forwarder.Forwarder
	fwdListener *forwarder.Listener

	tpuConn     *net.UDPConn
	tpuListener *tpu.Listener

	tvuConn     *net.UDPConn
	tvuReceiver *tvu.Receiver

	log log.Logger
}

// pubKeyDirectory adapts the decoded network manifest into
// validate.PubKeyResolver.
type pubKeyDirectory map[ids.NodeID][]byte

func (d pubKeyDirectory) PubKey(id ids.NodeID) ([]byte, bool) {
	k, ok := d[id]
	return k, ok
}

// New bootstraps every collaborator a validator needs from cfg, binding
// this node's deterministic UDP ports. It does not start any of the
// background loops; call Run for that.
func New(cfg Config) (*Node, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}

	pubKey := crypto.FromECDSAPub(&cfg.LeaderKey.PublicKey)

	set := cfg.Network.Validators()
	keys, err := cfg.Network.PubKeys()
	if err != nil {
		return nil, err
	}
	dir := chain.NewDirectory(cfg.Network.Hosts())

	genesisHash, err := decodeGenesisHash(cfg.Genesis.GenesisHash)
	if err != nil {
		return nil, fmt.Errorf("node: invalid genesis hash: %w", err)
	}

	sched := schedule.NewManager(
		cfg.Genesis.ClusterConfig.SlotDuration,
		cfg.Genesis.ClusterConfig.SlotsPerEpoch,
		uint64(cfg.Genesis.ClusterConfig.ViabilityFloor*1_000_000),
		schedule.WeightedScoreOracle{},
		set,
	)
	if err := sched.Bootstrap(cfg.Genesis.CreationTime, genesisHash); err != nil {
		return nil, fmt.Errorf("node: bootstrapping leader schedule: %w", err)
	}

	balances := make(map[ids.NodeID]uint64, len(cfg.Genesis.Accounts))
	for acct, bal := range cfg.Genesis.Accounts {
		id, err := ParseNodeID(acct)
		if err != nil {
			return nil, fmt.Errorf("node: invalid genesis account %q: %w", acct, err)
		}
		balances[id] = bal
	}
	state := executor.NewState(balances)

	store, err := chain.NewStore(memdb.New())
	if err != nil {
		return nil, fmt.Errorf("node: opening chain store: %w", err)
	}

	chainReg := metric.NewRegistry()
	multi := metric.NewMultiGatherer()
	if err := multi.Register("chain", chainReg); err != nil {
		return nil, fmt.Errorf("node: registering chain metric gatherer: %w", err)
	}
	m := metrics.NewMetrics(chainReg)
	m.Multi = multi
	collectors, err := chain.NewCollectors(m)
	if err != nil {
		return nil, fmt.Errorf("node: registering chain metrics: %w", err)
	}

	fwdConn, fwdConflicts, err := forwarder.Bind(pubKey)
	if err != nil {
		return nil, fmt.Errorf("node: binding forwarder port: %w: %w", ErrPortBind, err)
	}
	tpuConn, tpuConflicts, err := tpu.Bind(pubKey)
	if err != nil {
		return nil, fmt.Errorf("node: binding TPU port: %w: %w", ErrPortBind, err)
	}
	tvuConn, tvuConflicts, err := tvu.Bind(pubKey)
	if err != nil {
		return nil, fmt.Errorf("node: binding TVU port: %w: %w", ErrPortBind, err)
	}
	if n := fwdConflicts + tpuConflicts + tvuConflicts; n > 0 {
		collectors.PortConflicts.Add(float64(n))
		logger.Warn("node: resolved deterministic-port bind conflicts via +1 fallback",
			"forwarder_hops", fwdConflicts, "tpu_hops", tpuConflicts, "tvu_hops", tvuConflicts)
	}

	timeouts := timeout.NewManager(sendTimeout)
	fwdSender := sender.NewUDPSender(fwdConn)
	resolver := chain.NewScheduleResolver(sched, dir, nil)
	fwd := forwarder.New(cfg.Self, fwdSender, timeouts, resolver, logger)
	fwdListener := forwarder.NewListener(fwdConn, fwd, logger)

	tpuListener := tpu.NewListener(tpuConn, logger)

	broadcastSender := sender.NewUDPSender(tvuConn)
	broadcastTransport := chain.NewUDPBroadcastTransport(broadcastSender, timeouts, dir, logger)

	mgr := chain.New(
		cfg.Self,
		cfg.LeaderKey,
		cfg.Genesis.ClusterConfig,
		genesisHash,
		sched,
		store,
		state,
		set,
		tpuListener,
		fwd,
		broadcastTransport,
		collectors,
		logger,
	)

	n := &Node{
		self:        cfg.Self,
		leaderKey:   cfg.LeaderKey,
		cfg:         cfg.Genesis.ClusterConfig,
		genesisHash: genesisHash,
		set:         set,
		sched:       sched,
		dir:         dir,
		keys:        keys,
		chainMgr:    mgr,
		fwdConn:     fwdConn,
		fwd:         fwd,
		fwdListener: fwdListener,
		tpuConn:     tpuConn,
		tpuListener: tpuListener,
		tvuConn:     tvuConn,
		log:         logger,
	}

	n.tvuReceiver = tvu.NewReceiver(tvuConn, cfg.Self, set, cfg.Genesis.ClusterConfig.BroadcastFanout, sched, broadcastTransport, cfg.Genesis.ClusterConfig.ErasureRatio, n, logger)

	return n, nil
}

// Run starts every background loop and blocks until ctx is cancelled or
// one of them fails.
func (n *Node) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return n.fwdListener.Run(gctx) })
	g.Go(func() error { return n.tpuListener.Run(gctx) })
	g.Go(func() error { return n.tvuReceiver.Run(gctx) })
	g.Go(func() error { return n.chainMgr.Run(gctx) })
	return g.Wait()
}

// Close releases every bound socket.
func (n *Node) Close() error {
	_ = n.fwdConn.Close()
	_ = n.tpuConn.Close()
	_ = n.tvuConn.Close()
	return nil
}

// OnReconstructed implements tvu.Handler: once a block this node does not
// lead has been fully reconstructed from shreds, re-execute it against
// local state, and, if every gate passes, accept it and broadcast a
// signed vote, re-entering the pipeline as an ordinary KindVote
// transaction per the validator vote protocol.
func (n *Node) OnReconstructed(b *block.Block) {
	now := time.Now()
	scheduledLeader, ok := n.sched.CurrentLeader(now)
	if !ok {
		n.log.Debug("node: no scheduled leader to validate against, abstaining", "block_hash", b.ID())
		return
	}
	parentClosing, err := n.chainMgr.ParentClosing()
	if err != nil {
		n.log.Debug("node: resolving parent PoH cursor", "err", err)
		return
	}

	outcome := validate.Validate(b, scheduledLeader, parentClosing, n.cfg.HashesPerTick, n.chainMgr.State(), n.keys)
	if !outcome.Accepted {
		n.log.Debug("node: block failed validation, abstaining", "block_hash", b.ID(), "gate", outcome.FailedGate)
		return
	}

	if err := n.chainMgr.AcceptRemote(b); err != nil {
		n.log.Warn("node: accepting validated block", "block_hash", b.ID(), "err", err)
		return
	}

	slot, _ := n.sched.CurrentSlot(now)
	vote := validate.EmitVote(n.self, b, outcome, slot, now.Unix())
	if err := vote.Sign(n.leaderKey); err != nil {
		n.log.Error("node: signing vote", "err", err)
		return
	}

	payload, err := vote.Encode()
	if err != nil {
		n.log.Error("node: encoding vote", "err", err)
		return
	}
	datagram := &wire.TxDatagram{
		Transaction: payload,
		SourceNode:  n.self.String(),
		PacketID:    vote.Digest().String(),
		Timestamp:   float64(now.UnixNano()) / float64(time.Second),
		Version:     wire.ProtocolVersion,
	}
	if _, err := n.fwd.Forward(context.Background(), datagram, vote.Digest()); err != nil {
		n.log.Debug("node: forwarding vote", "err", err)
	}
}

// decodeGenesisHash recovers the raw sha256 digest Genesis.GenesisHash
// hex-encodes back into an ids.ID.
func decodeGenesisHash(s string) (ids.ID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ids.ID{}, err
	}
	var id ids.ID
	copy(id[:], raw)
	return id, nil
}

// ParseNodeID parses a node ID's text form (the same form genesis
// accounts and the NODE_ID environment variable carry) through
// ids.NodeID's own JSON (un)marshaler, rather than a bespoke string
// format.
func ParseNodeID(s string) (ids.NodeID, error) {
	var id ids.NodeID
	if err := json.Unmarshal([]byte(strconv.Quote(s)), &id); err != nil {
		return ids.NodeID{}, err
	}
	return id, nil
}
