// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/sender"
	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/timeout"
	"github.com/shubham4564/proofwithquantumannealing-sub001/shred"
)

// UDPBroadcastTransport sends a TransmissionTask's shreds to a peer's TVU
// port over UDP, satisfying Manager's BroadcastTransport.
type UDPBroadcastTransport struct {
	sender   sender.Sender
	timeouts timeout.Manager
	dir      *Directory
	log      log.Logger
}

// NewUDPBroadcastTransport builds a UDPBroadcastTransport.
func NewUDPBroadcastTransport(snd sender.Sender, timeouts timeout.Manager, dir *Directory, logger log.Logger) *UDPBroadcastTransport {
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &UDPBroadcastTransport{sender: snd, timeouts: timeouts, dir: dir, log: logger}
}

// Send encodes and sends every shred in shreds to target's TVU address,
// one UDP datagram per shred. A single shred's send failure is logged and
// skipped rather than aborting the rest of the batch, since the erasure
// code tolerates losing some fraction of shreds.
func (t *UDPBroadcastTransport) Send(ctx context.Context, target ids.NodeID, shreds []shred.Shred) error {
	addr, ok := t.dir.TVUAddr(target)
	if !ok {
		return fmt.Errorf("chain: no known address for %s", target)
	}
	for _, s := range shreds {
		payload, err := s.Encode()
		if err != nil {
			return fmt.Errorf("chain: encoding shred %d: %w", s.Index, err)
		}
		budgetCtx, cancel := t.timeouts.WithTimeout(ctx)
		err = t.sender.Send(budgetCtx, addr, payload)
		if budgetCtx.Err() != nil {
			t.timeouts.RecordTimeout()
		}
		cancel()
		if err != nil {
			t.log.Debug("chain: shred send failed", "target", target, "index", s.Index, "err", err)
		}
	}
	return nil
}
