// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// collectCandidates merges the TPU buffer, the local pending pool and the
// forwarder pool's raw datagrams into one ordered, transaction-hash
// deduplicated list, step 1 of the block assembler's procedure. A
// datagram that fails to decode is dropped and counted by the caller
// (PacketDecode never propagates past this boundary); it does not abort
// collection of the remaining candidates.
func collectCandidates(sources ...[][]byte) ([]*tx.Transaction, int) {
	seen := make(map[ids.ID]struct{})
	var out []*tx.Transaction
	decodeFailures := 0

	for _, src := range sources {
		for _, raw := range src {
			t, err := decodeDatagram(raw)
			if err != nil {
				decodeFailures++
				continue
			}
			digest := t.Digest()
			if _, dup := seen[digest]; dup {
				continue
			}
			seen[digest] = struct{}{}
			out = append(out, t)
		}
	}
	return out, decodeFailures
}

func decodeDatagram(raw []byte) (*tx.Transaction, error) {
	d, err := wire.Decode(raw)
	if err != nil {
		return nil, err
	}
	return tx.Decode(d.Transaction)
}
