// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package errs

// Status is a block's position in its lifecycle: produced by a leader,
// verified by re-execution, and either accepted into the chain or
// rejected (including abstain, when shred reconstruction times out).
type Status int

const (
	StatusUnknown Status = iota
	StatusProcessing
	StatusVerified
	StatusAccepted
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusVerified:
		return "verified"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Decided reports whether the status represents a final decision.
func (s Status) Decided() bool {
	return s == StatusAccepted || s == StatusRejected
}
