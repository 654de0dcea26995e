// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errs defines the error-kind taxonomy and block/health status
// enums shared across the consensus pipeline, so every component reports
// failures through the same small vocabulary instead of ad hoc strings.
package errs

import "fmt"

// Kind classifies an AppError by the stage of the pipeline that detected
// it, so callers (metrics, logs, the node's exit-code logic) can switch on
// a stable value instead of matching error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindPacketDecode
	KindSignatureInvalid
	KindInsufficientBalance
	KindPoHMismatch
	KindStateRootMismatch
	KindLeaderMismatch
	KindShredReconstructionTimeout
	KindGenesisLoadFailure
	KindPortBind
	KindEmptyValidatorSet
)

func (k Kind) String() string {
	switch k {
	case KindPacketDecode:
		return "packet_decode"
	case KindSignatureInvalid:
		return "signature_invalid"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindPoHMismatch:
		return "poh_mismatch"
	case KindStateRootMismatch:
		return "state_root_mismatch"
	case KindLeaderMismatch:
		return "leader_mismatch"
	case KindShredReconstructionTimeout:
		return "shred_reconstruction_timeout"
	case KindGenesisLoadFailure:
		return "genesis_load_failure"
	case KindPortBind:
		return "port_bind"
	case KindEmptyValidatorSet:
		return "empty_validator_set"
	default:
		return "unknown"
	}
}

// AppError is an error tagged with a Kind, so it can be inspected without
// parsing its message.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an AppError of the given kind.
func New(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// As reports whether err is an *AppError of the given kind.
func As(err error, kind Kind) bool {
	ae, ok := err.(*AppError)
	return ok && ae.Kind == kind
}
