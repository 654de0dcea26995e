// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package errs

import "errors"

var (
	// ErrNotRunning is returned when an operation is attempted on a stopped component.
	ErrNotRunning = errors.New("errs: component not running")

	// ErrNotImplemented is returned when a method is not yet implemented.
	ErrNotImplemented = errors.New("errs: not implemented")

	// ErrInvalidBlock is returned when a block fails structural or signature verification.
	ErrInvalidBlock = errors.New("errs: invalid block")

	// ErrUnknownBlock is returned when a referenced block is not found.
	ErrUnknownBlock = errors.New("errs: unknown block")

	// ErrHeightMismatch is returned when a block's height does not immediately
	// follow its parent's.
	ErrHeightMismatch = errors.New("errs: block height does not follow parent")

	// ErrParentMismatch is returned when a block's previous_hash does not
	// match the chain tip it claims to extend.
	ErrParentMismatch = errors.New("errs: block previous_hash does not match chain tip")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("errs: operation timed out")
)
